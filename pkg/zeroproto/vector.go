package zeroproto

import (
	"unicode/utf8"

	"github.com/blockberries/zeroproto/internal/wire"
)

// VectorReader exposes a decoded vector field: len() and bounds-checked
// positional access. Every element's offset is computed and memoized at
// construction (by arithmetic for fixed-width elements, by a pre-walk of
// the length prefixes for variable-width ones), so access is an O(1)
// table lookup and concurrent readers never need to synchronize a
// lazily-built offset table.
type VectorReader struct {
	data    []byte
	elemTag wire.TypeTag
	count   uint32
	offsets []uint32 // memoized start-of-element offsets, variable-width only
	opts    Options
}

func newVectorReader(data []byte, offset int, elemTag wire.TypeTag, opts Options) (*VectorReader, error) {
	if offset+4 > len(data) {
		return nil, ErrTruncated
	}
	count, _ := wire.DecodeFixed32(data[offset : offset+4])
	start := offset + 4

	vr := &VectorReader{data: data, elemTag: elemTag, count: count, opts: opts}

	if elemTag.IsVariableWidth() {
		offsets := make([]uint32, count)
		cur := start
		for i := uint32(0); i < count; i++ {
			if cur+4 > len(data) {
				return nil, ErrTruncated
			}
			length, _ := wire.DecodeFixed32(data[cur : cur+4])
			offsets[i] = uint32(cur)
			cur += 4 + int(length)
			if cur > len(data) || cur < 0 {
				return nil, ErrTruncated
			}
		}
		vr.offsets = offsets
		return vr, nil
	}

	size := elemTag.FixedSize()
	if size == 0 {
		return nil, ErrTypeMismatch
	}
	end := start + size*int(count)
	if end > len(data) {
		return nil, ErrTruncated
	}
	offsets := make([]uint32, count)
	for i := uint32(0); i < count; i++ {
		offsets[i] = uint32(start + size*int(i))
	}
	vr.offsets = offsets
	return vr, nil
}

// Len returns the number of elements in the vector.
func (v *VectorReader) Len() int { return int(v.count) }

// ElementTag returns the vector's element type tag.
func (v *VectorReader) ElementTag() wire.TypeTag { return v.elemTag }

func (v *VectorReader) elementOffset(i int) (uint32, error) {
	if i < 0 || i >= len(v.offsets) {
		return 0, ErrFieldIndexOutOfRange
	}
	return v.offsets[i], nil
}

func (v *VectorReader) scalarAt(i int, want wire.TypeTag) ([]byte, error) {
	if v.elemTag != want {
		return nil, ErrTypeMismatch
	}
	offset, err := v.elementOffset(i)
	if err != nil {
		return nil, err
	}
	size := want.FixedSize()
	end := int(offset) + size
	if end > len(v.data) {
		return nil, ErrTruncated
	}
	return v.data[offset:end], nil
}

func (v *VectorReader) GetU8(i int) (uint8, error) {
	b, err := v.scalarAt(i, wire.TagU8)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (v *VectorReader) GetU16(i int) (uint16, error) {
	b, err := v.scalarAt(i, wire.TagU16)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (v *VectorReader) GetU32(i int) (uint32, error) {
	b, err := v.scalarAt(i, wire.TagU32)
	if err != nil {
		return 0, err
	}
	val, _ := wire.DecodeFixed32(b)
	return val, nil
}

func (v *VectorReader) GetU64(i int) (uint64, error) {
	b, err := v.scalarAt(i, wire.TagU64)
	if err != nil {
		return 0, err
	}
	val, _ := wire.DecodeFixed64(b)
	return val, nil
}

func (v *VectorReader) GetI8(i int) (int8, error) {
	b, err := v.scalarAt(i, wire.TagI8)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (v *VectorReader) GetI16(i int) (int16, error) {
	b, err := v.scalarAt(i, wire.TagI16)
	if err != nil {
		return 0, err
	}
	return int16(uint16(b[0]) | uint16(b[1])<<8), nil
}

func (v *VectorReader) GetI32(i int) (int32, error) {
	b, err := v.scalarAt(i, wire.TagI32)
	if err != nil {
		return 0, err
	}
	val, _ := wire.DecodeFixed32(b)
	return int32(val), nil
}

func (v *VectorReader) GetI64(i int) (int64, error) {
	b, err := v.scalarAt(i, wire.TagI64)
	if err != nil {
		return 0, err
	}
	val, _ := wire.DecodeFixed64(b)
	return int64(val), nil
}

func (v *VectorReader) GetF32(i int) (float32, error) {
	b, err := v.scalarAt(i, wire.TagF32)
	if err != nil {
		return 0, err
	}
	val, _ := wire.DecodeFloat32(b)
	return val, nil
}

func (v *VectorReader) GetF64(i int) (float64, error) {
	b, err := v.scalarAt(i, wire.TagF64)
	if err != nil {
		return 0, err
	}
	val, _ := wire.DecodeFloat64(b)
	return val, nil
}

func (v *VectorReader) GetBool(i int) (bool, error) {
	b, err := v.scalarAt(i, wire.TagBool)
	if err != nil {
		return false, err
	}
	return wire.DecodeBool(b, v.opts.StrictBool)
}

func (v *VectorReader) variableAt(i int, want wire.TypeTag) ([]byte, error) {
	if v.elemTag != want {
		return nil, ErrTypeMismatch
	}
	offset, err := v.elementOffset(i)
	if err != nil {
		return nil, err
	}
	if int(offset)+4 > len(v.data) {
		return nil, ErrTruncated
	}
	length, _ := wire.DecodeFixed32(v.data[offset : offset+4])
	start := int(offset) + 4
	end := start + int(length)
	if end > len(v.data) {
		return nil, ErrTruncated
	}
	return v.data[start:end], nil
}

func (v *VectorReader) GetString(i int) (string, error) {
	b, err := v.variableAt(i, wire.TagString)
	if err != nil {
		return "", err
	}
	if v.opts.ValidateUTF8 && !utf8.Valid(b) {
		return "", ErrInvalidUtf8
	}
	return unsafeString(b), nil
}

func (v *VectorReader) GetBytes(i int) ([]byte, error) {
	return v.variableAt(i, wire.TagBytes)
}

func (v *VectorReader) GetMessage(i int) (*MessageReader, error) {
	b, err := v.variableAt(i, wire.TagMessage)
	if err != nil {
		return nil, err
	}
	return FromSlice(b, v.opts)
}

// VectorBuilder accumulates elements of a single type tag for a vector
// field. Nested vectors (vector-of-vector) are rejected at schema
// validation time, not here: the builder has no way to distinguish a
// legitimate vector-typed element from schema misuse, so TagVector is
// simply not a constructible element kind.
type VectorBuilder struct {
	elemTag wire.TypeTag
	count   uint32
	buf     []byte
}

// NewVectorBuilder creates a builder for a vector of the given element tag.
func NewVectorBuilder(elemTag wire.TypeTag) *VectorBuilder {
	return &VectorBuilder{elemTag: elemTag, buf: GetBuffer(64)}
}

func (b *VectorBuilder) appendScalar(want wire.TypeTag, encode func([]byte)) error {
	if b.elemTag != want {
		return ErrTypeMismatch
	}
	n := len(b.buf)
	b.buf = append(b.buf, make([]byte, want.FixedSize())...)
	encode(b.buf[n:])
	b.count++
	return nil
}

func (b *VectorBuilder) AppendU8(v uint8) error {
	return b.appendScalar(wire.TagU8, func(dst []byte) { dst[0] = v })
}

func (b *VectorBuilder) AppendU16(v uint16) error {
	return b.appendScalar(wire.TagU16, func(dst []byte) { dst[0] = byte(v); dst[1] = byte(v >> 8) })
}

func (b *VectorBuilder) AppendU32(v uint32) error {
	return b.appendScalar(wire.TagU32, func(dst []byte) { wire.PutFixed32(dst, v) })
}

func (b *VectorBuilder) AppendU64(v uint64) error {
	return b.appendScalar(wire.TagU64, func(dst []byte) { wire.PutFixed64(dst, v) })
}

func (b *VectorBuilder) AppendI8(v int8) error {
	return b.appendScalar(wire.TagI8, func(dst []byte) { dst[0] = byte(v) })
}

func (b *VectorBuilder) AppendI16(v int16) error {
	return b.appendScalar(wire.TagI16, func(dst []byte) {
		u := uint16(v)
		dst[0] = byte(u)
		dst[1] = byte(u >> 8)
	})
}

func (b *VectorBuilder) AppendI32(v int32) error {
	return b.appendScalar(wire.TagI32, func(dst []byte) { wire.PutFixed32(dst, uint32(v)) })
}

func (b *VectorBuilder) AppendI64(v int64) error {
	return b.appendScalar(wire.TagI64, func(dst []byte) { wire.PutFixed64(dst, uint64(v)) })
}

func (b *VectorBuilder) AppendF32(v float32) error {
	return b.appendScalar(wire.TagF32, func(dst []byte) { wire.PutFloat32(dst, v) })
}

func (b *VectorBuilder) AppendF64(v float64) error {
	return b.appendScalar(wire.TagF64, func(dst []byte) { wire.PutFloat64(dst, v) })
}

func (b *VectorBuilder) AppendBool(v bool) error {
	return b.appendScalar(wire.TagBool, func(dst []byte) { wire.PutBool(dst, v) })
}

func (b *VectorBuilder) appendVariable(want wire.TypeTag, payload []byte) error {
	if b.elemTag != want {
		return ErrTypeMismatch
	}
	if uint64(len(b.buf))+4+uint64(len(payload)) > uint64(^uint32(0)) {
		return ErrMessageTooLarge
	}
	b.buf = wire.AppendFixed32(b.buf, uint32(len(payload)))
	b.buf = append(b.buf, payload...)
	b.count++
	return nil
}

func (b *VectorBuilder) AppendString(v string) error {
	return b.appendVariable(wire.TagString, []byte(v))
}

func (b *VectorBuilder) AppendBytes(v []byte) error {
	return b.appendVariable(wire.TagBytes, v)
}

// AppendMessage appends an already-finished nested message image.
func (b *VectorBuilder) AppendMessage(image []byte) error {
	return b.appendVariable(wire.TagMessage, image)
}

// Finish emits the vector's encoded payload: a 4-byte count prefix followed
// by the packed elements. This is the byte sequence a MessageBuilder stores
// under a TagVector field entry.
func (b *VectorBuilder) Finish() []byte {
	out := make([]byte, 0, 4+len(b.buf))
	out = wire.AppendFixed32(out, b.count)
	out = append(out, b.buf...)
	PutBuffer(b.buf)
	b.buf = nil
	return out
}
