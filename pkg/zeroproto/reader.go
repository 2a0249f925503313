package zeroproto

import (
	"unicode/utf8"

	"github.com/blockberries/zeroproto/internal/wire"
)

// MessageReader decodes a message image with zero-copy field access:
// strings, byte slices, and nested messages are exposed as sub-slices of
// the original buffer. The header and field table are validated eagerly at
// construction; every subsequent field access is a table lookup plus a tag
// check, never a re-validation of the whole buffer.
//
// A *MessageReader is safe for concurrent use by multiple goroutines: all
// of its state is fixed at construction and never mutated afterward.
type MessageReader struct {
	data    []byte
	tags    []wire.TypeTag
	offsets []uint32
	opts    Options
}

// FromSlice constructs a MessageReader over data, validating the header and
// field table eagerly. data is retained, not copied; the caller must not
// mutate it while the reader (or any reader/value derived from it) is in
// use.
func FromSlice(data []byte, opts Options) (*MessageReader, error) {
	if len(data) < wire.HeaderSize {
		return nil, ErrTruncatedHeader
	}
	fieldCount := int(data[0]) | int(data[1])<<8

	tableEnd := wire.HeaderSize + wire.FieldEntrySize*fieldCount
	if len(data) < tableEnd {
		return nil, ErrTruncatedTable
	}

	tags := make([]wire.TypeTag, fieldCount)
	offsets := make([]uint32, fieldCount)
	var prevOffset uint32
	for i := 0; i < fieldCount; i++ {
		entryStart := wire.HeaderSize + wire.FieldEntrySize*i
		tag, offset, derr := wire.DecodeFieldEntry(data[entryStart : entryStart+wire.FieldEntrySize])
		if derr != nil {
			return nil, ErrMalformedLayout
		}
		if int(offset) < tableEnd || offset >= uint32(len(data)) {
			return nil, ErrMalformedLayout
		}
		if i > 0 && offset <= prevOffset {
			return nil, ErrMalformedLayout
		}
		tags[i] = tag
		offsets[i] = offset
		prevOffset = offset
	}

	return &MessageReader{data: data, tags: tags, offsets: offsets, opts: opts}, nil
}

// NewMessageReader constructs a MessageReader with DefaultOptions.
func NewMessageReader(data []byte) (*MessageReader, error) {
	return FromSlice(data, DefaultOptions)
}

// Len returns the message's field count.
func (r *MessageReader) Len() int { return len(r.tags) }

// Bytes returns the buffer the reader was constructed over.
func (r *MessageReader) Bytes() []byte { return r.data }

// Field returns the table entry (tag, absolute offset) for position i.
func (r *MessageReader) Field(i int) (wire.TypeTag, uint32, error) {
	if i < 0 || i >= len(r.tags) {
		return 0, 0, ErrFieldIndexOutOfRange
	}
	return r.tags[i], r.offsets[i], nil
}

func (r *MessageReader) checkTag(i int, want wire.TypeTag) (uint32, error) {
	tag, offset, err := r.Field(i)
	if err != nil {
		return 0, err
	}
	if tag != want {
		return 0, NewFieldDecodeError(i, int(offset), "type mismatch", ErrTypeMismatch)
	}
	return offset, nil
}

func (r *MessageReader) scalar(i int, tag wire.TypeTag) ([]byte, uint32, error) {
	offset, err := r.checkTag(i, tag)
	if err != nil {
		return nil, 0, err
	}
	size := tag.FixedSize()
	end := int(offset) + size
	if end > len(r.data) {
		return nil, offset, NewFieldDecodeError(i, int(offset), "truncated scalar", ErrTruncated)
	}
	return r.data[offset:end], offset, nil
}

// ReadU8 reads an unsigned 8-bit field at position i.
func (r *MessageReader) ReadU8(i int) (uint8, error) {
	b, _, err := r.scalar(i, wire.TagU8)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads an unsigned 16-bit field at position i.
func (r *MessageReader) ReadU16(i int) (uint16, error) {
	b, _, err := r.scalar(i, wire.TagU16)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadU32 reads an unsigned 32-bit field at position i.
func (r *MessageReader) ReadU32(i int) (uint32, error) {
	b, _, err := r.scalar(i, wire.TagU32)
	if err != nil {
		return 0, err
	}
	v, _ := wire.DecodeFixed32(b)
	return v, nil
}

// ReadU64 reads an unsigned 64-bit field at position i.
func (r *MessageReader) ReadU64(i int) (uint64, error) {
	b, _, err := r.scalar(i, wire.TagU64)
	if err != nil {
		return 0, err
	}
	v, _ := wire.DecodeFixed64(b)
	return v, nil
}

// ReadI8 reads a signed 8-bit field at position i.
func (r *MessageReader) ReadI8(i int) (int8, error) {
	b, _, err := r.scalar(i, wire.TagI8)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// ReadI16 reads a signed 16-bit field at position i.
func (r *MessageReader) ReadI16(i int) (int16, error) {
	b, _, err := r.scalar(i, wire.TagI16)
	if err != nil {
		return 0, err
	}
	return int16(uint16(b[0]) | uint16(b[1])<<8), nil
}

// ReadI32 reads a signed 32-bit field at position i.
func (r *MessageReader) ReadI32(i int) (int32, error) {
	b, _, err := r.scalar(i, wire.TagI32)
	if err != nil {
		return 0, err
	}
	v, _ := wire.DecodeFixed32(b)
	return int32(v), nil
}

// ReadI64 reads a signed 64-bit field at position i.
func (r *MessageReader) ReadI64(i int) (int64, error) {
	b, _, err := r.scalar(i, wire.TagI64)
	if err != nil {
		return 0, err
	}
	v, _ := wire.DecodeFixed64(b)
	return int64(v), nil
}

// ReadF32 reads a 32-bit float field at position i.
func (r *MessageReader) ReadF32(i int) (float32, error) {
	b, _, err := r.scalar(i, wire.TagF32)
	if err != nil {
		return 0, err
	}
	v, _ := wire.DecodeFloat32(b)
	return v, nil
}

// ReadF64 reads a 64-bit float field at position i.
func (r *MessageReader) ReadF64(i int) (float64, error) {
	b, _, err := r.scalar(i, wire.TagF64)
	if err != nil {
		return 0, err
	}
	v, _ := wire.DecodeFloat64(b)
	return v, nil
}

// ReadBool reads a boolean field at position i, honoring Options.StrictBool.
func (r *MessageReader) ReadBool(i int) (bool, error) {
	b, offset, err := r.scalar(i, wire.TagBool)
	if err != nil {
		return false, err
	}
	v, derr := wire.DecodeBool(b, r.opts.StrictBool)
	if derr != nil {
		return false, NewFieldDecodeError(i, int(offset), "invalid bool byte", derr)
	}
	return v, nil
}

// variableWidth returns the declared length and the data region for a
// string/bytes/message field, validating bounds but not UTF-8.
func (r *MessageReader) variableWidth(i int, tag wire.TypeTag) ([]byte, uint32, error) {
	offset, err := r.checkTag(i, tag)
	if err != nil {
		return nil, 0, err
	}
	if int(offset)+4 > len(r.data) {
		return nil, offset, NewFieldDecodeError(i, int(offset), "truncated length prefix", ErrTruncated)
	}
	length, _ := wire.DecodeFixed32(r.data[offset : offset+4])
	start := int(offset) + 4
	end := start + int(length)
	if end > len(r.data) || end < start {
		return nil, offset, NewFieldDecodeError(i, int(offset), "truncated payload", ErrTruncated)
	}
	return r.data[start:end], offset, nil
}

// ReadString reads a string field at position i as a zero-copy sub-slice of
// the underlying buffer, validating UTF-8 when Options.ValidateUTF8 is set.
func (r *MessageReader) ReadString(i int) (string, error) {
	b, offset, err := r.variableWidth(i, wire.TagString)
	if err != nil {
		return "", err
	}
	if r.opts.ValidateUTF8 && !utf8.Valid(b) {
		return "", NewFieldDecodeError(i, int(offset), "invalid utf-8", ErrInvalidUtf8)
	}
	return unsafeString(b), nil
}

// ReadBytes reads a bytes field at position i as a zero-copy sub-slice of
// the underlying buffer. The caller must not mutate the returned slice.
func (r *MessageReader) ReadBytes(i int) ([]byte, error) {
	b, _, err := r.variableWidth(i, wire.TagBytes)
	return b, err
}

// ReadMessage reads a nested message field at position i, recursively
// validating its header and field table the same way FromSlice does.
func (r *MessageReader) ReadMessage(i int) (*MessageReader, error) {
	b, offset, err := r.variableWidth(i, wire.TagMessage)
	if err != nil {
		return nil, err
	}
	nested, nerr := FromSlice(b, r.opts)
	if nerr != nil {
		return nil, NewFieldDecodeError(i, int(offset), "malformed nested message", nerr)
	}
	return nested, nil
}

// ReadVector reads a vector field at position i whose elements are of
// elementTag. The element tag is a schema-level fact supplied by the
// caller/generated code, not stored on the wire.
func (r *MessageReader) ReadVector(i int, elementTag wire.TypeTag) (*VectorReader, error) {
	offset, err := r.checkTag(i, wire.TagVector)
	if err != nil {
		return nil, err
	}
	return newVectorReader(r.data, int(offset), elementTag, r.opts)
}
