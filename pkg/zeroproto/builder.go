package zeroproto

import (
	"github.com/blockberries/zeroproto/internal/wire"
)

// entry is a builder-internal field record: its wire tag and the
// (start, length) span of its payload within the builder's scratch buffer.
// Offsets into the final image aren't known until Finish, once every
// field's payload size is fixed.
type entry struct {
	tag    wire.TypeTag
	start  int
	length int
	set    bool
}

// MessageBuilder accumulates field payloads into a single pooled scratch
// buffer, indexed by table position, and emits a finished message image on
// Finish. Setting the same position twice overwrites the previous value.
// Positions need not be set in order, but every position from 0 up to the
// highest one touched must be set by the time Finish is called.
type MessageBuilder struct {
	entries []entry
	scratch []byte
}

// NewMessageBuilder creates an empty builder with a pooled scratch buffer.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{scratch: GetBuffer(256)}
}

func (b *MessageBuilder) ensure(index int) {
	if index < len(b.entries) {
		return
	}
	grown := make([]entry, index+1)
	copy(grown, b.entries)
	b.entries = grown
}

// push appends n bytes to the scratch buffer, returning their start offset.
func (b *MessageBuilder) push(n int) int {
	start := len(b.scratch)
	b.scratch = append(b.scratch, make([]byte, n)...)
	return start
}

func (b *MessageBuilder) setFixed(index int, tag wire.TypeTag, encode func([]byte)) {
	b.ensure(index)
	size := tag.FixedSize()
	start := b.push(size)
	encode(b.scratch[start : start+size])
	b.entries[index] = entry{tag: tag, start: start, length: size, set: true}
}

func (b *MessageBuilder) SetU8(index int, v uint8) {
	b.setFixed(index, wire.TagU8, func(dst []byte) { dst[0] = v })
}

func (b *MessageBuilder) SetU16(index int, v uint16) {
	b.setFixed(index, wire.TagU16, func(dst []byte) { dst[0] = byte(v); dst[1] = byte(v >> 8) })
}

func (b *MessageBuilder) SetU32(index int, v uint32) {
	b.setFixed(index, wire.TagU32, func(dst []byte) { wire.PutFixed32(dst, v) })
}

func (b *MessageBuilder) SetU64(index int, v uint64) {
	b.setFixed(index, wire.TagU64, func(dst []byte) { wire.PutFixed64(dst, v) })
}

func (b *MessageBuilder) SetI8(index int, v int8) {
	b.setFixed(index, wire.TagI8, func(dst []byte) { dst[0] = byte(v) })
}

func (b *MessageBuilder) SetI16(index int, v int16) {
	b.setFixed(index, wire.TagI16, func(dst []byte) {
		u := uint16(v)
		dst[0] = byte(u)
		dst[1] = byte(u >> 8)
	})
}

func (b *MessageBuilder) SetI32(index int, v int32) {
	b.setFixed(index, wire.TagI32, func(dst []byte) { wire.PutFixed32(dst, uint32(v)) })
}

func (b *MessageBuilder) SetI64(index int, v int64) {
	b.setFixed(index, wire.TagI64, func(dst []byte) { wire.PutFixed64(dst, uint64(v)) })
}

func (b *MessageBuilder) SetF32(index int, v float32) {
	b.setFixed(index, wire.TagF32, func(dst []byte) { wire.PutFloat32(dst, v) })
}

func (b *MessageBuilder) SetF64(index int, v float64) {
	b.setFixed(index, wire.TagF64, func(dst []byte) { wire.PutFloat64(dst, v) })
}

func (b *MessageBuilder) SetBool(index int, v bool) {
	b.setFixed(index, wire.TagBool, func(dst []byte) { wire.PutBool(dst, v) })
}

// setVariable stores a variable-width payload. String/bytes/message
// fields are stored as a 4-byte length prefix followed by the raw
// content, matching the prefix variableWidth expects on read. Vector
// payloads are not re-prefixed here: VectorBuilder.Finish already writes
// its own 4-byte count prefix, so the field's stored length is that
// self-describing payload as-is.
func (b *MessageBuilder) setVariable(index int, tag wire.TypeTag, payload []byte) {
	b.ensure(index)
	if tag == wire.TagVector {
		start := b.push(len(payload))
		copy(b.scratch[start:start+len(payload)], payload)
		b.entries[index] = entry{tag: tag, start: start, length: len(payload), set: true}
		return
	}
	start := b.push(4 + len(payload))
	wire.PutFixed32(b.scratch[start:start+4], uint32(len(payload)))
	copy(b.scratch[start+4:start+4+len(payload)], payload)
	b.entries[index] = entry{tag: tag, start: start, length: 4 + len(payload), set: true}
}

// SetString sets a string field at index.
func (b *MessageBuilder) SetString(index int, v string) {
	b.setVariable(index, wire.TagString, []byte(v))
}

// SetBytes sets a bytes field at index.
func (b *MessageBuilder) SetBytes(index int, v []byte) {
	b.setVariable(index, wire.TagBytes, v)
}

// SetMessage sets a nested message field at index, given the nested
// message's own finished image.
func (b *MessageBuilder) SetMessage(index int, image []byte) {
	b.setVariable(index, wire.TagMessage, image)
}

// SetVector sets a vector field at index, given a VectorBuilder's finished
// encoding.
func (b *MessageBuilder) SetVector(index int, vectorImage []byte) {
	b.setVariable(index, wire.TagVector, vectorImage)
}

// Finish computes final offsets and emits the message image: a 2-byte
// field-count header, the field table in index order, and the
// concatenated payload bytes. Finish fails with SparseFields if any
// position in [0, N) was never set, and with MessageTooLarge if the image
// would require an offset that doesn't fit in 32 bits.
func (b *MessageBuilder) Finish() ([]byte, error) {
	n := len(b.entries)
	if n > 65535 {
		return nil, ErrMessageTooLarge
	}
	for i, e := range b.entries {
		if !e.set {
			return nil, NewFieldEncodeError(i, "field position never set", ErrSparseFields)
		}
	}

	headerAndTable := wire.HeaderSize + wire.FieldEntrySize*n
	payloadSize := 0
	for _, e := range b.entries {
		payloadSize += e.length
	}
	total := uint64(headerAndTable) + uint64(payloadSize)
	if total > uint64(^uint32(0)) {
		return nil, ErrMessageTooLarge
	}

	out := make([]byte, headerAndTable, total)
	out[0] = byte(n)
	out[1] = byte(n >> 8)

	// Payloads must be emitted in field-index order regardless of the
	// order Set* calls pushed them into scratch, since offsets in the
	// table must strictly increase by index.
	offset := uint32(headerAndTable)
	for i, e := range b.entries {
		entryOffset := wire.HeaderSize + wire.FieldEntrySize*i
		wire.PutFieldEntry(out[entryOffset:entryOffset+wire.FieldEntrySize], e.tag, offset)
		offset += uint32(e.length)
		out = append(out, b.scratch[e.start:e.start+e.length]...)
	}

	PutBuffer(b.scratch)
	b.scratch = nil
	b.entries = nil
	return out, nil
}

// Reset clears the builder's accumulated entries so it can be reused,
// returning its scratch buffer to the pool first.
func (b *MessageBuilder) Reset() {
	if b.scratch != nil {
		PutBuffer(b.scratch)
	}
	b.scratch = GetBuffer(256)
	b.entries = nil
}
