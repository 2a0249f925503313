// Package wire implements the stateless encode/decode primitives for the
// ZeroProto wire format: scalar codecs for the 15 defined type tags and the
// fixed 5-byte field-table entry format built on top of them.
package wire

import "errors"

// TypeTag identifies the wire representation of a field. It is the single
// source of truth shared by the runtime codec and the schema compiler's IR:
// the compiler burns these values into generated code, the runtime checks
// them against the field table at access time.
type TypeTag byte

const (
	TagU8 TypeTag = iota
	TagU16
	TagU32
	TagU64
	TagI8
	TagI16
	TagI32
	TagI64
	TagF32
	TagF64
	TagBool
	TagString
	TagBytes
	TagMessage
	TagVector
)

// maxTypeTag is the highest tag value defined by the wire format. Decoders
// must reject any byte greater than this with TypeMismatch rather than
// silently accepting an unknown tag.
const maxTypeTag = TagVector

// Valid reports whether t is one of the 15 defined type tags.
func (t TypeTag) Valid() bool {
	return t <= maxTypeTag
}

// FixedSize returns the encoded size in bytes of a fixed-width scalar tag,
// or 0 for variable-width tags (string, bytes, message, vector) whose size
// is only known from their length prefix.
func (t TypeTag) FixedSize() int {
	switch t {
	case TagU8, TagI8, TagBool:
		return 1
	case TagU16, TagI16:
		return 2
	case TagU32, TagI32, TagF32:
		return 4
	case TagU64, TagI64, TagF64:
		return 8
	default:
		return 0
	}
}

// IsVariableWidth reports whether t carries a length/count prefix rather
// than a fixed byte width.
func (t TypeTag) IsVariableWidth() bool {
	switch t {
	case TagString, TagBytes, TagMessage, TagVector:
		return true
	default:
		return false
	}
}

func (t TypeTag) String() string {
	switch t {
	case TagU8:
		return "u8"
	case TagU16:
		return "u16"
	case TagU32:
		return "u32"
	case TagU64:
		return "u64"
	case TagI8:
		return "i8"
	case TagI16:
		return "i16"
	case TagI32:
		return "i32"
	case TagI64:
		return "i64"
	case TagF32:
		return "f32"
	case TagF64:
		return "f64"
	case TagBool:
		return "bool"
	case TagString:
		return "string"
	case TagBytes:
		return "bytes"
	case TagMessage:
		return "message"
	case TagVector:
		return "vector"
	default:
		return "unknown"
	}
}

// FieldEntrySize is the fixed byte width of a field-table entry: one tag
// byte followed by a 4-byte little-endian absolute offset.
const FieldEntrySize = 5

// HeaderSize is the byte width of the field-count header that precedes the
// field table in every message image.
const HeaderSize = 2

// ErrEntryTruncated is returned by DecodeFieldEntry when fewer than
// FieldEntrySize bytes remain.
var ErrEntryTruncated = errors.New("wire: field table entry truncated")

// PutFieldEntry writes a field-table entry (tag, offset) into buf, which
// must have at least FieldEntrySize bytes available.
func PutFieldEntry(buf []byte, tag TypeTag, offset uint32) {
	buf[0] = byte(tag)
	PutFixed32(buf[1:5], offset)
}

// AppendFieldEntry appends a field-table entry to buf.
func AppendFieldEntry(buf []byte, tag TypeTag, offset uint32) []byte {
	buf = append(buf, byte(tag))
	return AppendFixed32(buf, offset)
}

// DecodeFieldEntry decodes a field-table entry from the start of data.
func DecodeFieldEntry(data []byte) (tag TypeTag, offset uint32, err error) {
	if len(data) < FieldEntrySize {
		return 0, 0, ErrEntryTruncated
	}
	tag = TypeTag(data[0])
	offset, err = DecodeFixed32(data[1:5])
	return tag, offset, err
}
