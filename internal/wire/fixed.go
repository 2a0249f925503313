package wire

import (
	"encoding/binary"
	"math"
)

// AppendFixed32 appends a 32-bit value in little-endian format.
func AppendFixed32(buf []byte, v uint32) []byte {
	return append(buf,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
	)
}

// AppendFixed64 appends a 64-bit value in little-endian format.
func AppendFixed64(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
		byte(v>>32),
		byte(v>>40),
		byte(v>>48),
		byte(v>>56),
	)
}

// DecodeFixed32 decodes a little-endian 32-bit value.
func DecodeFixed32(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint32(data), nil
}

// DecodeFixed64 decodes a little-endian 64-bit value.
func DecodeFixed64(data []byte) (uint64, error) {
	if len(data) < 8 {
		return 0, ErrOutOfBounds
	}
	return binary.LittleEndian.Uint64(data), nil
}

// PutFixed32 writes a 32-bit value to buf in little-endian format. The
// buffer must have at least 4 bytes available.
func PutFixed32(buf []byte, v uint32) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
}

// PutFixed64 writes a 64-bit value to buf in little-endian format. The
// buffer must have at least 8 bytes available.
func PutFixed64(buf []byte, v uint64) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	buf[4] = byte(v >> 32)
	buf[5] = byte(v >> 40)
	buf[6] = byte(v >> 48)
	buf[7] = byte(v >> 56)
}

// AppendFloat32 appends a float32 as its raw IEEE-754 binary32 bit pattern,
// little-endian. Unlike a deterministic-serialization codec, ZeroProto's
// round-trip law requires read(build(v)) == v bit-for-bit, so NaN payloads
// and the sign of zero are preserved rather than canonicalized.
func AppendFloat32(buf []byte, v float32) []byte {
	return AppendFixed32(buf, math.Float32bits(v))
}

// DecodeFloat32 decodes a float32 from little-endian bytes.
func DecodeFloat32(data []byte) (float32, error) {
	bits, err := DecodeFixed32(data)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// PutFloat32 writes a float32 to buf in little-endian format.
func PutFloat32(buf []byte, v float32) {
	PutFixed32(buf, math.Float32bits(v))
}

// AppendFloat64 appends a float64 as its raw IEEE-754 binary64 bit pattern,
// little-endian, preserving NaN payload and sign of zero.
func AppendFloat64(buf []byte, v float64) []byte {
	return AppendFixed64(buf, math.Float64bits(v))
}

// DecodeFloat64 decodes a float64 from little-endian bytes.
func DecodeFloat64(data []byte) (float64, error) {
	bits, err := DecodeFixed64(data)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// PutFloat64 writes a float64 to buf in little-endian format.
func PutFloat64(buf []byte, v float64) {
	PutFixed64(buf, math.Float64bits(v))
}

// Size constants for the fixed-width scalar tags.
const (
	Fixed32Size = 4
	Fixed64Size = 8
	Float32Size = 4
	Float64Size = 8
	BoolSize    = 1
)

// DecodeBool decodes a single byte as a boolean. In strict mode any byte
// other than 0x00/0x01 is InvalidBool; non-strict treats any non-zero byte
// as true, matching the codec's default per the type-tag table.
func DecodeBool(data []byte, strict bool) (bool, error) {
	if len(data) < 1 {
		return false, ErrOutOfBounds
	}
	b := data[0]
	if strict && b != 0 && b != 1 {
		return false, ErrInvalidBool
	}
	return b != 0, nil
}

// PutBool writes a boolean as a single byte: 0x00 for false, 0x01 for true.
func PutBool(buf []byte, v bool) {
	if v {
		buf[0] = 1
	} else {
		buf[0] = 0
	}
}

// AppendBool appends a boolean as a single byte.
func AppendBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}
