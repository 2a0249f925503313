package wire

import (
	"math"
	"testing"
)

func TestFixed32RoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 0xFFFFFFFF, 0x01020304}
	for _, v := range cases {
		var buf []byte
		buf = AppendFixed32(buf, v)
		if len(buf) != 4 {
			t.Fatalf("AppendFixed32(%d): got %d bytes, want 4", v, len(buf))
		}
		got, err := DecodeFixed32(buf)
		if err != nil {
			t.Fatalf("DecodeFixed32(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("DecodeFixed32: got %d, want %d", got, v)
		}
	}
}

func TestFixed64RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xFFFFFFFFFFFFFFFF, 0x0102030405060708}
	for _, v := range cases {
		var buf []byte
		buf = AppendFixed64(buf, v)
		got, err := DecodeFixed64(buf)
		if err != nil {
			t.Fatalf("DecodeFixed64(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("DecodeFixed64: got %d, want %d", got, v)
		}
	}
}

func TestDecodeFixed32Truncated(t *testing.T) {
	if _, err := DecodeFixed32([]byte{1, 2, 3}); err != ErrOutOfBounds {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
}

func TestDecodeFixed64Truncated(t *testing.T) {
	if _, err := DecodeFixed64([]byte{1, 2, 3}); err != ErrOutOfBounds {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
}

func TestFloat32RoundTripExact(t *testing.T) {
	// Round-trip must preserve NaN bit patterns and the sign of zero
	// exactly: the round-trip law is read(build(v)) == v, not a
	// canonicalized approximation of v.
	bitPatterns := []uint32{
		0x7FC00000, // quiet NaN
		0x7FC00001, // NaN with a nonzero payload
		0x80000000, // negative zero
		0x3F800000, // 1.0
	}
	for _, bits := range bitPatterns {
		v := math.Float32frombits(bits)
		var buf []byte
		buf = AppendFloat32(buf, v)
		got, err := DecodeFloat32(buf)
		if err != nil {
			t.Fatalf("DecodeFloat32: %v", err)
		}
		if math.Float32bits(got) != bits {
			t.Fatalf("bit pattern not preserved: got %x want %x", math.Float32bits(got), bits)
		}
	}
}

func TestFloat64RoundTripExact(t *testing.T) {
	bitPatterns := []uint64{
		0x7FF8000000000000,
		0x8000000000000000,
		0x3FF0000000000000,
	}
	for _, bits := range bitPatterns {
		v := math.Float64frombits(bits)
		var buf []byte
		buf = AppendFloat64(buf, v)
		got, err := DecodeFloat64(buf)
		if err != nil {
			t.Fatalf("DecodeFloat64: %v", err)
		}
		if math.Float64bits(got) != bits {
			t.Fatalf("bit pattern not preserved: got %x want %x", math.Float64bits(got), bits)
		}
	}
}

func TestBoolCodec(t *testing.T) {
	buf := make([]byte, 1)
	PutBool(buf, true)
	if buf[0] != 1 {
		t.Fatalf("PutBool(true): got %x", buf[0])
	}
	PutBool(buf, false)
	if buf[0] != 0 {
		t.Fatalf("PutBool(false): got %x", buf[0])
	}

	v, err := DecodeBool([]byte{0x05}, false)
	if err != nil || !v {
		t.Fatalf("non-strict DecodeBool(0x05) = %v, %v; want true, nil", v, err)
	}
	if _, err := DecodeBool([]byte{0x05}, true); err != ErrInvalidBool {
		t.Fatalf("strict DecodeBool(0x05) = %v; want ErrInvalidBool", err)
	}
}
