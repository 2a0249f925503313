package wire

import "testing"

func TestTypeTagValid(t *testing.T) {
	for tag := TagU8; tag <= TagVector; tag++ {
		if !tag.Valid() {
			t.Errorf("tag %d should be valid", tag)
		}
	}
	if TypeTag(15).Valid() {
		t.Errorf("tag 15 should not be valid")
	}
	if TypeTag(255).Valid() {
		t.Errorf("tag 255 should not be valid")
	}
}

func TestTypeTagFixedSize(t *testing.T) {
	cases := map[TypeTag]int{
		TagU8: 1, TagI8: 1, TagBool: 1,
		TagU16: 2, TagI16: 2,
		TagU32: 4, TagI32: 4, TagF32: 4,
		TagU64: 8, TagI64: 8, TagF64: 8,
		TagString: 0, TagBytes: 0, TagMessage: 0, TagVector: 0,
	}
	for tag, want := range cases {
		if got := tag.FixedSize(); got != want {
			t.Errorf("%s.FixedSize() = %d, want %d", tag, got, want)
		}
	}
}

func TestTypeTagIsVariableWidth(t *testing.T) {
	for _, tag := range []TypeTag{TagString, TagBytes, TagMessage, TagVector} {
		if !tag.IsVariableWidth() {
			t.Errorf("%s should be variable width", tag)
		}
	}
	if TagU64.IsVariableWidth() {
		t.Errorf("u64 should not be variable width")
	}
}

func TestFieldEntryRoundTrip(t *testing.T) {
	var buf []byte
	buf = AppendFieldEntry(buf, TagU64, 17)
	if len(buf) != FieldEntrySize {
		t.Fatalf("entry size = %d, want %d", len(buf), FieldEntrySize)
	}
	tag, offset, err := DecodeFieldEntry(buf)
	if err != nil {
		t.Fatalf("DecodeFieldEntry: %v", err)
	}
	if tag != TagU64 || offset != 17 {
		t.Fatalf("got (%s, %d), want (u64, 17)", tag, offset)
	}
}

func TestDecodeFieldEntryTruncated(t *testing.T) {
	if _, _, err := DecodeFieldEntry([]byte{0, 1, 2}); err != ErrEntryTruncated {
		t.Fatalf("got %v, want ErrEntryTruncated", err)
	}
}

func TestPutFieldEntry(t *testing.T) {
	buf := make([]byte, FieldEntrySize)
	PutFieldEntry(buf, TagString, 0x01020304)
	tag, offset, err := DecodeFieldEntry(buf)
	if err != nil {
		t.Fatalf("DecodeFieldEntry: %v", err)
	}
	if tag != TagString || offset != 0x01020304 {
		t.Fatalf("got (%s, %x)", tag, offset)
	}
}
