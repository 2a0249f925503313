package schema

import "testing"

func TestParseEmptyFile(t *testing.T) {
	f, err := ParseFile("test.zp", "")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(f.Declarations) != 0 {
		t.Fatalf("got %d declarations, want 0", len(f.Declarations))
	}
}

func TestParseSingleMessage(t *testing.T) {
	f, err := ParseFile("test.zp", `message M { v: u64; }`)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(f.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(f.Declarations))
	}
	msg, ok := f.Declarations[0].(*MessageDecl)
	if !ok {
		t.Fatalf("declaration is not a MessageDecl")
	}
	if msg.Name != "M" {
		t.Fatalf("name = %q, want M", msg.Name)
	}
	if len(msg.Fields) != 1 || msg.Fields[0].Name != "v" {
		t.Fatalf("fields = %+v", msg.Fields)
	}
	scalar, ok := msg.Fields[0].FieldType.(*ScalarType)
	if !ok || scalar.Kind != ScalarU64 {
		t.Fatalf("field type = %+v", msg.Fields[0].FieldType)
	}
}

func TestParseUserExample(t *testing.T) {
	src := `message User { user_id: u64; name: string; age: u8; }`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	msg := f.Declarations[0].(*MessageDecl)
	if len(msg.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(msg.Fields))
	}
	names := []string{"user_id", "name", "age"}
	for i, n := range names {
		if msg.Fields[i].Name != n {
			t.Errorf("field %d name = %q, want %q", i, msg.Fields[i].Name, n)
		}
	}
}

func TestParseEnum(t *testing.T) {
	src := `enum Color { Red = 0; Green = 1; Blue = 2; }`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	en := f.Declarations[0].(*EnumDecl)
	if en.Name != "Color" || len(en.Variants) != 3 {
		t.Fatalf("got %+v", en)
	}
	if en.Variants[2].Name != "Blue" || en.Variants[2].Value != 2 {
		t.Fatalf("variant 2 = %+v", en.Variants[2])
	}
}

func TestParseNegativeEnumValue(t *testing.T) {
	src := `enum E { Unknown = -1; Zero = 0; }`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	en := f.Declarations[0].(*EnumDecl)
	if en.Variants[0].Value != -1 {
		t.Fatalf("value = %d, want -1", en.Variants[0].Value)
	}
}

func TestParseVectorType(t *testing.T) {
	src := `message M { items: [u32]; }`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	msg := f.Declarations[0].(*MessageDecl)
	vt, ok := msg.Fields[0].FieldType.(*VectorType)
	if !ok {
		t.Fatalf("field type = %+v, want VectorType", msg.Fields[0].FieldType)
	}
	scalar, ok := vt.Element.(*ScalarType)
	if !ok || scalar.Kind != ScalarU32 {
		t.Fatalf("element type = %+v", vt.Element)
	}
}

func TestParseNamedType(t *testing.T) {
	src := `message A { b: B; }`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	msg := f.Declarations[0].(*MessageDecl)
	named, ok := msg.Fields[0].FieldType.(*NamedType)
	if !ok || named.Name != "B" {
		t.Fatalf("field type = %+v", msg.Fields[0].FieldType)
	}
}

func TestParseTrailingCommaTolerated(t *testing.T) {
	src := "message M { a: u8, b: u8, }"
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	msg := f.Declarations[0].(*MessageDecl)
	if len(msg.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(msg.Fields))
	}
}

func TestParseStraySemicolonsBetweenVariants(t *testing.T) {
	src := "enum E { ;; A = 0 ;; B = 1; }"
	_, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
}

func TestParseMultipleMessagesAndEnums(t *testing.T) {
	src := `
message A { x: u8; }
enum B { Zero = 0; }
message C { a: A; b: B; }
`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(f.Declarations) != 3 {
		t.Fatalf("got %d declarations, want 3", len(f.Declarations))
	}
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	_, err := ParseFile("test.zp", "message { }")
	if err == nil {
		t.Fatalf("expected a parse error for a missing message name")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if perr.Expected[0] != TokenIdent {
		t.Fatalf("expected = %v", perr.Expected)
	}
}

func TestParseErrorSpanMatchesSource(t *testing.T) {
	src := "message Foo {\n  bad\n}"
	_, err := ParseFile("test.zp", src)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	perr := err.(*ParseError)
	if perr.Span.Line != 3 {
		t.Fatalf("span line = %d, want 3 (the closing brace encountered where ':' was expected)", perr.Span.Line)
	}
}

func TestParseVectorOfVectorParsesStructurally(t *testing.T) {
	// The grammar itself permits nesting brackets; rejecting vector-of-vector
	// is the validator's job (check 5), not the parser's.
	src := `message M { m: [[u8]]; }`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	msg := f.Declarations[0].(*MessageDecl)
	outer, ok := msg.Fields[0].FieldType.(*VectorType)
	if !ok {
		t.Fatalf("field type = %+v", msg.Fields[0].FieldType)
	}
	if _, ok := outer.Element.(*VectorType); !ok {
		t.Fatalf("element type = %+v, want nested VectorType", outer.Element)
	}
}
