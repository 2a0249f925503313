package schema

import "testing"

func validate(t *testing.T, src string) []*ValidationError {
	t.Helper()
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return NewValidator(f).Validate()
}

func TestValidatorAcceptsUserExample(t *testing.T) {
	src := `message User { user_id: u64; name: string; age: u8; }`
	if errs := validate(t, src); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidatorDuplicateDeclarationName(t *testing.T) {
	src := `message A { x: u8; } message A { y: u8; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "DuplicateName" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorReservedFieldName(t *testing.T) {
	src := `message X { id: u32; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "ReservedName" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorReservedEnumName(t *testing.T) {
	src := `enum Result { Ok = 0; Err = 1; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "ReservedName" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorDuplicateFieldNameWithinMessage(t *testing.T) {
	src := `message M { a: u8; a: u16; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "DuplicateName" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorUnknownType(t *testing.T) {
	src := `message M { x: Nonexistent; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "UnknownType" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorVectorOfVectorRejected(t *testing.T) {
	src := `message M { m: [[u8]]; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "NestedVector" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorDuplicateDiscriminant(t *testing.T) {
	src := `enum E { A = 0; B = 0; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "DuplicateDiscriminant" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorCycleDetection(t *testing.T) {
	src := `message A { b: B; } message B { a: A; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "ContainmentCycle" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorCycleThroughVector(t *testing.T) {
	src := `message A { bs: [B]; } message B { a: A; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "ContainmentCycle" {
		t.Fatalf("got %v", errs)
	}
}

func TestValidatorReferenceWithoutPathBackIsNotACycle(t *testing.T) {
	// A message may be referenced by another message's field without that
	// being a cycle, as long as there's no path back.
	src := `message A { x: u8; } message B { a: A; }`
	if errs := validate(t, src); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidatorEnumFieldReferenceIsNotContainmentCycle(t *testing.T) {
	src := `enum Color { Red = 0; } message M { c: Color; }`
	if errs := validate(t, src); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidatorAbortsAfterFirstFailingCategory(t *testing.T) {
	// 'id' is a reserved field name (check 2) and 'M' also has an unresolved
	// type reference (check 4, which never runs because check 2 already
	// failed). Only the ReservedName error should be reported.
	src := `message M { id: u8; x: Nonexistent; }`
	errs := validate(t, src)
	if len(errs) != 1 || errs[0].Kind != "ReservedName" {
		t.Fatalf("got %v, want exactly one ReservedName error", errs)
	}
}
