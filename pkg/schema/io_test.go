package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompileStringUserExample(t *testing.T) {
	src := `message User { user_id: u64; name: string; age: u8; }`
	res := CompileString("test.zp", src)
	if !res.OK() {
		t.Fatalf("CompileString failed: parse=%v validation=%v", res.ParseError, res.Validation)
	}
	if len(res.IR.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(res.IR.Messages))
	}
	msg := res.IR.Messages[0]
	if msg.Name != "User" || len(msg.Fields) != 3 {
		t.Fatalf("got %+v", msg)
	}
	if msg.Fields[0].Position != 0 || msg.Fields[1].Position != 1 || msg.Fields[2].Position != 2 {
		t.Fatalf("field positions not in declaration order: %+v", msg.Fields)
	}
}

func TestCompileStringParseFailure(t *testing.T) {
	res := CompileString("test.zp", "message {")
	if res.OK() {
		t.Fatalf("expected a parse failure")
	}
	if res.ParseError == nil {
		t.Fatalf("expected ParseError to be set")
	}
}

func TestCompileStringValidationFailure(t *testing.T) {
	res := CompileString("test.zp", `message X { id: u32; }`)
	if res.OK() {
		t.Fatalf("expected a validation failure")
	}
	if len(res.Validation) != 1 || res.Validation[0].Kind != "ReservedName" {
		t.Fatalf("got %v", res.Validation)
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.zp")
	src := `message User { user_id: u64; name: string; age: u8; }`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	res, err := CompileFile(path)
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if !res.OK() {
		t.Fatalf("CompileFile result not OK: %v %v", res.ParseError, res.Validation)
	}
}

func TestCompileFileMissing(t *testing.T) {
	_, err := CompileFile(filepath.Join(t.TempDir(), "missing.zp"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestFormatSchemaRoundTripsStructure(t *testing.T) {
	src := `message User { user_id: u64; name: string; age: u8; }`
	f, err := ParseFile("test.zp", src)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	out := FormatSchema(f)
	if !strings.Contains(out, "message User") || !strings.Contains(out, "user_id: u64") {
		t.Fatalf("FormatSchema output missing expected content: %q", out)
	}
}
