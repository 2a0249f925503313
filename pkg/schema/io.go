package schema

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// CompileResult is the outcome of compiling a single schema file: either a
// validated IR, or the diagnostics (parse or validation errors) that
// prevented producing one.
type CompileResult struct {
	IR         *IR
	File       *SchemaFile
	ParseError error
	Validation []*ValidationError
}

// OK reports whether compilation produced a usable IR.
func (r *CompileResult) OK() bool {
	return r.ParseError == nil && len(r.Validation) == 0
}

// CompileFile reads, lexes, parses, validates, and lowers a single ".zp"
// schema file. There is no import graph: a schema file is self-contained,
// so a single invocation fully resolves it.
func CompileFile(path string) (*CompileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return CompileString(path, string(content)), nil
}

// CompileString compiles schema source held in memory, attributing
// diagnostics to name.
func CompileString(name, source string) *CompileResult {
	file, err := ParseFile(name, source)
	if err != nil {
		return &CompileResult{ParseError: err}
	}

	v := NewValidator(file)
	if errs := v.Validate(); len(errs) > 0 {
		return &CompileResult{File: file, Validation: errs}
	}

	ir := Lower(file, v.messages, v.enums)
	return &CompileResult{IR: ir, File: file}
}

// PrintSchema writes a human-readable rendering of a parsed schema file to
// out, in declaration order. It is used by the CLI's `check --verbose`
// verb to show the structure the compiler resolved, and is not part of
// the wire or IR contract.
func PrintSchema(out io.Writer, file *SchemaFile) {
	for i, decl := range file.Declarations {
		switch d := decl.(type) {
		case *MessageDecl:
			printMessage(out, d)
		case *EnumDecl:
			printEnum(out, d)
		}
		if i < len(file.Declarations)-1 {
			fmt.Fprintln(out)
		}
	}
}

func printMessage(out io.Writer, msg *MessageDecl) {
	fmt.Fprintf(out, "message %s {\n", msg.Name)
	for _, f := range msg.Fields {
		fmt.Fprintf(out, "  %s: %s;\n", f.Name, f.FieldType.fieldTypeString())
	}
	fmt.Fprintln(out, "}")
}

func printEnum(out io.Writer, en *EnumDecl) {
	fmt.Fprintf(out, "enum %s {\n", en.Name)
	for _, v := range en.Variants {
		fmt.Fprintf(out, "  %s = %d;\n", v.Name, v.Value)
	}
	fmt.Fprintln(out, "}")
}

// FormatSchema returns PrintSchema's output as a string.
func FormatSchema(file *SchemaFile) string {
	var sb strings.Builder
	PrintSchema(&sb, file)
	return sb.String()
}
