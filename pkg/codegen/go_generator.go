package codegen

import (
	"fmt"
	"io"
	"text/template"

	"github.com/blockberries/zeroproto/pkg/schema"
)

// GoGenerator emits Go source exposing a typed reader/builder pair per
// message and a typed constant set per enum, all backed by
// pkg/zeroproto's runtime MessageReader/MessageBuilder.
type GoGenerator struct{}

// NewGoGenerator creates a new Go code generator.
func NewGoGenerator() *GoGenerator {
	return &GoGenerator{}
}

func (g *GoGenerator) Language() Language { return LanguageGo }

func (g *GoGenerator) FileExtension() string { return ".go" }

// Generate emits Go source for every message and enum in ir.
func (g *GoGenerator) Generate(w io.Writer, ir *schema.IR, opts Options) error {
	ctx := &goContext{IR: ir, Options: opts}
	tmpl, err := template.New("go").Funcs(ctx.funcMap()).Parse(goTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	return tmpl.Execute(w, ctx)
}

type goContext struct {
	IR      *schema.IR
	Options Options
}

func (c *goContext) funcMap() template.FuncMap {
	return template.FuncMap{
		"toPascal":         ToPascalCase,
		"toCamel":          ToCamelCase,
		"toUpperSnake":     ToUpperSnakeCase,
		"comment":          GoComment,
		"indent":           Indent,
		"typeName":         c.typeName,
		"goScalarType":     goScalarType,
		"readerCall":       c.readerCall,
		"builderCall":      c.builderCall,
		"isMessageRef":     c.isMessageRef,
		"isEnumRef":        c.isEnumRef,
		"generateComments": func() bool { return c.Options.GenerateComments },
	}
}

func (c *goContext) typeName(name string) string {
	return c.Options.TypePrefix + ToPascalCase(name) + c.Options.TypeSuffix
}

func (c *goContext) isMessageRef(ft schema.IRFieldType) bool {
	return !ft.IsScalar && !ft.IsVector && !ft.RefIsEnum
}

func (c *goContext) isEnumRef(ft schema.IRFieldType) bool {
	return !ft.IsScalar && !ft.IsVector && ft.RefIsEnum
}

// goScalarType maps a schema.ScalarKind to its Go representation.
func goScalarType(k schema.ScalarKind) string {
	switch k {
	case schema.ScalarU8:
		return "uint8"
	case schema.ScalarU16:
		return "uint16"
	case schema.ScalarU32:
		return "uint32"
	case schema.ScalarU64:
		return "uint64"
	case schema.ScalarI8:
		return "int8"
	case schema.ScalarI16:
		return "int16"
	case schema.ScalarI32:
		return "int32"
	case schema.ScalarI64:
		return "int64"
	case schema.ScalarF32:
		return "float32"
	case schema.ScalarF64:
		return "float64"
	case schema.ScalarBool:
		return "bool"
	case schema.ScalarString:
		return "string"
	case schema.ScalarBytes:
		return "[]byte"
	default:
		return "interface{}"
	}
}

func scalarAccessorSuffix(k schema.ScalarKind) string {
	switch k {
	case schema.ScalarU8:
		return "U8"
	case schema.ScalarU16:
		return "U16"
	case schema.ScalarU32:
		return "U32"
	case schema.ScalarU64:
		return "U64"
	case schema.ScalarI8:
		return "I8"
	case schema.ScalarI16:
		return "I16"
	case schema.ScalarI32:
		return "I32"
	case schema.ScalarI64:
		return "I64"
	case schema.ScalarF32:
		return "F32"
	case schema.ScalarF64:
		return "F64"
	case schema.ScalarBool:
		return "Bool"
	case schema.ScalarString:
		return "String"
	case schema.ScalarBytes:
		return "Bytes"
	default:
		return ""
	}
}

// readerCall renders the right-hand side of a generated reader accessor
// for a single field, given the name of the generated reader's receiver
// (whose r field holds the underlying *zeroproto.MessageReader).
func (c *goContext) readerCall(recv string, f schema.IRField) string {
	switch {
	case f.Type.IsVector:
		return fmt.Sprintf("%s.r.ReadVector(%d, %s)", recv, f.Position, vectorElemTagConst(f.Type.Element))
	case f.Type.IsScalar:
		return fmt.Sprintf("%s.r.Read%s(%d)", recv, scalarAccessorSuffix(f.Type.Scalar), f.Position)
	case f.Type.RefIsEnum:
		return fmt.Sprintf("%s.r.ReadI64(%d)", recv, f.Position)
	default:
		return fmt.Sprintf("%s.r.ReadMessage(%d)", recv, f.Position)
	}
}

// builderCall renders the zeroproto.MessageBuilder call used by a
// generated setter.
func (c *goContext) builderCall(recv string, f schema.IRField) string {
	switch {
	case f.Type.IsVector:
		return fmt.Sprintf("%s.b.SetVector(%d, v)", recv, f.Position)
	case f.Type.IsScalar:
		return fmt.Sprintf("%s.b.Set%s(%d, v)", recv, scalarAccessorSuffix(f.Type.Scalar), f.Position)
	case f.Type.RefIsEnum:
		return fmt.Sprintf("%s.b.SetI64(%d, int64(v))", recv, f.Position)
	default:
		return fmt.Sprintf("%s.b.SetMessage(%d, v)", recv, f.Position)
	}
}

func vectorElemTagConst(elem *schema.IRFieldType) string {
	if elem == nil {
		return "zeroproto.TagU8"
	}
	if elem.IsScalar {
		return "zeroproto.Tag" + scalarAccessorSuffix(elem.Scalar)
	}
	if elem.RefIsEnum {
		return "zeroproto.TagI64"
	}
	return "zeroproto.TagMessage"
}

const goTemplate = `// Code generated by zeroproto-compile. DO NOT EDIT.

package {{.Options.Package}}

import (
	"github.com/blockberries/zeroproto/pkg/zeroproto"
)

{{range .IR.Enums}}
{{$enum := .}}
{{if generateComments}}// {{typeName .Name}} is a generated enum. Every enum field lowers to the
// i64 wire tag; there is no dedicated enum wire encoding.{{end}}
type {{typeName .Name}} int64

const (
{{- range .Variants}}
	{{typeName $enum.Name}}{{toPascal .Name}} {{typeName $enum.Name}} = {{.Value}}
{{- end}}
)
{{end}}

{{range .IR.Messages}}
{{$msg := .}}
{{if generateComments}}// {{typeName .Name}}Reader provides zero-copy access to a {{.Name}} message.{{end}}
type {{typeName .Name}}Reader struct {
	r *zeroproto.MessageReader
}

// New{{typeName .Name}}Reader wraps an already-parsed MessageReader.
func New{{typeName .Name}}Reader(r *zeroproto.MessageReader) *{{typeName .Name}}Reader {
	return &{{typeName .Name}}Reader{r: r}
}

// Parse{{typeName .Name}} decodes a {{.Name}} message image from data.
func Parse{{typeName .Name}}(data []byte, opts zeroproto.Options) (*{{typeName .Name}}Reader, error) {
	r, err := zeroproto.FromSlice(data, opts)
	if err != nil {
		return nil, err
	}
	return &{{typeName .Name}}Reader{r: r}, nil
}

{{range .Fields}}
func (m *{{typeName $msg.Name}}Reader) {{toPascal .Name}}() ({{if .Type.IsVector}}*zeroproto.VectorReader{{else if .Type.IsScalar}}{{goScalarType .Type.Scalar}}{{else if isEnumRef .Type}}{{typeName .Type.RefName}}{{else}}*{{typeName .Type.RefName}}Reader{{end}}, error) {
{{if isEnumRef .Type}}	v, err := {{readerCall "m" .}}
	return {{typeName .Type.RefName}}(v), err
{{else if isMessageRef .Type}}	inner, err := {{readerCall "m" .}}
	if err != nil {
		return nil, err
	}
	return New{{typeName .Type.RefName}}Reader(inner), nil
{{else}}	return {{readerCall "m" .}}
{{end}}}
{{end}}

{{if generateComments}}// {{typeName .Name}}Builder accumulates a {{.Name}} message before encoding.{{end}}
type {{typeName .Name}}Builder struct {
	b *zeroproto.MessageBuilder
}

// New{{typeName .Name}}Builder creates an empty builder.
func New{{typeName .Name}}Builder() *{{typeName .Name}}Builder {
	return &{{typeName .Name}}Builder{b: zeroproto.NewMessageBuilder()}
}

{{range .Fields}}
func (m *{{typeName $msg.Name}}Builder) Set{{toPascal .Name}}(v {{if .Type.IsVector}}[]byte{{else if .Type.IsScalar}}{{goScalarType .Type.Scalar}}{{else if isEnumRef .Type}}{{typeName .Type.RefName}}{{else}}[]byte{{end}}) {
	{{builderCall "m" .}}
}
{{end}}

// Finish encodes the accumulated fields into a message image.
func (m *{{typeName .Name}}Builder) Finish() ([]byte, error) {
	return m.b.Finish()
}
{{end}}
`
