// Package schema implements the ZeroProto schema compiler: lexer, parser,
// validator, and IR lowering for ".zp" schema files.
package schema

import "fmt"

// Position identifies a point in a source file for diagnostics.
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Node is implemented by every AST node.
type Node interface {
	Pos() Position
	End() Position
}

// SchemaFile is the root AST node: a sequence of message and enum
// declarations, in source order.
type SchemaFile struct {
	Position     Position
	EndPos       Position
	Declarations []Decl
}

func (f *SchemaFile) Pos() Position { return f.Position }
func (f *SchemaFile) End() Position { return f.EndPos }

// Decl is implemented by MessageDecl and EnumDecl.
type Decl interface {
	Node
	declName() string
}

// MessageDecl is a `message Name { ... }` declaration.
type MessageDecl struct {
	Position Position
	EndPos   Position
	Name     string
	Fields   []*FieldDecl
}

func (m *MessageDecl) Pos() Position  { return m.Position }
func (m *MessageDecl) End() Position  { return m.EndPos }
func (m *MessageDecl) declName() string { return m.Name }

// FieldDecl is a single `name : type ;` field within a message.
type FieldDecl struct {
	Position  Position
	EndPos    Position
	Name      string
	FieldType FieldType
}

func (f *FieldDecl) Pos() Position { return f.Position }
func (f *FieldDecl) End() Position { return f.EndPos }

// EnumDecl is an `enum Name { ... }` declaration.
type EnumDecl struct {
	Position Position
	EndPos   Position
	Name     string
	Variants []*EnumVariant
}

func (e *EnumDecl) Pos() Position  { return e.Position }
func (e *EnumDecl) End() Position  { return e.EndPos }
func (e *EnumDecl) declName() string { return e.Name }

// EnumVariant is a single `name = value ;` entry within an enum.
type EnumVariant struct {
	Position Position
	EndPos   Position
	Name     string
	Value    int64
}

func (v *EnumVariant) Pos() Position { return v.Position }
func (v *EnumVariant) End() Position { return v.EndPos }

// FieldType is implemented by ScalarType, NamedType, and VectorType.
type FieldType interface {
	Node
	fieldTypeString() string
}

// ScalarKind enumerates the built-in scalar type keywords.
type ScalarKind int

const (
	ScalarU8 ScalarKind = iota
	ScalarU16
	ScalarU32
	ScalarU64
	ScalarI8
	ScalarI16
	ScalarI32
	ScalarI64
	ScalarF32
	ScalarF64
	ScalarBool
	ScalarString
	ScalarBytes
)

var scalarNames = map[string]ScalarKind{
	"u8": ScalarU8, "u16": ScalarU16, "u32": ScalarU32, "u64": ScalarU64,
	"i8": ScalarI8, "i16": ScalarI16, "i32": ScalarI32, "i64": ScalarI64,
	"f32": ScalarF32, "f64": ScalarF64, "bool": ScalarBool,
	"string": ScalarString, "bytes": ScalarBytes,
}

func (k ScalarKind) String() string {
	for name, kind := range scalarNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// LookupScalar resolves a keyword to a ScalarKind.
func LookupScalar(name string) (ScalarKind, bool) {
	k, ok := scalarNames[name]
	return k, ok
}

// ScalarType is a built-in scalar field type (`u8`, `string`, ...).
type ScalarType struct {
	Position Position
	EndPos   Position
	Kind     ScalarKind
}

func (s *ScalarType) Pos() Position         { return s.Position }
func (s *ScalarType) End() Position         { return s.EndPos }
func (s *ScalarType) fieldTypeString() string { return s.Kind.String() }

// NamedType is a reference to a user-declared message or enum by name.
type NamedType struct {
	Position Position
	EndPos   Position
	Name     string
}

func (n *NamedType) Pos() Position         { return n.Position }
func (n *NamedType) End() Position         { return n.EndPos }
func (n *NamedType) fieldTypeString() string { return n.Name }

// VectorType is `[ type ]`: a vector of the given element type.
type VectorType struct {
	Position Position
	EndPos   Position
	Element  FieldType
}

func (v *VectorType) Pos() Position { return v.Position }
func (v *VectorType) End() Position { return v.EndPos }
func (v *VectorType) fieldTypeString() string {
	return "[" + v.Element.fieldTypeString() + "]"
}
