package schema

import (
	"sort"

	"github.com/blockberries/zeroproto/internal/wire"
)

// IRFieldType mirrors FieldType after name resolution: scalar kinds are
// unchanged, named references carry the resolved declaration kind and
// name, and vectors carry their resolved element type plus the wire tag
// used to decode each element.
type IRFieldType struct {
	Scalar      ScalarKind
	IsScalar    bool
	RefName     string
	RefIsEnum   bool
	IsVector    bool
	Element     *IRFieldType
	ElementTag  wire.TypeTag
}

// IRField is a message field after lowering: its final table position
// (equal to declaration order), its wire tag, and its resolved type.
type IRField struct {
	Name     string
	Position int
	Tag      wire.TypeTag
	Type     IRFieldType
}

// IRMessage is a validated, lowered message declaration.
type IRMessage struct {
	Name   string
	Fields []IRField
}

// IREnumVariant is a single resolved enum discriminant.
type IREnumVariant struct {
	Name  string
	Value int64
}

// IREnum is a validated, lowered enum declaration. Variants are sorted by
// value for stable generated-code ordering.
type IREnum struct {
	Name     string
	Variants []IREnumVariant
}

// IR is the fully resolved, validated representation handed to the
// emission collaborator: every named reference carries a resolved target,
// every field has a final position and wire tag, and enum variants are in
// stable (value-sorted) order.
type IR struct {
	Messages []IRMessage
	Enums    []IREnum
}

// scalarWireTag maps a ScalarKind to its wire.TypeTag; the two enums share
// ordering by construction (see §4.1's type tag table), but lowering goes
// through this explicit table rather than relying on identical iota values.
var scalarWireTag = map[ScalarKind]wire.TypeTag{
	ScalarU8:     wire.TagU8,
	ScalarU16:    wire.TagU16,
	ScalarU32:    wire.TagU32,
	ScalarU64:    wire.TagU64,
	ScalarI8:     wire.TagI8,
	ScalarI16:    wire.TagI16,
	ScalarI32:    wire.TagI32,
	ScalarI64:    wire.TagI64,
	ScalarF32:    wire.TagF32,
	ScalarF64:    wire.TagF64,
	ScalarBool:   wire.TagBool,
	ScalarString: wire.TagString,
	ScalarBytes:  wire.TagBytes,
}

// Lower builds an IR from a SchemaFile that has already passed
// Validator.Validate. It does not re-validate; callers must validate
// first.
func Lower(file *SchemaFile, messages map[string]*MessageDecl, enums map[string]*EnumDecl) *IR {
	ir := &IR{}

	for _, decl := range file.Declarations {
		switch d := decl.(type) {
		case *MessageDecl:
			ir.Messages = append(ir.Messages, lowerMessage(d, messages, enums))
		case *EnumDecl:
			ir.Enums = append(ir.Enums, lowerEnum(d))
		}
	}
	return ir
}

func lowerMessage(msg *MessageDecl, messages map[string]*MessageDecl, enums map[string]*EnumDecl) IRMessage {
	out := IRMessage{Name: msg.Name}
	for i, f := range msg.Fields {
		ft := lowerType(f.FieldType, messages, enums)
		out.Fields = append(out.Fields, IRField{
			Name:     f.Name,
			Position: i,
			Tag:      wireTagForType(ft),
			Type:     ft,
		})
	}
	return out
}

// wireTagForType resolves the top-level wire tag for a field's lowered
// type: scalars map directly, named message references lower to
// TagMessage, named enum references lower to TagI64 (enum fields are
// always encoded as their i64 discriminant -- there is no separate enum
// wire representation), and vectors always lower to TagVector.
func wireTagForType(ft IRFieldType) wire.TypeTag {
	switch {
	case ft.IsVector:
		return wire.TagVector
	case ft.IsScalar:
		return scalarWireTag[ft.Scalar]
	case ft.RefIsEnum:
		return wire.TagI64
	default:
		return wire.TagMessage
	}
}

func lowerType(ft FieldType, messages map[string]*MessageDecl, enums map[string]*EnumDecl) IRFieldType {
	switch t := ft.(type) {
	case *ScalarType:
		return IRFieldType{Scalar: t.Kind, IsScalar: true}
	case *NamedType:
		_, isEnum := enums[t.Name]
		return IRFieldType{RefName: t.Name, RefIsEnum: isEnum}
	case *VectorType:
		elem := lowerType(t.Element, messages, enums)
		return IRFieldType{IsVector: true, Element: &elem, ElementTag: wireTagForType(elem)}
	default:
		return IRFieldType{}
	}
}

func lowerEnum(en *EnumDecl) IREnum {
	out := IREnum{Name: en.Name}
	for _, v := range en.Variants {
		out.Variants = append(out.Variants, IREnumVariant{Name: v.Name, Value: v.Value})
	}
	sort.Slice(out.Variants, func(i, j int) bool { return out.Variants[i].Value < out.Variants[j].Value })
	return out
}
