package schema

import "fmt"

// ValidationError is a single validation failure, tagged with the check
// category that raised it and the source span of the offending node.
type ValidationError struct {
	Kind     string
	Message  string
	Span     Position
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

var reservedFieldNames = map[string]bool{
	"id": true, "type": true, "data": true, "buffer": true,
}

var reservedEnumNames = map[string]bool{
	"Result": true, "Option": true, "Status": true,
}

// Validator runs the ordered, abort-on-first-failing-category checks of
// the schema language over a parsed SchemaFile. Unlike a validator that
// accumulates every error across the whole file, each category here must
// pass completely before the next category runs, so a caller never sees
// errors from check 3 mixed in with errors from check 1.
type Validator struct {
	file *SchemaFile

	messages map[string]*MessageDecl
	enums    map[string]*EnumDecl
}

// NewValidator creates a Validator over a parsed file.
func NewValidator(file *SchemaFile) *Validator {
	return &Validator{file: file}
}

// Validate runs all seven checks in the order mandated by the schema
// grammar's semantics, returning the first failing check's errors.
func (v *Validator) Validate() []*ValidationError {
	if errs := v.checkNameUniqueness(); len(errs) > 0 {
		return errs
	}
	if errs := v.checkReservedNames(); len(errs) > 0 {
		return errs
	}
	if errs := v.checkFieldNameUniqueness(); len(errs) > 0 {
		return errs
	}
	if errs := v.checkTypeResolution(); len(errs) > 0 {
		return errs
	}
	if errs := v.checkNoVectorOfVector(); len(errs) > 0 {
		return errs
	}
	if errs := v.checkEnums(); len(errs) > 0 {
		return errs
	}
	if errs := v.checkCycles(); len(errs) > 0 {
		return errs
	}
	return nil
}

// 1. Name uniqueness: declaration names globally unique within the file.
func (v *Validator) checkNameUniqueness() []*ValidationError {
	var errs []*ValidationError
	seen := make(map[string]Position)
	v.messages = make(map[string]*MessageDecl)
	v.enums = make(map[string]*EnumDecl)

	for _, decl := range v.file.Declarations {
		name := decl.declName()
		if first, ok := seen[name]; ok {
			errs = append(errs, &ValidationError{
				Kind:    "DuplicateName",
				Message: fmt.Sprintf("%q already declared at %s", name, first),
				Span:    decl.Pos(),
			})
			continue
		}
		seen[name] = decl.Pos()
		switch d := decl.(type) {
		case *MessageDecl:
			v.messages[name] = d
		case *EnumDecl:
			v.enums[name] = d
		}
	}
	return errs
}

// 2. Reserved names: fixed field-name and enum-name blocklists.
func (v *Validator) checkReservedNames() []*ValidationError {
	var errs []*ValidationError
	for _, decl := range v.file.Declarations {
		switch d := decl.(type) {
		case *MessageDecl:
			for _, f := range d.Fields {
				if reservedFieldNames[f.Name] {
					errs = append(errs, &ValidationError{
						Kind:    "ReservedName",
						Message: fmt.Sprintf("field name %q is reserved", f.Name),
						Span:    f.Pos(),
					})
				}
			}
		case *EnumDecl:
			if reservedEnumNames[d.Name] {
				errs = append(errs, &ValidationError{
					Kind:    "ReservedName",
					Message: fmt.Sprintf("enum name %q is reserved", d.Name),
					Span:    d.Pos(),
				})
			}
		}
	}
	return errs
}

// 3. Field-name uniqueness within a message.
func (v *Validator) checkFieldNameUniqueness() []*ValidationError {
	var errs []*ValidationError
	for _, decl := range v.file.Declarations {
		msg, ok := decl.(*MessageDecl)
		if !ok {
			continue
		}
		seen := make(map[string]Position)
		for _, f := range msg.Fields {
			if first, ok := seen[f.Name]; ok {
				errs = append(errs, &ValidationError{
					Kind:    "DuplicateName",
					Message: fmt.Sprintf("field %q already declared at %s in message %q", f.Name, first, msg.Name),
					Span:    f.Pos(),
				})
				continue
			}
			seen[f.Name] = f.Pos()
		}
	}
	return errs
}

// 4. Type resolution: every IDENT inside a field type resolves to a
// declared message or enum.
func (v *Validator) checkTypeResolution() []*ValidationError {
	var errs []*ValidationError
	var walk func(ft FieldType) *ValidationError
	walk = func(ft FieldType) *ValidationError {
		switch t := ft.(type) {
		case *NamedType:
			if v.messages[t.Name] == nil && v.enums[t.Name] == nil {
				return &ValidationError{
					Kind:    "UnknownType",
					Message: fmt.Sprintf("unresolved type %q", t.Name),
					Span:    t.Pos(),
				}
			}
		case *VectorType:
			return walk(t.Element)
		}
		return nil
	}

	for _, decl := range v.file.Declarations {
		msg, ok := decl.(*MessageDecl)
		if !ok {
			continue
		}
		for _, f := range msg.Fields {
			if e := walk(f.FieldType); e != nil {
				errs = append(errs, e)
			}
		}
	}
	return errs
}

// 5. No vector-of-vector: [ [ T ] ] is rejected.
func (v *Validator) checkNoVectorOfVector() []*ValidationError {
	var errs []*ValidationError
	for _, decl := range v.file.Declarations {
		msg, ok := decl.(*MessageDecl)
		if !ok {
			continue
		}
		for _, f := range msg.Fields {
			vt, ok := f.FieldType.(*VectorType)
			if !ok {
				continue
			}
			if _, nested := vt.Element.(*VectorType); nested {
				errs = append(errs, &ValidationError{
					Kind:    "NestedVector",
					Message: fmt.Sprintf("field %q: vector of vector is not permitted", f.Name),
					Span:    f.Pos(),
				})
			}
		}
	}
	return errs
}

// 6. Enum validation: every variant has an explicit value; no duplicate
// discriminants; values fit in i64 (guaranteed by the parser's int64
// parsing, so only duplication is checked here).
func (v *Validator) checkEnums() []*ValidationError {
	var errs []*ValidationError
	for _, decl := range v.file.Declarations {
		en, ok := decl.(*EnumDecl)
		if !ok {
			continue
		}
		seen := make(map[int64]Position)
		for _, variant := range en.Variants {
			if first, ok := seen[variant.Value]; ok {
				errs = append(errs, &ValidationError{
					Kind:    "DuplicateDiscriminant",
					Message: fmt.Sprintf("value %d already used at %s in enum %q", variant.Value, first, en.Name),
					Span:    variant.Pos(),
				})
				continue
			}
			seen[variant.Value] = variant.Pos()
		}
	}
	return errs
}

// 7. Cycle detection over the by-value containment graph: message A may
// not transitively contain message A. Vectors and nested-message
// indirection both count as by-value containment.
func (v *Validator) checkCycles() []*ValidationError {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int)
	var errs []*ValidationError

	var containedMessages func(ft FieldType) []string
	containedMessages = func(ft FieldType) []string {
		switch t := ft.(type) {
		case *NamedType:
			if _, ok := v.messages[t.Name]; ok {
				return []string{t.Name}
			}
			return nil
		case *VectorType:
			return containedMessages(t.Element)
		default:
			return nil
		}
	}

	var visit func(name string, path []string) *ValidationError
	visit = func(name string, path []string) *ValidationError {
		switch color[name] {
		case gray:
			return &ValidationError{
				Kind:    "ContainmentCycle",
				Message: fmt.Sprintf("message %q transitively contains itself (via %v)", name, append(path, name)),
				Span:    v.messages[name].Pos(),
			}
		case black:
			return nil
		}
		color[name] = gray
		for _, f := range v.messages[name].Fields {
			for _, dep := range containedMessages(f.FieldType) {
				if e := visit(dep, append(path, name)); e != nil {
					return e
				}
			}
		}
		color[name] = black
		return nil
	}

	for _, decl := range v.file.Declarations {
		msg, ok := decl.(*MessageDecl)
		if !ok {
			continue
		}
		if color[msg.Name] == white {
			if e := visit(msg.Name, nil); e != nil {
				errs = append(errs, e)
				return errs
			}
		}
	}
	return errs
}
