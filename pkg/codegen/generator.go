// Package codegen implements the ZeroProto emission collaborator: it
// consumes a validated schema.IR and emits target-language source. The
// compiler core (pkg/schema) has no dependency on this package; codegen
// depends only on the IR shape, exactly as the spec's "thin shell"
// framing describes.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blockberries/zeroproto/pkg/schema"
)

// Language identifies a code-generation target.
type Language string

const (
	LanguageGo Language = "go"
)

// Generator is the interface every emission collaborator implements.
type Generator interface {
	Generate(w io.Writer, ir *schema.IR, options Options) error
	Language() Language
	FileExtension() string
}

// Options configures code generation.
type Options struct {
	// Package is the generated package's name.
	Package string

	// GenerateComments includes doc comments on the emitted enum, reader
	// and builder types.
	GenerateComments bool

	// TypePrefix adds a prefix to all generated type names.
	TypePrefix string

	// TypeSuffix adds a suffix to all generated type names.
	TypeSuffix string
}

// DefaultOptions returns the default code generation options.
func DefaultOptions() Options {
	return Options{
		Package:          "generated",
		GenerateComments: true,
	}
}

var registry = make(map[Language]Generator)

// Register registers a generator for a language.
func Register(gen Generator) {
	registry[gen.Language()] = gen
}

// Get returns the generator for a language.
func Get(lang Language) (Generator, bool) {
	gen, ok := registry[lang]
	return gen, ok
}

// Languages returns all registered languages.
func Languages() []Language {
	langs := make([]Language, 0, len(registry))
	for lang := range registry {
		langs = append(langs, lang)
	}
	return langs
}

var titleCaser = cases.Title(language.English)

// ToPascalCase converts a schema identifier to PascalCase, the convention
// used for generated Go exported type and field names.
func ToPascalCase(s string) string {
	parts := splitName(s)
	for i, p := range parts {
		parts[i] = titleCaser.String(strings.ToLower(p))
	}
	return strings.Join(parts, "")
}

// ToCamelCase converts a schema identifier to camelCase.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return ""
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// ToUpperSnakeCase converts a schema identifier to UPPER_SNAKE_CASE, used
// for generated enum variant constants.
func ToUpperSnakeCase(s string) string {
	parts := splitName(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p)
	}
	return strings.Join(parts, "_")
}

func splitName(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	var current strings.Builder
	for i, r := range s {
		if r == '_' || r == '-' {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			continue
		}
		if i > 0 && isUpper(r) {
			// An upper-case letter starts a new word after a lower-case
			// letter, or when it ends an acronym ("HTTPCode" -> HTTP, Code).
			nextLower := i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z'
			if !isUpper(rune(s[i-1])) || nextLower {
				if current.Len() > 0 {
					parts = append(parts, current.String())
					current.Reset()
				}
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Indent indents each non-empty line of s by the given number of tabs.
func Indent(s string, tabs int) string {
	indent := strings.Repeat("\t", tabs)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// GoComment wraps text as a Go doc comment.
func GoComment(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "// " + line
	}
	return strings.Join(lines, "\n")
}

// GeneratorError represents a code generation error.
type GeneratorError struct {
	Message string
	Name    string
}

func (e *GeneratorError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Message
}
