package validate

import (
	"unicode"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

// validateStyle checks identifier casing conventions: module and type
// identifiers are PascalCase, member-level identifiers (data members,
// operations, parameters, enumerators) are camelCase. Mismatches are
// Warning-severity, per spec §4.8.
func validateStyle(program *ast.Program, h *reporter.Handler) {
	for _, top := range program.TopLevel {
		walkStyle(program, top, h)
	}
}

func walkStyle(program *ast.Program, handle ast.WeakHandle, h *reporter.Handler) {
	n, ok := program.Arena.Get(handle)
	if !ok {
		return
	}
	switch node := n.(type) {
	case *ast.Module:
		checkCase(node.Identifier(), pascalCase, "module", h)
	case *ast.Struct:
		checkCase(node.Identifier(), pascalCase, "struct", h)
	case *ast.Class:
		checkCase(node.Identifier(), pascalCase, "class", h)
	case *ast.Exception:
		checkCase(node.Identifier(), pascalCase, "exception", h)
	case *ast.Interface:
		checkCase(node.Identifier(), pascalCase, "interface", h)
	case *ast.Enum:
		checkCase(node.Identifier(), pascalCase, "enum", h)
	case *ast.Trait:
		checkCase(node.Identifier(), pascalCase, "trait", h)
	case *ast.CustomType:
		checkCase(node.Identifier(), pascalCase, "custom type", h)
	case *ast.TypeAlias:
		checkCase(node.Identifier(), pascalCase, "type alias", h)
	case *ast.Enumerator:
		checkCase(node.Identifier(), camelCase, "enumerator", h)
	case *ast.Operation:
		checkCase(node.Identifier(), camelCase, "operation", h)
	case *ast.Parameter:
		checkCase(node.Identifier(), camelCase, "parameter", h)
	case *ast.DataMember:
		checkCase(node.Identifier(), camelCase, "data member", h)
	case *ast.Field:
		checkCase(node.Identifier(), camelCase, "field", h)
	}
	for _, c := range children(n) {
		walkStyle(program, c, h)
	}
}

// style names a casing convention together with its predicate, so a
// mismatch diagnostic can name the convention without re-deriving it from
// the predicate.
type style struct {
	name string
	ok   func(string) bool
}

var pascalCase = style{name: "PascalCase", ok: isPascalCase}
var camelCase = style{name: "camelCase", ok: isCamelCase}

func checkCase(id *ast.Identifier, want style, what string, h *reporter.Handler) {
	if id == nil || id.Value == "" {
		return
	}
	if want.ok(id.Value) {
		return
	}
	span := id.Span
	h.Report(reporter.Diagnostic{
		Code:        reporter.CodeStyleWarning,
		Severity:    reporter.Warning,
		Message:     "\"" + id.Value + "\" should be " + want.name + " for a " + what + " name",
		PrimarySpan: &span,
	})
}

func isPascalCase(s string) bool {
	r := []rune(s)
	if len(r) == 0 {
		return false
	}
	if !unicode.IsUpper(r[0]) {
		return false
	}
	return !containsUnderscore(s)
}

func isCamelCase(s string) bool {
	r := []rune(s)
	if len(r) == 0 {
		return false
	}
	if !unicode.IsLower(r[0]) {
		return false
	}
	return !containsUnderscore(s)
}

func containsUnderscore(s string) bool {
	for _, r := range s {
		if r == '_' {
			return true
		}
	}
	return false
}
