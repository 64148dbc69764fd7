package validate

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

// defaultEnumMin/defaultEnumMax are used when an enum declares no underlying type; chosen
// to match the range of the language's default signed 32-bit discriminant.
const (
	defaultEnumMin = -2147483648
	defaultEnumMax = 2147483647
)

// validateEnums implements spec §4.8's enum rules: explicit discriminants
// must fit the underlying type's range, must be unique unless the enum is
// unchecked, and a "compact" enum (one where no enumerator specifies an
// explicit discriminant) is trivially contiguous from 0 by construction.
func validateEnums(program *ast.Program, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		e, ok := n.(*ast.Enum)
		if !ok {
			continue
		}
		validateOneEnum(program, e, h)
	}
}

func validateOneEnum(program *ast.Program, e *ast.Enum, h *reporter.Handler) {
	lo, hi := enumRange(program, e)
	seen := map[int64]*ast.Enumerator{}
	next := int64(0)
	for _, eh := range e.Enumerators {
		n, ok := program.Arena.Get(eh)
		if !ok {
			continue
		}
		en, ok := n.(*ast.Enumerator)
		if !ok {
			continue
		}
		var value int64
		if en.Discriminant != nil {
			value = *en.Discriminant
			if value < lo || value > hi {
				span := en.Span()
				h.Report(reporter.Diagnostic{
					Code:        reporter.CodeInvalidEnum,
					Severity:    reporter.Error,
					Message:     "discriminant for \"" + ast.Name(en) + "\" is out of range for the underlying type",
					PrimarySpan: &span,
				})
			}
		} else {
			value = next
		}
		next = value + 1

		if !e.Unchecked {
			if prev, exists := seen[value]; exists {
				span := en.Span()
				prevSpan := prev.Span()
				h.Report(reporter.Diagnostic{
					Code:        reporter.CodeInvalidEnum,
					Severity:    reporter.Error,
					Message:     "duplicate discriminant among \"" + ast.Name(prev) + "\" and \"" + ast.Name(en) + "\"",
					PrimarySpan: &span,
					Notes: []reporter.Note{
						{Message: "previously used here", Span: &prevSpan},
					},
				})
				continue
			}
			seen[value] = en
		}
	}
}

func enumRange(program *ast.Program, e *ast.Enum) (int64, int64) {
	if e.UnderlyingType == 0 {
		return defaultEnumMin, defaultEnumMax
	}
	n, ok := program.Arena.Get(e.UnderlyingType)
	if !ok {
		return defaultEnumMin, defaultEnumMax
	}
	tr, ok := n.(*ast.TypeRef)
	if !ok || tr.Form != ast.FormPrimitive {
		return defaultEnumMin, defaultEnumMax
	}
	switch tr.PrimitiveName {
	case "uint8":
		return 0, 255
	case "int8":
		return -128, 127
	case "uint16":
		return 0, 65535
	case "int16":
		return -32768, 32767
	case "uint32", "varuint32":
		return 0, 4294967295
	case "int32", "varint32":
		return defaultEnumMin, defaultEnumMax
	case "uint64":
		return 0, 9223372036854775807 // discriminants are int64
	case "int64":
		return -9223372036854775808, 9223372036854775807
	case "varuint62":
		return 0, 4611686018427387903
	case "varint62":
		return -2305843009213693952, 2305843009213693951
	default:
		return defaultEnumMin, defaultEnumMax
	}
}
