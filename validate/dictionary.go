package validate

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

// validateDictionaryKeys enforces spec §4.8's "dictionary keys" rule: the
// key type of every dictionary<K, V> occurring anywhere in the program must
// be a simple type.
func validateDictionaryKeys(program *ast.Program, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		tr, ok := n.(*ast.TypeRef)
		if !ok || tr.Form != ast.FormDictionary {
			continue
		}
		if tr.DictKey == 0 {
			continue
		}
		if !isLegalDictionaryKey(program, tr.DictKey, map[ast.WeakHandle]bool{}) {
			keyNode, ok := program.Arena.Get(tr.DictKey)
			span := tr.Span()
			if ok {
				span = keyNode.Span()
			}
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeInvalidDictionaryKey,
				Severity:    reporter.Error,
				Message:     "this type cannot be used as a dictionary key",
				PrimarySpan: &span,
			})
		}
	}
}

var illegalPrimitiveKeys = map[string]bool{
	"float32": true, "float64": true, "AnyClass": true,
}

// isLegalDictionaryKey implements the glossary's "simple type" definition
// recursively for struct key types; visiting guards against an accidental
// recursive struct definition looping forever (a cycle there is separately
// reported by validateCycles as InfiniteType).
func isLegalDictionaryKey(program *ast.Program, typeH ast.WeakHandle, visiting map[ast.WeakHandle]bool) bool {
	n, ok := program.Arena.Get(typeH)
	if !ok {
		return true
	}
	tr, ok := n.(*ast.TypeRef)
	if !ok {
		return true
	}
	switch tr.Form {
	case ast.FormPrimitive:
		return !illegalPrimitiveKeys[tr.PrimitiveName]
	case ast.FormSequence, ast.FormDictionary:
		return false
	}

	target, ok := resolveThroughAliases(program, typeH)
	if !ok {
		return true
	}
	switch t := target.(type) {
	case *ast.Enum:
		for _, eh := range t.Enumerators {
			en, ok := program.Arena.Get(eh)
			if !ok {
				continue
			}
			if enumerator, ok := en.(*ast.Enumerator); ok && len(enumerator.AssociatedFields) > 0 {
				return false
			}
		}
		return true
	case *ast.Struct:
		if visiting[t.Self()] {
			return true
		}
		visiting[t.Self()] = true
		for _, mh := range t.Members {
			mn, ok := program.Arena.Get(mh)
			if !ok {
				continue
			}
			dm, ok := mn.(*ast.DataMember)
			if !ok {
				continue
			}
			if !isLegalDictionaryKey(program, dm.Type, visiting) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
