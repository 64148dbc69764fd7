// Package validate implements the C8 validator suite of spec.md §4.8: a set
// of independent passes that run over a fully patched AST and emit
// diagnostics. No validator aborts another; every pass runs unconditionally
// and every one relies only on the patched AST and the scope table.
package validate

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/scope"
	"github.com/slicelang/slicec/source"
)

// Run executes every required check from spec.md §4.8 against program,
// reporting diagnostics to h. table is the scope table built and used by
// the patcher; it is passed to validateDuplicates, and no check queries it.
func Run(program *ast.Program, table *scope.Table, h *reporter.Handler) {
	validateStyle(program, h)
	validateDuplicates(program, table, h)
	validateInheritance(program, h)
	validateCycles(program, h)
	validateTags(program, h)
	validateEnums(program, h)
	validateDictionaryKeys(program, h)
	validateEncoding(program, h)
	validateOperations(program, h)
	validateAttributes(program, h)
}

// children returns the handles a container node owns, for the purposes of
// duplicate-name and style checks. It mirrors scope.Table's own traversal
// but additionally covers Operation parameters and Enumerator fields, which
// never get their own FQN entry.
func children(n ast.Node) []ast.WeakHandle {
	switch node := n.(type) {
	case *ast.Module:
		return node.Children
	case *ast.Struct:
		return node.Members
	case *ast.Class:
		return node.Members
	case *ast.Exception:
		return node.Members
	case *ast.Interface:
		return node.Operations
	case *ast.Enum:
		return node.Enumerators
	case *ast.Operation:
		return node.Parameters
	case *ast.Enumerator:
		return node.AssociatedFields
	default:
		return nil
	}
}

// resolveNamed follows a FormNamed, Patched TypeRef to the AST node it
// points at, returning ok=false for anything not yet resolvable (unpatched,
// dangling, or a non-named form).
func resolveNamed(program *ast.Program, h ast.WeakHandle) (ast.Node, bool) {
	n, ok := program.Arena.Get(h)
	if !ok {
		return nil, false
	}
	tr, ok := n.(*ast.TypeRef)
	if !ok || tr.Form != ast.FormNamed || tr.State != ast.Patched {
		return nil, false
	}
	target, ok := program.Arena.Get(tr.ResolvedTarget)
	return target, ok
}

// resolveThroughAliases follows resolveNamed, additionally walking through
// any number of TypeAlias hops, per the transparency rule of spec §4.7. A
// cycle in the alias chain returns ok=false rather than looping forever.
// No diagnostic is emitted for an alias cycle, here or in any other pass:
// callers treat ok=false as "unresolvable" and add no composition edge, so
// validateCycles does not see it either.
func resolveThroughAliases(program *ast.Program, h ast.WeakHandle) (ast.Node, bool) {
	seen := map[ast.WeakHandle]bool{}
	for {
		n, ok := resolveNamed(program, h)
		if !ok {
			return nil, false
		}
		alias, isAlias := n.(*ast.TypeAlias)
		if !isAlias {
			return n, true
		}
		if seen[alias.Self()] {
			return nil, false
		}
		seen[alias.Self()] = true
		h = alias.Target
	}
}

func spanPtr(n ast.Node) *source.Span {
	s := n.Span()
	return &s
}
