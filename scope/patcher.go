package scope

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

// Patch resolves every Unpatched, named TypeRef in program against table,
// implementing the lookup algorithm of spec §4.7: an absolute lookup for
// "::"-prefixed references, otherwise a walk outward from the referencing
// scope trying "scope + id" at each level until the root is reached.
// Primitive, Sequence, and Dictionary TypeRefs are skipped entirely, since
// they are anonymous and never go through scope lookup.
func Patch(program *ast.Program, table *Table, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		tr, ok := n.(*ast.TypeRef)
		if !ok || tr.Form != ast.FormNamed || tr.State != ast.Unpatched {
			continue
		}
		patchOne(table, tr, h)
	}
}

func patchOne(table *Table, tr *ast.TypeRef, h *reporter.Handler) {
	path := tr.UnpatchedName

	if tr.GloballyQualified {
		candidate := RootFQN + "::" + path
		if target, ok := table.Lookup(candidate); ok {
			tr.ResolvedTarget = target
			tr.State = ast.Patched
			return
		}
		reportDoesNotExist(tr, h)
		return
	}

	scopeFQN := table.FQNOf(tr.ReferencingScope)
	if scopeFQN == "" {
		scopeFQN = RootFQN
	}

	cur := scopeFQN
	for {
		candidate := cur + "::" + path
		if target, ok := table.Lookup(candidate); ok {
			tr.ResolvedTarget = target
			tr.State = ast.Patched
			return
		}
		if cur == RootFQN {
			break
		}
		next := parentFQN(cur)
		if next == "" {
			cur = RootFQN
		} else {
			cur = next
		}
	}
	reportDoesNotExist(tr, h)
}

// displayPath renders a possibly globally-qualified path the way it was
// written in source, for diagnostic messages.
func displayPath(tr *ast.TypeRef) string {
	if tr.GloballyQualified {
		return "::" + tr.UnpatchedName
	}
	return tr.UnpatchedName
}

func reportDoesNotExist(tr *ast.TypeRef, h *reporter.Handler) {
	span := tr.Span()
	h.Report(reporter.Diagnostic{
		Code:        reporter.CodeDoesNotExist,
		Severity:    reporter.Error,
		Message:     "\"" + displayPath(tr) + "\" does not exist",
		PrimarySpan: &span,
	})
}
