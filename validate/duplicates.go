package validate

import (
	"golang.org/x/text/cases"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/scope"
)

var foldCase = cases.Fold()

// validateDuplicates enforces spec §4.8's "duplicate member names" rule:
// within any container, data-member/operation/parameter/enumerator
// identifiers are unique under a Unicode-aware case fold. The scope table
// already reports exact-FQN collisions during Build; this pass walks every
// container reachable from the top-level modules (module children included)
// and so also covers the un-keyed siblings (members, parameters, enumerator
// fields) the table never inserts. table is not consulted.
func validateDuplicates(program *ast.Program, table *scope.Table, h *reporter.Handler) {
	for _, top := range program.TopLevel {
		walkDuplicates(program, top, h)
	}
}

func walkDuplicates(program *ast.Program, handle ast.WeakHandle, h *reporter.Handler) {
	n, ok := program.Arena.Get(handle)
	if !ok {
		return
	}
	kids := children(n)
	seen := make(map[string]*ast.Identifier, len(kids))
	for _, c := range kids {
		cn, ok := program.Arena.Get(c)
		if !ok {
			continue
		}
		id := cn.Identifier()
		if id == nil || id.Value == "" {
			continue
		}
		key := foldCase.String(id.Value)
		if prev, exists := seen[key]; exists {
			span := id.Span
			prevSpan := prev.Span
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeRedefinition,
				Severity:    reporter.Error,
				Message:     "duplicate name \"" + id.Value + "\" in this scope",
				PrimarySpan: &span,
				Notes: []reporter.Note{
					{Message: "previously defined here", Span: &prevSpan},
				},
			})
			continue
		}
		seen[key] = id
	}
	for _, c := range kids {
		walkDuplicates(program, c, h)
	}
}
