package validate

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

// validateCycles implements spec §4.8's composition-cycle check (P5): a
// directed graph over struct/class/exception nodes, with an edge for every
// non-optional field whose type resolves (through TypeAlias transparency)
// to another struct/class/exception. Compact structs add edges even through
// optional fields, since they must be acyclic unconditionally. Any
// non-trivial strongly connected component, or a self-loop, is InfiniteType.
func validateCycles(program *ast.Program, h *reporter.Handler) {
	edges := map[ast.WeakHandle][]ast.WeakHandle{}
	for _, n := range program.Arena.All() {
		switch node := n.(type) {
		case *ast.Struct:
			for _, m := range node.Members {
				addCompositionEdge(program, node.Self(), m, node.Compact, edges)
			}
		case *ast.Class:
			for _, m := range node.Members {
				addCompositionEdge(program, node.Self(), m, false, edges)
			}
		case *ast.Exception:
			for _, m := range node.Members {
				addCompositionEdge(program, node.Self(), m, false, edges)
			}
		}
	}

	for _, scc := range tarjanSCC(edges) {
		if len(scc) < 2 && !hasSelfEdge(edges, scc[0]) {
			continue
		}
		reportCompositionCycle(program, scc, h)
	}
}

func addCompositionEdge(program *ast.Program, owner ast.WeakHandle, memberHandle ast.WeakHandle, forceIncludeOptional bool, edges map[ast.WeakHandle][]ast.WeakHandle) {
	n, ok := program.Arena.Get(memberHandle)
	if !ok {
		return
	}
	dm, ok := n.(*ast.DataMember)
	if !ok {
		return
	}
	typeNode, ok := program.Arena.Get(dm.Type)
	if !ok {
		return
	}
	tr, ok := typeNode.(*ast.TypeRef)
	if !ok {
		return
	}
	if tr.Optional && !forceIncludeOptional {
		return
	}
	target, ok := resolveThroughAliases(program, dm.Type)
	if !ok {
		return
	}
	switch target.NodeKind() {
	case ast.KindStruct, ast.KindClass, ast.KindException:
		edges[owner] = append(edges[owner], target.Self())
	}
}

func reportCompositionCycle(program *ast.Program, scc []ast.WeakHandle, h *reporter.Handler) {
	var names []string
	var primary ast.Node
	for _, handle := range scc {
		n, ok := program.Arena.Get(handle)
		if !ok {
			continue
		}
		names = append(names, ast.Name(n))
		if primary == nil {
			primary = n
		}
	}
	if primary == nil {
		return
	}
	span := primary.Span()
	h.Report(reporter.Diagnostic{
		Code:        reporter.CodeInfiniteType,
		Severity:    reporter.Error,
		Message:     "infinite type composition among " + joinNames(names),
		PrimarySpan: &span,
	})
}
