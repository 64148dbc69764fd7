package validate

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/source"
)

// validateInheritance checks the base-type shape rules of spec §4.8:
// exceptions and classes extend at most one base of their own kind;
// interfaces may extend several, acyclically; enum underlying types must be
// integral primitives.
func validateInheritance(program *ast.Program, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		switch node := n.(type) {
		case *ast.Exception:
			checkSingleBase(program, node, node.BaseException, ast.KindException, "exception", h)
		case *ast.Class:
			checkSingleBase(program, node, node.BaseClass, ast.KindClass, "class", h)
		case *ast.Interface:
			checkInterfaceBases(program, node, h)
		case *ast.Enum:
			checkEnumUnderlyingType(program, node, h)
		}
	}
	checkInterfaceAcyclic(program, h)
}

func checkSingleBase(program *ast.Program, owner ast.Node, baseRef ast.WeakHandle, want ast.Kind, what string, h *reporter.Handler) {
	if baseRef == 0 {
		return
	}
	target, ok := resolveThroughAliases(program, baseRef)
	if !ok {
		return // DoesNotExist already reported by the patcher
	}
	if target.NodeKind() != want {
		span := refSpan(program, baseRef)
		h.Report(reporter.Diagnostic{
			Code:        reporter.CodeIllegalInheritance,
			Severity:    reporter.Error,
			Message:     "\"" + ast.Name(owner) + "\" cannot extend \"" + ast.Name(target) + "\": expected a " + what,
			PrimarySpan: span,
		})
	}
}

func checkInterfaceBases(program *ast.Program, i *ast.Interface, h *reporter.Handler) {
	for _, baseRef := range i.BaseInterfaces {
		target, ok := resolveThroughAliases(program, baseRef)
		if !ok {
			continue
		}
		if target.NodeKind() != ast.KindInterface {
			span := refSpan(program, baseRef)
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeIllegalInheritance,
				Severity:    reporter.Error,
				Message:     "\"" + ast.Name(i) + "\" cannot extend \"" + ast.Name(target) + "\": expected an interface",
				PrimarySpan: span,
			})
		}
	}
}

// checkInterfaceAcyclic runs cycle detection over the interface-extension
// graph alone (disjoint from the struct/class/exception composition graph
// checked by validateCycles).
func checkInterfaceAcyclic(program *ast.Program, h *reporter.Handler) {
	edges := map[ast.WeakHandle][]ast.WeakHandle{}
	for _, n := range program.Arena.All() {
		i, ok := n.(*ast.Interface)
		if !ok {
			continue
		}
		for _, baseRef := range i.BaseInterfaces {
			target, ok := resolveThroughAliases(program, baseRef)
			if !ok || target.NodeKind() != ast.KindInterface {
				continue
			}
			edges[i.Self()] = append(edges[i.Self()], target.Self())
		}
	}
	for _, scc := range tarjanSCC(edges) {
		if len(scc) < 2 && !hasSelfEdge(edges, scc[0]) {
			continue
		}
		reportInheritanceCycle(program, scc, h)
	}
}

func hasSelfEdge(edges map[ast.WeakHandle][]ast.WeakHandle, h ast.WeakHandle) bool {
	for _, t := range edges[h] {
		if t == h {
			return true
		}
	}
	return false
}

func reportInheritanceCycle(program *ast.Program, scc []ast.WeakHandle, h *reporter.Handler) {
	var names []string
	var primary *ast.Interface
	for _, handle := range scc {
		n, ok := program.Arena.Get(handle)
		if !ok {
			continue
		}
		names = append(names, ast.Name(n))
		if primary == nil {
			primary, _ = n.(*ast.Interface)
		}
	}
	if primary == nil {
		return
	}
	span := primary.Span()
	h.Report(reporter.Diagnostic{
		Code:        reporter.CodeIllegalInheritance,
		Severity:    reporter.Error,
		Message:     "cyclic interface inheritance among " + joinNames(names),
		PrimarySpan: &span,
	})
}

var integralPrimitives = map[string]bool{
	"uint8": true, "int8": true, "uint16": true, "int16": true,
	"uint32": true, "int32": true, "varuint32": true, "varint32": true,
	"uint64": true, "int64": true, "varuint62": true, "varint62": true,
}

func checkEnumUnderlyingType(program *ast.Program, e *ast.Enum, h *reporter.Handler) {
	if e.UnderlyingType == 0 {
		return
	}
	n, ok := program.Arena.Get(e.UnderlyingType)
	if !ok {
		return
	}
	tr, ok := n.(*ast.TypeRef)
	if !ok || tr.Form != ast.FormPrimitive || !integralPrimitives[tr.PrimitiveName] {
		span := n.Span()
		h.Report(reporter.Diagnostic{
			Code:        reporter.CodeInvalidEnum,
			Severity:    reporter.Error,
			Message:     "enum \"" + ast.Name(e) + "\" underlying type must be an integral primitive",
			PrimarySpan: &span,
		})
	}
}

func refSpan(program *ast.Program, h ast.WeakHandle) *source.Span {
	n, ok := program.Arena.Get(h)
	if !ok {
		return nil
	}
	return spanPtr(n)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += "\"" + n + "\""
	}
	return out
}
