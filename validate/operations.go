package validate

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

// validateOperations implements spec §4.8's "operation return" and "stream
// position" rules.
func validateOperations(program *ast.Program, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		op, ok := n.(*ast.Operation)
		if !ok {
			continue
		}
		checkStreamPosition(program, op, h)
		checkReturnTuple(op, h)
	}
}

func checkReturnTuple(op *ast.Operation, h *reporter.Handler) {
	if op.ReturnIsTuple && len(op.ReturnTypes) < 2 {
		span := op.Span()
		h.Report(reporter.Diagnostic{
			Code:        reporter.CodeUnknown,
			Severity:    reporter.Error,
			Message:     "a parenthesized return type must list at least two types",
			PrimarySpan: &span,
		})
	}
}

func checkStreamPosition(program *ast.Program, op *ast.Operation, h *reporter.Handler) {
	streamCount := 0
	for i, ph := range op.Parameters {
		n, ok := program.Arena.Get(ph)
		if !ok {
			continue
		}
		p, ok := n.(*ast.Parameter)
		if !ok || !p.Stream {
			continue
		}
		streamCount++
		if i != len(op.Parameters)-1 {
			span := p.Span()
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeSyntax,
				Severity:    reporter.Error,
				Message:     "streamed parameter \"" + ast.Name(p) + "\" must be the last parameter",
				PrimarySpan: &span,
			})
		}
		if streamCount > 1 {
			span := p.Span()
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeSyntax,
				Severity:    reporter.Error,
				Message:     "at most one parameter may be streamed",
				PrimarySpan: &span,
			})
		}
	}
}
