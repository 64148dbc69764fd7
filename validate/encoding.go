package validate

import (
	"strconv"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/source"
)

// validateEncoding implements spec §4.8's "encoding compatibility" rule.
// Classes and the AnyClass primitive require class-graph support, which the
// encoding-2 wire format (the lightweight encoding introduced alongside
// interfaces-as-values) dropped; encoding 1 permits both. Every other
// primitive, container, and reference type is encoding-agnostic.
func validateEncoding(program *ast.Program, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		switch node := n.(type) {
		case *ast.Class:
			span := node.Span()
			checkEncodingSupportsClasses(program, span, "class \""+ast.Name(node)+"\"", h)
		case *ast.TypeRef:
			if node.Form == ast.FormPrimitive && node.PrimitiveName == "AnyClass" {
				span := node.Span()
				checkEncodingSupportsClasses(program, span, "AnyClass", h)
			}
		}
	}
}

func checkEncodingSupportsClasses(program *ast.Program, span source.Span, what string, h *reporter.Handler) {
	enc := program.EncodingFor(span.File)
	if enc == 1 {
		return
	}
	h.Report(reporter.Diagnostic{
		Code:        reporter.CodeIncompatibleEncoding,
		Severity:    reporter.Error,
		Message:     what + " requires encoding 1, but this file uses encoding " + strconv.Itoa(enc),
		PrimarySpan: &span,
	})
}
