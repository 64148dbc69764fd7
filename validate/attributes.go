package validate

import (
	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

// knownAttributes maps a recognized attribute name to its expected argument
// shape: minArgs/maxArgs (-1 = unbounded).
type attrShape struct{ minArgs, maxArgs int }

var knownAttributes = map[string]attrShape{
	"deprecated":     {0, 1},
	"cs::namespace":  {1, 1},
	"allow":          {1, -1},
	"oneway":         {0, 0},
}

// validateAttributes implements spec §4.8's "attribute arguments" rule:
// unknown attributes are a Warning, known attributes are checked for their
// required argument count.
func validateAttributes(program *ast.Program, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		for _, a := range n.Attributes() {
			checkAttribute(a, h)
		}
	}
	for _, attrs := range program.FileAttributes {
		for _, a := range attrs {
			checkAttribute(a, h)
		}
	}
}

func checkAttribute(a ast.Attribute, h *reporter.Handler) {
	shape, known := knownAttributes[a.Name]
	if !known {
		span := a.Span
		h.Report(reporter.Diagnostic{
			Code:        reporter.CodeInvalidAttribute,
			Severity:    reporter.Warning,
			Message:     "unknown attribute \"" + a.Name + "\"",
			PrimarySpan: &span,
		})
		return
	}
	if len(a.Args) < shape.minArgs || (shape.maxArgs >= 0 && len(a.Args) > shape.maxArgs) {
		span := a.Span
		h.Report(reporter.Diagnostic{
			Code:        reporter.CodeInvalidAttribute,
			Severity:    reporter.Error,
			Message:     "attribute \"" + a.Name + "\" has an invalid number of arguments",
			PrimarySpan: &span,
		})
	}
}
