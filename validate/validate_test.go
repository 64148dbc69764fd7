package validate

import (
	"testing"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/parser"
	"github.com/slicelang/slicec/preprocess"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/scope"
	"github.com/slicelang/slicec/source"
)

// buildAndValidate runs the full front-end pipeline (preprocess, parse,
// scope build, patch, and every validator) over a single in-memory file and
// returns the diagnostics produced, mirroring the real compiler's sequence.
func buildAndValidate(t *testing.T, text string) []reporter.Diagnostic {
	t.Helper()
	f := source.NewFile("a.slice", text, true)
	blocks, diags := preprocess.Run(f, map[string]struct{}{})
	h := reporter.NewHandler(nil, nil)
	for _, d := range diags {
		h.Report(d)
	}
	program := ast.NewProgram()
	parser.Parse("a.slice", blocks, program, h)
	table := scope.Build(program, h)
	scope.Patch(program, table, h)
	Run(program, table, h)
	return h.Drain()
}

func hasCode(diags []reporter.Diagnostic, code reporter.Code) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func countCode(diags []reporter.Diagnostic, code reporter.Code) int {
	n := 0
	for _, d := range diags {
		if d.Code == code {
			n++
		}
	}
	return n
}
