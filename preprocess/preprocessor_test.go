package preprocess

import (
	"strings"
	"testing"

	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/source"
)

func blockText(blocks []Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(blk.Text)
	}
	return b.String()
}

func TestRunPlainTextNoDirectives(t *testing.T) {
	f := source.NewFile("a.slice", "struct Foo { int32 x; }", true)
	blocks, diags := Run(f, map[string]struct{}{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if blockText(blocks) != f.Text {
		t.Errorf("block text = %q, want %q", blockText(blocks), f.Text)
	}
}

func TestRunIfElifElse(t *testing.T) {
	text := "A\n#if FOO\nB\n#elif BAR\nC\n#else\nD\n#endif\nE\n"
	f := source.NewFile("a.slice", text, true)

	run := func(defined map[string]struct{}) string {
		blocks, diags := Run(f, defined)
		if len(diags) != 0 {
			t.Fatalf("unexpected diagnostics with %v: %v", defined, diags)
		}
		return blockText(blocks)
	}

	if got := run(map[string]struct{}{"FOO": {}}); !strings.Contains(got, "B") || strings.Contains(got, "C") || strings.Contains(got, "D") {
		t.Errorf("FOO defined: got %q, want B kept, C/D dropped", got)
	}
	if got := run(map[string]struct{}{"BAR": {}}); !strings.Contains(got, "C") || strings.Contains(got, "B") || strings.Contains(got, "D") {
		t.Errorf("BAR defined: got %q, want C kept, B/D dropped", got)
	}
	if got := run(map[string]struct{}{}); !strings.Contains(got, "D") || strings.Contains(got, "B") || strings.Contains(got, "C") {
		t.Errorf("neither defined: got %q, want D kept, B/C dropped", got)
	}
}

func TestRunNestedIf(t *testing.T) {
	text := "#if OUTER\n#if INNER\nkept\n#endif\n#endif\n"
	f := source.NewFile("a.slice", text, true)

	blocks, diags := Run(f, map[string]struct{}{"OUTER": {}, "INNER": {}})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if !strings.Contains(blockText(blocks), "kept") {
		t.Errorf("expected nested block kept, got %q", blockText(blocks))
	}

	blocks, diags = Run(f, map[string]struct{}{"OUTER": {}})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if strings.Contains(blockText(blocks), "kept") {
		t.Errorf("expected nested block dropped when INNER undefined, got %q", blockText(blocks))
	}
}

func TestRunUnterminatedIf(t *testing.T) {
	f := source.NewFile("a.slice", "#if FOO\nbody\n", true)
	_, diags := Run(f, map[string]struct{}{})
	if len(diags) != 1 || diags[0].Code != reporter.CodeSyntax {
		t.Fatalf("expected one Syntax diagnostic for unterminated #if, got %v", diags)
	}
}

func TestRunDefineUndefine(t *testing.T) {
	text := "#define FOO\n#if FOO\nkept\n#endif\n#undefine FOO\n#if FOO\ndropped\n#endif\n"
	f := source.NewFile("a.slice", text, true)
	blocks, diags := Run(f, map[string]struct{}{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := blockText(blocks)
	if !strings.Contains(got, "kept") || strings.Contains(got, "dropped") {
		t.Errorf("got %q, want kept present and dropped absent", got)
	}
}

func TestRunMalformedDirective(t *testing.T) {
	f := source.NewFile("a.slice", "#bogus\n", true)
	_, diags := Run(f, map[string]struct{}{})
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
}
