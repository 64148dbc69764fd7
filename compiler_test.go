package slicec

import (
	"testing"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

func diagCodes(diags []reporter.Diagnostic) map[reporter.Code]int {
	out := map[reporter.Code]int{}
	for _, d := range diags {
		out[d.Code]++
	}
	return out
}

func TestCompileModuleReopeningAcrossFiles(t *testing.T) {
	state := CompileFromStrings([]NamedSource{
		{Name: "a.slice", Text: `module M { struct Foo { x: int32 } }`},
		{Name: "b.slice", Text: `module M { struct Bar { y: int32 } }`},
	}, Options{})
	if state.Failed() {
		t.Fatalf("unexpected failure: %v", state.Diagnostics)
	}
	if len(state.AST.TopLevel) != 2 {
		t.Fatalf("expected 2 top-level Module nodes (one per file), got %d", len(state.AST.TopLevel))
	}
}

func TestCompilePreprocessorConditional(t *testing.T) {
	src := "#if FEATURE_X\nmodule M { struct Enabled { x: int32 } }\n#else\nmodule M { struct Disabled { x: int32 } }\n#endif\n"

	withFeature := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: src}}, Options{Definitions: []string{"FEATURE_X"}})
	if withFeature.Failed() {
		t.Fatalf("unexpected failure: %v", withFeature.Diagnostics)
	}
	mod, _ := withFeature.AST.Arena.Get(withFeature.AST.TopLevel[0])
	m, ok := mod.(*ast.Module)
	if !ok || len(m.Children) != 1 {
		t.Fatalf("expected exactly one child module definition to survive preprocessing, got %+v", m)
	}

	without := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: src}}, Options{})
	if without.Failed() {
		t.Fatalf("unexpected failure: %v", without.Diagnostics)
	}
}

// TestCompileDefinesDoNotLeakAcrossFiles guards against a per-file #define
// set being shared (and mutated) across a multi-file compilation: a.slice
// defines FOO for its own use only, and b.slice must not see it.
func TestCompileDefinesDoNotLeakAcrossFiles(t *testing.T) {
	state := CompileFromStrings([]NamedSource{
		{Name: "a.slice", Text: "#define FOO\nmodule A {\n#if FOO\nstruct Seen { x: int32 }\n#endif\n}\n"},
		{Name: "b.slice", Text: "module B {\n#if FOO\nstruct Leaked { x: int32 }\n#endif\n}\n"},
	}, Options{})
	if state.Failed() {
		t.Fatalf("unexpected failure: %v", state.Diagnostics)
	}

	var bMod *ast.Module
	for _, top := range state.AST.TopLevel {
		n, _ := state.AST.Arena.Get(top)
		if m, ok := n.(*ast.Module); ok && ast.Name(m) == "B" {
			bMod = m
		}
	}
	if bMod == nil {
		t.Fatal("module B not found")
	}
	if len(bMod.Children) != 0 {
		t.Errorf("expected FOO (defined only in a.slice) to be undefined in b.slice, but found %d children", len(bMod.Children))
	}
}

func TestCompileInfiniteTypeDiagnostic(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: `
module M {
    struct A { b: B }
    struct B { a: A }
}
`}}, Options{})
	if !state.Failed() {
		t.Fatal("expected failure for a composition cycle")
	}
	if diagCodes(state.Diagnostics)[reporter.CodeInfiniteType] == 0 {
		t.Errorf("expected an InfiniteType diagnostic, got %v", state.Diagnostics)
	}
}

func TestCompileDuplicateTagDiagnostic(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: `
module M {
    struct S {
        tag(1) a: int32?,
        tag(1) b: int32?
    }
}
`}}, Options{})
	if !state.Failed() {
		t.Fatal("expected failure for a duplicate tag")
	}
	if diagCodes(state.Diagnostics)[reporter.CodeInvalidTag] == 0 {
		t.Errorf("expected an InvalidTag diagnostic, got %v", state.Diagnostics)
	}
}

func TestCompileGloballyQualifiedShadowedReference(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: `
module M {
    struct Thing { x: int32 }
    module Inner {
        struct Thing { y: int32 }
        struct User { t: ::M::Thing }
    }
}
`}}, Options{})
	if state.Failed() {
		t.Fatalf("unexpected failure: %v", state.Diagnostics)
	}
}

func TestCompileInvalidDictionaryKeyDiagnostic(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: `
module M {
    struct S {
        scores: dictionary<float64, int32>
    }
}
`}}, Options{})
	if !state.Failed() {
		t.Fatal("expected failure for an illegal dictionary key type")
	}
	if diagCodes(state.Diagnostics)[reporter.CodeInvalidDictionaryKey] == 0 {
		t.Errorf("expected an InvalidDictionaryKey diagnostic, got %v", state.Diagnostics)
	}
}

func TestCompileEmptyFileProducesNoDiagnostics(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: ""}}, Options{})
	if state.Failed() {
		t.Fatalf("unexpected failure for an empty file: %v", state.Diagnostics)
	}
	if len(state.AST.TopLevel) != 0 {
		t.Errorf("expected no top-level definitions for an empty file, got %d", len(state.AST.TopLevel))
	}
}

func TestCompileFileLevelModuleOnly(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: "module Top;\nstruct S { x: int32 }\n"}}, Options{})
	if state.Failed() {
		t.Fatalf("unexpected failure: %v", state.Diagnostics)
	}
	if len(state.AST.TopLevel) != 1 {
		t.Fatalf("expected 1 top-level module, got %d", len(state.AST.TopLevel))
	}
}

func TestCompileCommentsOnlyFile(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: "// nothing to see here\n/* nor here */\n"}}, Options{})
	if state.Failed() {
		t.Fatalf("unexpected failure for a comments-only file: %v", state.Diagnostics)
	}
}

func TestCompileDeeplyNestedModules(t *testing.T) {
	src := "module A { module B { module C { module D { module E { module F { module G { module H { struct Leaf { x: int32 } } } } } } } } }"
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: src}}, Options{})
	if state.Failed() {
		t.Fatalf("unexpected failure for deep module nesting: %v", state.Diagnostics)
	}
}

func TestCompileTagOverflowIsRejected(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: `
module M {
    struct S {
        tag(2147483648) x: int32?
    }
}
`}}, Options{})
	if !state.Failed() {
		t.Fatal("expected failure for a tag value exceeding 2^31-1")
	}
}

func TestCompileCaseDifferingIdentifierCollision(t *testing.T) {
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: `
module M {
    struct S {
        value: int32,
        VALUE: int32
    }
}
`}}, Options{})
	if !state.Failed() {
		t.Fatal("expected failure for case-differing member name collision")
	}
	if diagCodes(state.Diagnostics)[reporter.CodeRedefinition] == 0 {
		t.Errorf("expected a Redefinition diagnostic, got %v", state.Diagnostics)
	}
}

func TestCompileWarnAsErrorPromotesWarnings(t *testing.T) {
	src := `
module m {
    struct s { x: int32 }
}
`
	plain := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: src}}, Options{})
	if plain.Failed() {
		t.Fatalf("unexpected failure without WarnAsError: %v", plain.Diagnostics)
	}
	strict := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: src}}, Options{WarnAsError: true})
	if !strict.Failed() {
		t.Fatal("expected WarnAsError to promote the style warnings to a failure")
	}
}

func TestCompileAllowListDemotesSeverity(t *testing.T) {
	src := `
module m {
    struct s { x: int32 }
}
`
	state := CompileFromStrings([]NamedSource{{Name: "a.slice", Text: src}}, Options{Allow: []string{string(reporter.CodeStyleWarning)}})
	if state.Failed() {
		t.Fatalf("unexpected failure with allow-listed style warnings: %v", state.Diagnostics)
	}
	// Visible() strips Allowed-severity diagnostics entirely, so an
	// allow-listed code should not appear in the reported output at all.
	if diagCodes(state.Diagnostics)[reporter.CodeStyleWarning] != 0 {
		t.Errorf("expected allow-listed StyleWarning diagnostics to be suppressed from output, got %v", state.Diagnostics)
	}
}

func TestCompileFromOptionsFatalLoadError(t *testing.T) {
	state := CompileFromOptions(Options{Sources: []string{"/nonexistent/path/does-not-exist.slice"}})
	if !state.Failed() {
		t.Fatal("expected failure for an unreadable source path")
	}
	if len(state.Diagnostics) != 1 {
		t.Fatalf("expected exactly one fatal diagnostic, got %v", state.Diagnostics)
	}
	d := state.Diagnostics[0]
	if d.PrimarySpan == nil {
		t.Fatal("expected the fatal load error to carry a primary span pointing at the unreadable path")
	}
	if d.PrimarySpan.File != "/nonexistent/path/does-not-exist.slice" {
		t.Errorf("expected span.File to name the unreadable path, got %q", d.PrimarySpan.File)
	}
}
