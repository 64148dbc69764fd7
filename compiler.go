// Package slicec implements a compiler front end for the Slice interface
// definition language: preprocessing, lexing, parsing, scope resolution, and
// semantic validation, producing an AST and an ordered diagnostic list.
package slicec

import (
	"fmt"
	"os"
	"strings"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/parser"
	"github.com/slicelang/slicec/preprocess"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/scope"
	"github.com/slicelang/slicec/source"
	"github.com/slicelang/slicec/validate"
)

// DiagnosticFormat selects how CompilationState.Diagnostics should be
// rendered by a caller.
type DiagnosticFormat int

const (
	Human DiagnosticFormat = iota
	Json
)

// NamedSource is an in-memory Slice source: a name (used as its file
// identity for spans and diagnostics) and its text.
type NamedSource struct {
	Name string
	Text string
}

// FileLoader abstracts reading referenced files from disk so the core never
// depends on os directly for source content. osLoader is the default,
// production implementation.
type FileLoader interface {
	ReadFile(path string) (string, error)
}

type osLoader struct{}

func (osLoader) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Options mirrors SliceOptions exactly: the sole configuration surface for a
// compilation.
type Options struct {
	Sources    []string
	References []string

	Definitions []string

	WarnAsError bool
	Allow       []string

	DisableColor bool

	DiagnosticFormat DiagnosticFormat

	// OutputDir is validated (must be empty or a syntactically valid path)
	// but never written to; it exists for downstream generators.
	OutputDir string

	// Loader supplies file contents for Sources/References. Defaults to
	// reading from the local filesystem.
	Loader FileLoader
}

// CompilationState is the result of a single compilation: the AST built so
// far (best-effort even in the presence of errors), every diagnostic
// collected, and the source files that participated.
type CompilationState struct {
	AST         *ast.Program
	Diagnostics []reporter.Diagnostic
	Files       map[string]*source.File

	warnAsError bool
}

// Failed reports whether this compilation should be treated as a failure
// for exit-code purposes: any Error-severity diagnostic, or (if WarnAsError
// was set) any Warning-severity diagnostic. Diagnostic.Severity itself is
// left untouched in the Diagnostics slice.
func (s CompilationState) Failed() bool {
	for _, d := range s.Diagnostics {
		if d.Severity == reporter.Error {
			return true
		}
		if s.warnAsError && d.Severity == reporter.Warning {
			return true
		}
	}
	return false
}

// CompileFromStrings compiles sources supplied directly as text, ignoring
// opts.Sources/opts.References (the pair exists for the path-based entry
// point).
func CompileFromStrings(sources []NamedSource, opts Options) CompilationState {
	set := source.NewSet()
	for _, s := range sources {
		set.AddFile(s.Name, s.Text, true)
	}
	return compile(set, opts)
}

// CompileFromOptions loads opts.Sources and opts.References from disk (via
// opts.Loader, defaulting to the OS filesystem) and compiles them.
// Reference files are parsed and validated identically to sources but are
// marked not-a-source (IsSource == false) so a downstream generator knows
// not to emit code for them.
func CompileFromOptions(opts Options) CompilationState {
	loader := opts.Loader
	if loader == nil {
		loader = osLoader{}
	}

	set := source.NewSet()
	if err := loadInto(set, loader, opts.Sources, true); err != nil {
		return fatalLoadError(opts, err)
	}
	if err := loadInto(set, loader, opts.References, false); err != nil {
		return fatalLoadError(opts, err)
	}
	return compile(set, opts)
}

func loadInto(set *source.Set, loader FileLoader, paths []string, isSource bool) error {
	for _, p := range paths {
		text, err := loader.ReadFile(p)
		if err != nil {
			span := source.Span{File: p, Start: source.Location{Line: 1, Column: 1}, End: source.Location{Line: 1, Column: 1}}
			return reporter.PositionErrorf(span, "reading %q: %w", p, err)
		}
		set.AddFile(p, text, isSource)
	}
	return nil
}

// fatalLoadError implements spec §7's single fatal error mode: an I/O
// failure loading a referenced file surfaces as one Error diagnostic, and
// compilation terminates before the preprocessor runs. err is always the
// ErrorWithPos built by loadInto, so its position (the start of the file
// that failed to load) becomes the diagnostic's primary span.
func fatalLoadError(opts Options, err error) CompilationState {
	message := err.Error()
	var span *source.Span
	if ewp, ok := err.(reporter.ErrorWithPos); ok {
		pos := ewp.Position()
		span = &pos
		message = ewp.Unwrap().Error()
	}
	return CompilationState{
		AST: ast.NewProgram(),
		Diagnostics: []reporter.Diagnostic{{
			Code:        reporter.CodeUnknown,
			Severity:    reporter.Error,
			Message:     message,
			PrimarySpan: span,
		}},
		Files:       map[string]*source.File{},
		warnAsError: opts.WarnAsError,
	}
}

func compile(set *source.Set, opts Options) CompilationState {
	if err := validateOutputDir(opts.OutputDir); err != nil {
		return CompilationState{
			AST: ast.NewProgram(),
			Diagnostics: []reporter.Diagnostic{{
				Code:     reporter.CodeUnknown,
				Severity: reporter.Error,
				Message:  err.Error(),
			}},
			Files:       set.Files(),
			warnAsError: opts.WarnAsError,
		}
	}

	h := reporter.NewHandler(set, opts.Allow)
	program := ast.NewProgram()

	for _, name := range set.CompilationOrder() {
		file, _ := set.Lookup(name)

		// Each file gets its own copy of the initial #define set: #define/
		// #undefine are file-scoped, per preprocess.Run's contract, and must
		// not leak state between files in a multi-file compilation.
		fileDefined := make(map[string]struct{}, len(opts.Definitions))
		for _, d := range opts.Definitions {
			fileDefined[d] = struct{}{}
		}

		blocks, diags := preprocess.Run(file, fileDefined)
		for _, d := range diags {
			h.Report(d)
		}
		parser.Parse(name, blocks, program, h)
	}

	table := scope.Build(program, h)
	scope.Patch(program, table, h)
	validate.Run(program, table, h)

	// DiagnosticFormat governs how a caller renders Diagnostics (see
	// reporter.HumanWriter and reporter.MarshalJSON); the slice itself is
	// format-independent.
	return CompilationState{
		AST:         program,
		Diagnostics: h.Visible(),
		Files:       set.Files(),
		warnAsError: opts.WarnAsError,
	}
}

// validateOutputDir checks only that OutputDir, if set, is a syntactically
// plausible path (one with no NUL byte); it is never created or written to.
func validateOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	if strings.ContainsRune(dir, 0) {
		return fmt.Errorf("invalid output_dir %q", dir)
	}
	return nil
}
