package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/slicelang/slicec/source"
)

// HumanWriter renders diagnostics the way a developer reads them at a
// terminal: a colourised (or plain) primary span label, the offending
// source line, a caret indicator, and any notes.
type HumanWriter struct {
	Files        *source.Set
	DisableColor bool
}

func (w *HumanWriter) colorFor(sev Severity) *color.Color {
	if w.DisableColor {
		return color.New()
	}
	switch sev {
	case Error:
		return color.New(color.FgRed, color.Bold)
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgHiBlack)
	}
}

// Write renders diags to out, one diagnostic block per entry, in the order
// given (callers should pass Handler.Visible()'s result to respect the
// allow-list).
func (w *HumanWriter) Write(out io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		w.writeOne(out, d)
	}
}

func (w *HumanWriter) writeOne(out io.Writer, d Diagnostic) {
	label := w.colorFor(d.Severity).Sprintf("%s[%s]", d.Severity, d.Code)
	if d.PrimarySpan != nil {
		fmt.Fprintf(out, "%s: %s\n  --> %s\n", label, d.Message, d.PrimarySpan)
		w.writeSnippet(out, *d.PrimarySpan)
	} else {
		fmt.Fprintf(out, "%s: %s\n", label, d.Message)
	}
	for _, n := range d.Notes {
		if n.Span != nil {
			fmt.Fprintf(out, "  note: %s\n  --> %s\n", n.Message, n.Span)
		} else {
			fmt.Fprintf(out, "  note: %s\n", n.Message)
		}
	}
}

func (w *HumanWriter) writeSnippet(out io.Writer, span source.Span) {
	if w.Files == nil {
		return
	}
	line := w.Files.Snippet(span)
	if line == "" {
		return
	}
	fmt.Fprintf(out, "  %s\n", line)

	// Align the caret under span.Start using display width, not byte or
	// rune count, so multi-width runes preceding the offending column
	// don't throw off the indicator.
	prefix := firstNRunes(line, span.Start.Column-1)
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	caretLen := span.End.Column - span.Start.Column
	if span.End.Line != span.Start.Line || caretLen < 1 {
		caretLen = 1
	}
	fmt.Fprintf(out, "  %s%s\n", pad, strings.Repeat("^", caretLen))
}

func firstNRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for idx := range s {
		if i == n {
			return s[:idx]
		}
		i++
	}
	return s
}
