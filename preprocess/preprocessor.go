package preprocess

import (
	"strings"

	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/source"
)

type directiveKind int

const (
	dirDefine directiveKind = iota
	dirUndefine
	dirIf
	dirElif
	dirElse
	dirEndif
)

var directiveNames = map[string]directiveKind{
	"define":   dirDefine,
	"undefine": dirUndefine,
	"if":       dirIf,
	"elif":     dirElif,
	"else":     dirElse,
	"endif":    dirEndif,
}

// physicalLine is one physical line of the input, with its rune-offset span and
// whatever directive it carries, if any.
type physicalLine struct {
	text       string // without trailing newline
	startRune  int
	endRune    int // exclusive, without trailing newline
	isDirective bool
	kind       directiveKind
	arg        string // raw text after the keyword, untrimmed
	malformed  bool
}

func splitLines(text string) []physicalLine {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	var lines []physicalLine
	start := 0
	for i := 0; i <= len(runes); i++ {
		if i == len(runes) || runes[i] == '\n' {
			if i == len(runes) && start == i {
				// final newline leaves no trailing content line
				break
			}
			lines = append(lines, physicalLine{
				text:      string(runes[start:i]),
				startRune: start,
				endRune:   i,
			})
			start = i + 1
		}
	}
	return lines
}

func classify(lines []physicalLine) {
	for i := range lines {
		l := &lines[i]
		trimmed := strings.TrimLeft(l.text, " \t")
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		rest := trimmed[1:]
		name, arg := splitDirectiveWord(rest)
		kind, ok := directiveNames[name]
		if !ok {
			l.isDirective = true
			l.malformed = true
			continue
		}
		l.isDirective = true
		l.kind = kind
		l.arg = arg
	}
}

func splitDirectiveWord(s string) (word, rest string) {
	i := 0
	runes := []rune(s)
	for i < len(runes) && isIdentCont(runes[i]) {
		i++
	}
	return string(runes[:i]), string(runes[i:])
}

type condFrame struct {
	parentActive  bool
	chainSatisfied bool
	active        bool
	sawElse       bool
}

// Run slices file into surviving source blocks, evaluating the
// preprocessor's conditional-compilation directives. defined is the set of
// symbols pre-populated from Options.Definitions; it is mutated in place as
// #define/#undefine directives execute, so callers that reuse a symbol set
// across files should pass a fresh copy per spec (state is per-preprocessor
// run in this implementation, not shared across files).
func Run(file *source.File, defined map[string]struct{}) ([]Block, []reporter.Diagnostic) {
	lines := splitLines(file.Text)
	classify(lines)

	var blocks []Block
	var diags []reporter.Diagnostic
	var stack []condFrame

	currentlyActive := func() bool {
		if len(stack) == 0 {
			return true
		}
		return stack[len(stack)-1].active
	}

	// pending raw-text run, flushed into a Block whenever interrupted by a
	// directive line or state change.
	var pendingStart = -1
	var pendingEnd = -1

	flush := func() {
		if pendingStart < 0 {
			return
		}
		blocks = append(blocks, Block{
			Text: sliceRunes(file.Text, pendingStart, pendingEnd),
			Span: source.Span{
				File:  file.Name,
				Start: file.LocationAt(pendingStart),
				End:   file.LocationAt(pendingEnd),
			},
		})
		pendingStart, pendingEnd = -1, -1
	}

	isDefined := func(name string) bool {
		_, ok := defined[name]
		return ok
	}

	for _, l := range lines {
		if !l.isDirective {
			if currentlyActive() {
				if pendingStart < 0 {
					pendingStart = l.startRune
				}
				pendingEnd = l.endRune
			}
			continue
		}

		// A directive line always interrupts any pending raw-text run,
		// whether or not the directive itself is well-formed.
		flush()

		if l.malformed {
			diags = append(diags, reporter.Diagnostic{
				Code:     reporter.CodeSyntax,
				Severity: reporter.Error,
				Message:  "malformed preprocessor directive",
				PrimarySpan: &source.Span{
					File:  file.Name,
					Start: file.LocationAt(l.startRune),
					End:   file.LocationAt(l.endRune),
				},
			})
			continue
		}

		switch l.kind {
		case dirDefine:
			name := strings.TrimSpace(l.arg)
			if name == "" || !validIdent(name) {
				diags = append(diags, directiveErr(file, l, "#define requires a single identifier argument"))
				continue
			}
			if currentlyActive() {
				defined[name] = struct{}{}
			}
		case dirUndefine:
			name := strings.TrimSpace(l.arg)
			if name == "" || !validIdent(name) {
				diags = append(diags, directiveErr(file, l, "#undefine requires a single identifier argument"))
				continue
			}
			if currentlyActive() {
				delete(defined, name)
			}
		case dirIf:
			parent := currentlyActive()
			cond, err := evalExpr(l.arg, isDefined)
			if err != nil {
				diags = append(diags, directiveErr(file, l, "malformed #if expression: "+err.Error()))
				stack = append(stack, condFrame{parentActive: parent, active: false, chainSatisfied: true})
				continue
			}
			active := parent && cond
			stack = append(stack, condFrame{parentActive: parent, active: active, chainSatisfied: cond})
		case dirElif:
			if len(stack) == 0 {
				diags = append(diags, directiveErr(file, l, "#elif without matching #if"))
				continue
			}
			top := &stack[len(stack)-1]
			if top.sawElse {
				diags = append(diags, directiveErr(file, l, "#elif after #else"))
				continue
			}
			if top.chainSatisfied {
				top.active = false
				continue
			}
			cond, err := evalExpr(l.arg, isDefined)
			if err != nil {
				diags = append(diags, directiveErr(file, l, "malformed #elif expression: "+err.Error()))
				top.active = false
				continue
			}
			active := top.parentActive && cond
			top.active = active
			if active {
				top.chainSatisfied = true
			}
		case dirElse:
			if len(stack) == 0 {
				diags = append(diags, directiveErr(file, l, "#else without matching #if"))
				continue
			}
			top := &stack[len(stack)-1]
			if top.sawElse {
				diags = append(diags, directiveErr(file, l, "duplicate #else"))
				continue
			}
			top.sawElse = true
			if top.chainSatisfied {
				top.active = false
			} else {
				top.active = top.parentActive
				top.chainSatisfied = true
			}
		case dirEndif:
			if len(stack) == 0 {
				diags = append(diags, directiveErr(file, l, "#endif without matching #if"))
				continue
			}
			stack = stack[:len(stack)-1]
		}
	}
	flush()

	for range stack {
		diags = append(diags, reporter.Diagnostic{
			Code:     reporter.CodeSyntax,
			Severity: reporter.Error,
			Message:  "unterminated #if: missing #endif",
		})
	}

	return blocks, diags
}

func directiveErr(file *source.File, l physicalLine, msg string) reporter.Diagnostic {
	return reporter.Diagnostic{
		Code:     reporter.CodeSyntax,
		Severity: reporter.Error,
		Message:  msg,
		PrimarySpan: &source.Span{
			File:  file.Name,
			Start: file.LocationAt(l.startRune),
			End:   file.LocationAt(l.endRune),
		},
	}
}

func validIdent(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 || !isIdentStart(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !isIdentCont(r) {
			return false
		}
	}
	return true
}

func sliceRunes(s string, from, to int) string {
	if to <= from {
		return ""
	}
	runes := []rune(s)
	if to > len(runes) {
		to = len(runes)
	}
	return string(runes[from:to])
}
