// Package doccomment parses the concatenated text of a Slice doc comment
// (the "///" lines attached to a declaration, already joined with newlines
// and stripped of their sentinel by the lexer) into the structured tags
// described by spec §4.5: @param, @returns, @throws, @see, @link.
package doccomment

import "strings"

// Param is a single "@param name text" tag.
type Param struct {
	Name string
	Text string
}

// Throws is a single "@throws Type text" tag.
type Throws struct {
	Type string
	Text string
}

// Doc is the structured form of a doc comment, built post-hoc from its raw
// text. Any paragraph before the first recognized tag is the Summary.
type Doc struct {
	Raw     string
	Summary string
	Params  []Param
	Returns string
	Throws  []Throws
	See     []string
	Link    []string
}

type section int

const (
	sectionSummary section = iota
	sectionReturns
	sectionParam
	sectionThrows
	sectionNone // @see/@link take no continuation lines
)

// Parse splits raw doc comment text into its structured tags. Unknown or
// malformed tag lines are retained verbatim as part of the nearest
// preceding section's text rather than rejected, since doc comments are
// informational only and never fail compilation.
func Parse(raw string) Doc {
	d := Doc{Raw: raw}

	var summary []string
	var returns []string
	var paramIdx = -1
	var paramBuf []string
	var throwsIdx = -1
	var throwsBuf []string
	cur := sectionSummary

	flushParam := func() {
		if paramIdx >= 0 {
			d.Params[paramIdx].Text = strings.TrimSpace(strings.Join(paramBuf, "\n"))
			paramIdx = -1
			paramBuf = nil
		}
	}
	flushThrows := func() {
		if throwsIdx >= 0 {
			d.Throws[throwsIdx].Text = strings.TrimSpace(strings.Join(throwsBuf, "\n"))
			throwsIdx = -1
			throwsBuf = nil
		}
	}
	flushAll := func() {
		flushParam()
		flushThrows()
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "@param "):
			flushAll()
			name, text := splitWord(strings.TrimSpace(trimmed[len("@param "):]))
			d.Params = append(d.Params, Param{Name: name})
			paramIdx = len(d.Params) - 1
			paramBuf = []string{text}
			cur = sectionParam
		case strings.HasPrefix(trimmed, "@returns "):
			flushAll()
			returns = []string{strings.TrimSpace(trimmed[len("@returns "):])}
			cur = sectionReturns
		case strings.HasPrefix(trimmed, "@throws "):
			flushAll()
			typ, text := splitWord(strings.TrimSpace(trimmed[len("@throws "):]))
			d.Throws = append(d.Throws, Throws{Type: typ})
			throwsIdx = len(d.Throws) - 1
			throwsBuf = []string{text}
			cur = sectionThrows
		case strings.HasPrefix(trimmed, "@see "):
			flushAll()
			d.See = append(d.See, strings.TrimSpace(trimmed[len("@see "):]))
			cur = sectionNone
		case strings.HasPrefix(trimmed, "@link "):
			flushAll()
			d.Link = append(d.Link, strings.TrimSpace(trimmed[len("@link "):]))
			cur = sectionNone
		default:
			switch cur {
			case sectionParam:
				paramBuf = append(paramBuf, line)
			case sectionThrows:
				throwsBuf = append(throwsBuf, line)
			case sectionReturns:
				returns = append(returns, line)
			case sectionSummary:
				summary = append(summary, line)
			default:
				// sectionNone: stray continuation after @see/@link is
				// folded back into the summary rather than discarded.
				summary = append(summary, line)
			}
		}
	}
	flushAll()
	d.Summary = strings.TrimSpace(strings.Join(summary, "\n"))
	d.Returns = strings.TrimSpace(strings.Join(returns, "\n"))
	return d
}

func splitWord(s string) (word, rest string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
