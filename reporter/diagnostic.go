// Package reporter collects diagnostics (errors, warnings, and notes)
// produced by every stage of the compilation pipeline and exposes them in a
// deterministic, span-sorted order.
package reporter

import "github.com/slicelang/slicec/source"

// Severity classifies a Diagnostic. Allowed diagnostics are retained
// internally (Handler.Drain still returns them) but suppressed from
// Handler.Visible's output, per the allow-list mechanism described by the
// core.
type Severity int

const (
	Error Severity = iota
	Warning
	Allowed
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Allowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Code is one of the closed taxonomy of stable diagnostic codes.
type Code string

const (
	CodeSyntax              Code = "Syntax"
	CodeDoesNotExist         Code = "DoesNotExist"
	CodeRedefinition         Code = "Redefinition"
	CodeInfiniteType         Code = "InfiniteType"
	CodeInvalidTag           Code = "InvalidTag"
	CodeInvalidEnum          Code = "InvalidEnum"
	CodeInvalidDictionaryKey Code = "InvalidDictionaryKey"
	CodeIncompatibleEncoding Code = "IncompatibleEncoding"
	CodeIllegalInheritance   Code = "IllegalInheritance"
	CodeInvalidAttribute     Code = "InvalidAttribute"
	CodeStyleWarning         Code = "StyleWarning"
	CodeDeprecatedUsage      Code = "DeprecatedUsage"
	CodeUnknown              Code = "Unknown"
)

// Note is a secondary message attached to a Diagnostic, optionally pointing
// at a second span (e.g. the location of a prior, conflicting definition).
type Note struct {
	Message string
	Span    *source.Span
}

// Diagnostic is a single error, warning, or note emitted by any pipeline
// stage, keyed by its primary span.
type Diagnostic struct {
	Code         Code
	Severity     Severity
	Message      string
	PrimarySpan  *source.Span
	Notes        []Note
}

func (d Diagnostic) withNote(message string, span *source.Span) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Message: message, Span: span})
	return d
}
