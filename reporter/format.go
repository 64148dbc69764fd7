package reporter

import (
	"encoding/json"

	"github.com/slicelang/slicec/source"
)

// jsonSpan mirrors the stable JSON shape described in spec §6.
type jsonSpan struct {
	Start [2]int `json:"start"`
	End   [2]int `json:"end"`
	File  string `json:"file"`
}

type jsonNote struct {
	Message string    `json:"message"`
	Span    *jsonSpan `json:"span,omitempty"`
}

type jsonDiagnostic struct {
	Message   string     `json:"message"`
	Severity  string     `json:"severity"`
	Span      *jsonSpan  `json:"span,omitempty"`
	Notes     []jsonNote `json:"notes"`
	ErrorCode string     `json:"error_code"`
}

func toJSONSpan(s *source.Span) *jsonSpan {
	if s == nil {
		return nil
	}
	return &jsonSpan{
		Start: [2]int{s.Start.Line, s.Start.Column},
		End:   [2]int{s.End.Line, s.End.Column},
		File:  s.File,
	}
}

func toJSONDiagnostic(d Diagnostic) jsonDiagnostic {
	notes := make([]jsonNote, len(d.Notes))
	for i, n := range d.Notes {
		notes[i] = jsonNote{Message: n.Message, Span: toJSONSpan(n.Span)}
	}
	severity := "warning"
	if d.Severity == Error {
		severity = "error"
	}
	return jsonDiagnostic{
		Message:   d.Message,
		Severity:  severity,
		Span:      toJSONSpan(d.PrimarySpan),
		Notes:     notes,
		ErrorCode: string(d.Code),
	}
}

// MarshalJSON renders diagnostics in the stable JSON shape from spec §6.
// Allowed-severity diagnostics are expected to already have been filtered
// out by the caller (see Handler.Visible).
func MarshalJSON(diags []Diagnostic) ([]byte, error) {
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = toJSONDiagnostic(d)
	}
	return json.MarshalIndent(out, "", "  ")
}
