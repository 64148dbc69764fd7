package reporter

import (
	"sort"

	"github.com/slicelang/slicec/source"
)

// Handler is a process-scoped collector for a single compilation. It is not
// safe for concurrent use by multiple goroutines compiling the *same*
// compilation unit (the core is single-threaded per spec §5); independent
// compilations each own their own Handler.
type Handler struct {
	files   *source.Set
	allow   map[Code]struct{}
	diags   []Diagnostic
	nErrors int
}

// NewHandler constructs a Handler bound to files (used to order diagnostics
// by compilation order) with the given allow-list of diagnostic codes to
// demote to Allowed severity.
func NewHandler(files *source.Set, allow []string) *Handler {
	h := &Handler{files: files, allow: make(map[Code]struct{}, len(allow))}
	for _, a := range allow {
		h.allow[Code(a)] = struct{}{}
	}
	return h
}

// Report records a diagnostic, demoting it to Allowed if its code is on the
// configured allow-list. The reporter never aborts compilation; it is
// purely a collector.
func (h *Handler) Report(d Diagnostic) {
	if _, suppressed := h.allow[d.Code]; suppressed && d.Severity != Allowed {
		d.Severity = Allowed
	}
	if d.Severity == Error {
		h.nErrors++
	}
	h.diags = append(h.diags, d)
}

// Errorf is a convenience for reporting an Error-severity diagnostic.
func (h *Handler) Errorf(code Code, span *source.Span, message string) {
	h.Report(Diagnostic{Code: code, Severity: Error, Message: message, PrimarySpan: span})
}

// Warnf is a convenience for reporting a Warning-severity diagnostic.
func (h *Handler) Warnf(code Code, span *source.Span, message string) {
	h.Report(Diagnostic{Code: code, Severity: Warning, Message: message, PrimarySpan: span})
}

// HasErrors reports whether any Error-severity diagnostic has been recorded,
// ignoring diagnostics suppressed to Allowed.
func (h *Handler) HasErrors() bool {
	return h.nErrors > 0
}

// Drain returns every recorded diagnostic (including Allowed ones; filtering
// them from output is the caller's concern per spec §4.2) ordered first by
// compilation order of the primary span's file, then by the primary span's
// start location. Diagnostics with no primary span sort before all others
// within their tie group and retain relative insertion order (a stable
// sort).
func (h *Handler) Drain() []Diagnostic {
	out := make([]Diagnostic, len(h.diags))
	copy(out, h.diags)

	fileRank := func(name string) int {
		if h.files == nil {
			return 0
		}
		if idx := h.files.IndexOf(name); idx >= 0 {
			return idx
		}
		return len(h.files.CompilationOrder())
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].PrimarySpan, out[j].PrimarySpan
		if si == nil && sj == nil {
			return false
		}
		if si == nil {
			return true
		}
		if sj == nil {
			return false
		}
		ri, rj := fileRank(si.File), fileRank(sj.File)
		if ri != rj {
			return ri < rj
		}
		return si.Start.Before(sj.Start)
	})
	return out
}

// Visible returns Drain's result with Allowed-severity diagnostics removed,
// matching what a caller-facing report (human or JSON) should display.
func (h *Handler) Visible() []Diagnostic {
	all := h.Drain()
	out := make([]Diagnostic, 0, len(all))
	for _, d := range all {
		if d.Severity != Allowed {
			out = append(out, d)
		}
	}
	return out
}
