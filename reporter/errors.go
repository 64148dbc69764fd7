package reporter

import (
	"errors"
	"fmt"

	"github.com/slicelang/slicec/source"
)

// ErrCompilationFailed is an exported sentinel naming a fatal,
// non-diagnostic failure. No function in this module returns or wraps it:
// the fatal load failure (spec §7) travels as an ErrorWithPos and is turned
// into a single Diagnostic, and ordinary semantic errors are reported as
// Diagnostics instead of being thrown.
var ErrCompilationFailed = errors.New("slicec: compilation could not proceed")

// ErrorWithPos is an error about a Slice source file that also carries the
// source position responsible for it. Used only for the fatal I/O failure
// path described in spec §7; ordinary semantic errors never leave the core
// as Go errors.
type ErrorWithPos interface {
	error
	Position() source.Span
	Unwrap() error
}

type errorWithPos struct {
	pos        source.Span
	underlying error
}

// PositionError wraps err with the span responsible for it.
func PositionError(pos source.Span, err error) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: err}
}

// PositionErrorf is PositionError with fmt.Errorf-style formatting.
func PositionErrorf(pos source.Span, format string, args ...any) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

func (e errorWithPos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithPos) Position() source.Span { return e.pos }
func (e errorWithPos) Unwrap() error         { return e.underlying }

var _ ErrorWithPos = errorWithPos{}
