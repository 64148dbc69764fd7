package source

import "fmt"

// Set is the collection of files loaded for a single compilation. It is the
// concrete implementation of the "add_file / snippet" API described by the
// core's Source & Span component; a Set is owned by exactly one compilation.
// Each File in it is immutable; the Set itself only grows or replaces
// entries through AddFile.
type Set struct {
	byName map[string]*File
	order  []string
}

// NewSet returns an empty file set.
func NewSet() *Set {
	return &Set{byName: make(map[string]*File)}
}

// AddFile loads text under name into the set. Adding the same name twice
// replaces the previous entry but does not change its position in
// compilation order.
func (s *Set) AddFile(name, text string, isSource bool) *File {
	f := NewFile(name, text, isSource)
	if _, exists := s.byName[name]; !exists {
		s.order = append(s.order, name)
	}
	s.byName[name] = f
	return f
}

// Lookup returns the file previously added under name, if any.
func (s *Set) Lookup(name string) (*File, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Snippet extracts the source text referenced by span, using the file
// registered under span.File. Returns "" if the file is unknown.
func (s *Set) Snippet(span Span) string {
	f, ok := s.byName[span.File]
	if !ok {
		return ""
	}
	return f.Snippet(span)
}

// CompilationOrder returns file names in the order they were first added to
// the set, which the reporter uses as the primary diagnostic sort key.
func (s *Set) CompilationOrder() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// IndexOf returns the position of name in compilation order, or -1 if name
// was never added.
func (s *Set) IndexOf(name string) int {
	for i, n := range s.order {
		if n == name {
			return i
		}
	}
	return -1
}

// Files returns a copy of the name-to-File map, e.g. for CompilationState.
func (s *Set) Files() map[string]*File {
	out := make(map[string]*File, len(s.byName))
	for k, v := range s.byName {
		out[k] = v
	}
	return out
}

func (s *Set) String() string {
	return fmt.Sprintf("source.Set{%d files}", len(s.byName))
}
