package ast

// Program is the top-level handle on a compiled AST: the arena plus the
// set of module-scope roots declared directly at file scope (Root).
type Program struct {
	Arena *Arena

	// TopLevel holds every Module node declared with no enclosing module,
	// in declaration order across all files. Per-file encodings are
	// tracked alongside by file name.
	TopLevel []WeakHandle

	// FileEncoding maps a file name to its declared `encoding = N` value,
	// absent if the file relied on the default.
	FileEncoding map[string]int

	// FileAttributes maps a file name to its file-wide [[...]] attributes.
	FileAttributes map[string][]Attribute
}

// NewProgram returns an empty, arena-backed Program.
func NewProgram() *Program {
	return &Program{
		Arena:          NewArena(),
		FileEncoding:   make(map[string]int),
		FileAttributes: make(map[string][]Attribute),
	}
}

// DefaultEncoding is used for any file with no explicit `encoding = N`.
const DefaultEncoding = 1

// EncodingFor returns the effective encoding for file, applying the
// default when none was declared.
func (p *Program) EncodingFor(file string) int {
	if v, ok := p.FileEncoding[file]; ok {
		return v
	}
	return DefaultEncoding
}
