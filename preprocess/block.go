// Package preprocess implements the conditional-compilation preprocessor
// (spec §4.3): it slices a loaded source file into the surviving raw-text
// blocks that are fed verbatim to the lexer, evaluating #define/#undefine/
// #if/#elif/#else/#endif directives along the way.
package preprocess

import "github.com/slicelang/slicec/source"

// Block is a surviving run of verbatim source text together with its
// original span in the file it came from.
type Block struct {
	Text string
	Span source.Span
}
