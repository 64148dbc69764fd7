// Package parser implements the Slice lexer (C4) and parser (C5): it turns
// the preprocessor's surviving source blocks into tokens and then into a
// partially-linked AST with unresolved type references.
package parser

import "github.com/slicelang/slicec/source"

// TokenKind enumerates every lexical category the lexer produces.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokKeyword
	TokInteger
	TokString
	TokDocComment

	// punctuation
	TokLBrace    // {
	TokRBrace    // }
	TokLParen    // (
	TokRParen    // )
	TokLBracket  // [
	TokRBracket  // ]
	TokLDBracket // [[
	TokRDBracket // ]]
	TokScope     // ::
	TokColon     // :
	TokSemi      // ;
	TokComma     // ,
	TokQuestion  // ?
	TokEquals    // =
	TokArrow     // ->
	TokLAngle    // <
	TokRAngle    // >
)

// Token is a single lexeme with its source span. Integer and string
// literals carry their decoded value in IntValue/StrValue.
type Token struct {
	Kind     TokenKind
	Text     string
	IntValue int64
	StrValue string
	Span     source.Span
}

// Keywords is the reserved-word set; a reserved keyword cannot be used as a
// plain identifier anywhere in source.
var Keywords = map[string]bool{
	"module": true, "struct": true, "exception": true, "class": true,
	"interface": true, "enum": true, "trait": true, "custom": true,
	"type": true, "compact": true, "unchecked": true, "idempotent": true,
	"stream": true, "tag": true, "encoding": true, "sequence": true,
	"dictionary": true,
}

// Primitives is the set of built-in primitive type keywords, grounded on
// the Slice language's actual primitive catalogue.
var Primitives = map[string]bool{
	"bool": true, "uint8": true, "int8": true, "uint16": true, "int16": true,
	"uint32": true, "int32": true, "varuint32": true, "varint32": true,
	"uint64": true, "int64": true, "varuint62": true, "varint62": true,
	"float32": true, "float64": true, "string": true, "AnyClass": true,
}

func init() {
	for p := range Primitives {
		Keywords[p] = true
	}
}

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokIdent:
		return "identifier"
	case TokKeyword:
		return "keyword"
	case TokInteger:
		return "integer"
	case TokString:
		return "string"
	case TokDocComment:
		return "doc-comment"
	default:
		return "punctuation"
	}
}
