package parser

import (
	"testing"

	"github.com/slicelang/slicec/preprocess"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/source"
)

func lexAll(t *testing.T, text string) ([]Token, *reporter.Handler) {
	t.Helper()
	blocks := []preprocess.Block{{
		Text: text,
		Span: source.Span{File: "t.slice", Start: source.Location{Line: 1, Column: 1}, End: source.Location{Line: 1, Column: 1}},
	}}
	h := reporter.NewHandler(nil, nil)
	l := newLexer("t.slice", blocks, h)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return toks, h
}

func TestLexerPunctuation(t *testing.T) {
	toks, h := lexAll(t, "{ } ( ) [ [[ ]] ] :: : ; , ? = -> < >")
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Drain())
	}
	want := []TokenKind{
		TokLBrace, TokRBrace, TokLParen, TokRParen, TokLBracket, TokLDBracket,
		TokRDBracket, TokRBracket, TokScope, TokColon, TokSemi, TokComma,
		TokQuestion, TokEquals, TokArrow, TokLAngle, TokRAngle, TokEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w {
			t.Errorf("token %d: kind = %v, want %v (%q)", i, toks[i].Kind, w, toks[i].Text)
		}
	}
}

func TestLexerKeywordVsIdent(t *testing.T) {
	toks, _ := lexAll(t, "struct Foo dictionary int32")
	kinds := []TokenKind{TokKeyword, TokIdent, TokKeyword, TokKeyword, TokEOF}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d (%q): kind = %v, want %v", i, toks[i].Text, toks[i].Kind, k)
		}
	}
}

func TestLexerDocCommentContinuation(t *testing.T) {
	toks, _ := lexAll(t, "/// first line\n/// second line\nstruct")
	if toks[0].Kind != TokDocComment {
		t.Fatalf("expected doc comment token, got %v", toks[0].Kind)
	}
	want := "first line\nsecond line"
	if toks[0].Text != want {
		t.Errorf("doc comment text = %q, want %q", toks[0].Text, want)
	}
	if toks[1].Kind != TokKeyword {
		t.Errorf("expected struct keyword to follow, got %v", toks[1].Kind)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks, h := lexAll(t, `"a\nb\t\u{48}\x49"`)
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Drain())
	}
	want := "a\nb\tHI"
	if toks[0].StrValue != want {
		t.Errorf("string value = %q, want %q", toks[0].StrValue, want)
	}
}

func TestLexerUnterminatedStringReportsError(t *testing.T) {
	_, h := lexAll(t, `"unterminated`)
	if !h.HasErrors() {
		t.Error("expected a Syntax error for unterminated string")
	}
}

func TestLexerInteger(t *testing.T) {
	toks, _ := lexAll(t, "42")
	if toks[0].Kind != TokInteger || toks[0].IntValue != 42 {
		t.Errorf("token = %+v, want integer 42", toks[0])
	}
}

func TestLexerSkipsComments(t *testing.T) {
	toks, h := lexAll(t, "// line comment\nstruct /* block\ncomment */ Foo")
	if h.HasErrors() {
		t.Fatalf("unexpected errors: %v", h.Drain())
	}
	if toks[0].Kind != TokKeyword || toks[0].Text != "struct" {
		t.Errorf("expected struct first, got %+v", toks[0])
	}
	if toks[1].Kind != TokIdent || toks[1].Text != "Foo" {
		t.Errorf("expected Foo second, got %+v", toks[1])
	}
}
