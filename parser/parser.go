package parser

import (
	"fmt"
	"strings"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/doccomment"
	"github.com/slicelang/slicec/preprocess"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/source"
)

// Parse lexes and parses one file's surviving preprocessor blocks, interning
// every definition into program's arena and recording top-level modules,
// the file's declared encoding, and its file-wide attributes. TypeRefs are
// left Unpatched; package scope resolves them in a later pass (spec §4.7).
func Parse(file string, blocks []preprocess.Block, program *ast.Program, h *reporter.Handler) {
	p := &parser{
		file:    file,
		program: program,
		h:       h,
	}
	p.tokenize(blocks)
	p.run()
}

type parser struct {
	toks    []Token
	pos     int
	file    string
	program *ast.Program
	h       *reporter.Handler
}

func (p *parser) tokenize(blocks []preprocess.Block) {
	l := newLexer(p.file, blocks, p.h)
	for {
		tok := l.Next()
		p.toks = append(p.toks, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
}

func (p *parser) peek() Token  { return p.toks[p.pos] }
func (p *parser) atEOF() bool  { return p.peek().Kind == TokEOF }
func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) isKeyword(word string) bool {
	t := p.peek()
	return t.Kind == TokKeyword && t.Text == word
}

func (p *parser) errf(span source.Span, format string, args ...any) {
	p.h.Report(reporter.Diagnostic{
		Code:        reporter.CodeSyntax,
		Severity:    reporter.Error,
		Message:     fmt.Sprintf(format, args...),
		PrimarySpan: &span,
	})
}

// expect consumes a token of the given kind, reporting a syntax error and
// leaving the cursor in place (for the caller to recover) if it doesn't
// match.
func (p *parser) expect(kind TokenKind, what string) (Token, bool) {
	t := p.peek()
	if t.Kind != kind {
		p.errf(t.Span, "expected %s, found %q", what, t.Text)
		return t, false
	}
	return p.advance(), true
}

func (p *parser) expectKeyword(word string) (Token, bool) {
	t := p.peek()
	if t.Kind != TokKeyword || t.Text != word {
		p.errf(t.Span, "expected %q, found %q", word, t.Text)
		return t, false
	}
	return p.advance(), true
}

// synchronize skips tokens until one of the given kinds is found (without
// consuming it) or EOF, so a single malformed definition doesn't cascade
// into spurious diagnostics for everything after it.
func (p *parser) synchronize(stop ...TokenKind) {
	for !p.atEOF() {
		t := p.peek()
		for _, k := range stop {
			if t.Kind == k {
				return
			}
		}
		p.advance()
	}
}

func (p *parser) run() {
	for !p.atEOF() {
		doc, attrs := p.parseLeadingDocAndAttrs()
		switch {
		case p.isKeyword("encoding"):
			p.program.FileAttributes[p.file] = append(p.program.FileAttributes[p.file], fileWideOnly(attrs)...)
			p.parseEncodingStatement()
		case len(attrs) > 0 && attrs[0].FileWide && !p.isKeyword("module"):
			// A run of file-wide attributes with nothing following them in
			// this iteration (e.g. trailing attributes at EOF); already
			// recorded, nothing further to parse.
			p.program.FileAttributes[p.file] = append(p.program.FileAttributes[p.file], fileWideOnly(attrs)...)
		case p.isKeyword("module"):
			p.program.FileAttributes[p.file] = append(p.program.FileAttributes[p.file], fileWideOnly(attrs)...)
			h := p.parseModuleDef(ast.Root, doc, localOnly(attrs))
			if h != 0 {
				p.program.TopLevel = append(p.program.TopLevel, h)
			}
		default:
			t := p.peek()
			if t.Kind == TokEOF {
				break
			}
			p.errf(t.Span, "expected 'module' or 'encoding' at file scope, found %q", t.Text)
			p.synchronize(TokLBrace, TokSemi)
			if p.peek().Kind == TokSemi {
				p.advance()
			} else if p.peek().Kind == TokLBrace {
				p.skipBalancedBraces()
			}
		}
	}
}

func fileWideOnly(attrs []ast.Attribute) []ast.Attribute {
	var out []ast.Attribute
	for _, a := range attrs {
		if a.FileWide {
			out = append(out, a)
		}
	}
	return out
}

func localOnly(attrs []ast.Attribute) []ast.Attribute {
	var out []ast.Attribute
	for _, a := range attrs {
		if !a.FileWide {
			out = append(out, a)
		}
	}
	return out
}

func (p *parser) skipBalancedBraces() {
	depth := 0
	for !p.atEOF() {
		t := p.advance()
		switch t.Kind {
		case TokLBrace:
			depth++
		case TokRBrace:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

func (p *parser) parseEncodingStatement() {
	p.advance() // 'encoding'
	if _, ok := p.expect(TokEquals, "'='"); !ok {
		p.synchronize(TokSemi)
	}
	if p.peek().Kind == TokInteger {
		v := p.advance()
		p.program.FileEncoding[p.file] = int(v.IntValue)
	} else {
		p.errf(p.peek().Span, "expected integer encoding version")
	}
	if p.peek().Kind == TokSemi {
		p.advance()
	} else {
		p.synchronize(TokSemi, TokRBrace)
		if p.peek().Kind == TokSemi {
			p.advance()
		}
	}
}

// parseLeadingDocAndAttrs consumes a doc comment and any number of local
// ([...]) and file-wide ([[...]]) attribute blocks preceding a definition.
func (p *parser) parseLeadingDocAndAttrs() (*ast.DocComment, []ast.Attribute) {
	var doc *ast.DocComment
	var attrs []ast.Attribute
	for {
		switch p.peek().Kind {
		case TokDocComment:
			t := p.advance()
			doc = &ast.DocComment{Raw: t.Text, Span: t.Span, Tags: doccomment.Parse(t.Text)}
		case TokLDBracket:
			attrs = append(attrs, p.parseAttributeGroup(true)...)
		case TokLBracket:
			attrs = append(attrs, p.parseAttributeGroup(false)...)
		default:
			return doc, attrs
		}
	}
}

func (p *parser) parseAttributeGroup(fileWide bool) []ast.Attribute {
	open := p.advance() // '[' or '[['
	var out []ast.Attribute
	for {
		if p.atEOF() {
			p.errf(open.Span, "unterminated attribute")
			return out
		}
		closeKind := TokRBracket
		if fileWide {
			closeKind = TokRDBracket
		}
		if p.peek().Kind == closeKind {
			p.advance()
			return out
		}
		out = append(out, p.parseOneAttribute(fileWide))
		if p.peek().Kind == TokComma {
			p.advance()
			continue
		}
		if p.peek().Kind == closeKind {
			p.advance()
			return out
		}
		p.errf(p.peek().Span, "expected ',' or closing bracket in attribute list")
		p.synchronize(closeKind)
		if p.peek().Kind == closeKind {
			p.advance()
		}
		return out
	}
}

func (p *parser) parseOneAttribute(fileWide bool) ast.Attribute {
	start := p.peek().Span
	name := p.parseAttributeName()
	var args []string
	if p.peek().Kind == TokLParen {
		p.advance()
		for p.peek().Kind != TokRParen && !p.atEOF() {
			switch p.peek().Kind {
			case TokString:
				args = append(args, p.advance().StrValue)
			case TokInteger:
				args = append(args, p.advance().Text)
			case TokIdent, TokKeyword:
				args = append(args, p.advance().Text)
			default:
				p.errf(p.peek().Span, "expected attribute argument")
				p.advance()
			}
			if p.peek().Kind == TokComma {
				p.advance()
			}
		}
		if p.peek().Kind == TokRParen {
			p.advance()
		} else {
			p.errf(p.peek().Span, "expected ')' to close attribute arguments")
		}
	}
	return ast.Attribute{Name: name, Args: args, FileWide: fileWide, Span: start}
}

// parseAttributeName accepts dotted names like cs::namespace, used by
// language-mapping attributes.
func (p *parser) parseAttributeName() string {
	var parts []string
	t := p.peek()
	if t.Kind == TokIdent || t.Kind == TokKeyword {
		parts = append(parts, p.advance().Text)
	} else {
		p.errf(t.Span, "expected attribute name")
		return ""
	}
	for p.peek().Kind == TokScope {
		p.advance()
		n := p.peek()
		if n.Kind == TokIdent || n.Kind == TokKeyword {
			parts = append(parts, p.advance().Text)
		} else {
			p.errf(n.Span, "expected identifier after '::' in attribute name")
			break
		}
	}
	return strings.Join(parts, "::")
}

// parseModuleDef parses `module A::B::C { ... }`, desugaring a dotted name
// into nested Module nodes (the outermost is what gets linked into parent's
// children or Program.TopLevel; the innermost receives the body).
func (p *parser) parseModuleDef(parent ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	kw := p.advance() // 'module'
	global, parts, nameSpan, ok := p.parseScopedPath()
	if !ok {
		p.synchronize(TokLBrace, TokSemi)
	}
	if global {
		p.errf(nameSpan, "module name cannot be globally qualified")
	}
	if len(parts) == 0 {
		parts = []string{"_"}
	}

	var outer, innerParent ast.WeakHandle
	innerParent = parent
	for i, part := range parts {
		m := ast.NewModule()
		m.Ident = &ast.Identifier{Value: part, Span: nameSpan}
		m.SrcSpan = source.Span{File: kw.Span.File, Start: kw.Span.Start, End: nameSpan.End}
		m.Parent = innerParent
		if i == 0 {
			m.Attrs = attrs
			m.Doc = doc
		}
		h := p.program.Arena.Intern(m)
		if outer == 0 {
			outer = h
		} else {
			if parentNode, ok := p.program.Arena.Get(innerParent); ok {
				if pm, ok := parentNode.(*ast.Module); ok {
					pm.Children = append(pm.Children, h)
				}
			}
		}
		innerParent = h
	}

	leaf := innerParent

	// A file-level module (`module A::B;`) has no braces: every remaining
	// definition in the file belongs to it, through EOF.
	if p.peek().Kind == TokSemi {
		p.advance()
		for !p.atEOF() {
			d, a := p.parseLeadingDocAndAttrs()
			h := p.parseOneDefinition(leaf, d, a)
			if h != 0 {
				if leafNode, ok := p.program.Arena.Get(leaf); ok {
					lm := leafNode.(*ast.Module)
					lm.Children = append(lm.Children, h)
				}
			} else if p.peek().Kind == TokEOF {
				break
			}
		}
		return outer
	}

	if _, ok := p.expect(TokLBrace, "'{' or ';'"); !ok {
		p.synchronize(TokRBrace)
		if p.peek().Kind == TokRBrace {
			p.advance()
		}
		return outer
	}

	for !p.atEOF() && p.peek().Kind != TokRBrace {
		d, a := p.parseLeadingDocAndAttrs()
		h := p.parseOneDefinition(leaf, d, a)
		if h != 0 {
			if leafNode, ok := p.program.Arena.Get(leaf); ok {
				lm := leafNode.(*ast.Module)
				lm.Children = append(lm.Children, h)
			}
		}
	}
	if p.peek().Kind == TokRBrace {
		p.advance()
	} else {
		p.errf(p.peek().Span, "expected '}' to close module %q", parts[len(parts)-1])
	}
	return outer
}

// parseOneDefinition dispatches on the keyword starting a single member of
// a module body.
func (p *parser) parseOneDefinition(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	switch {
	case p.isKeyword("module"):
		return p.parseModuleDef(scope, doc, attrs)
	case p.isKeyword("compact") || p.isKeyword("struct"):
		return p.parseStruct(scope, doc, attrs)
	case p.isKeyword("exception"):
		return p.parseException(scope, doc, attrs)
	case p.isKeyword("class"):
		return p.parseClass(scope, doc, attrs)
	case p.isKeyword("interface"):
		return p.parseInterface(scope, doc, attrs)
	case p.isKeyword("unchecked") || p.isKeyword("enum"):
		return p.parseEnum(scope, doc, attrs)
	case p.isKeyword("trait"):
		return p.parseTrait(scope, doc, attrs)
	case p.isKeyword("custom"):
		return p.parseCustomType(scope, doc, attrs)
	case p.isKeyword("type"):
		return p.parseTypeAlias(scope, doc, attrs)
	default:
		t := p.peek()
		if t.Kind == TokRBrace || t.Kind == TokEOF {
			return 0
		}
		p.errf(t.Span, "expected a definition, found %q", t.Text)
		p.synchronize(TokSemi, TokRBrace)
		if p.peek().Kind == TokSemi {
			p.advance()
		}
		return 0
	}
}

func (p *parser) parseStruct(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	compact := false
	if p.isKeyword("compact") {
		p.advance()
		compact = true
	}
	if _, ok := p.expectKeyword("struct"); !ok {
		p.synchronize(TokLBrace)
	}
	name, ok := p.parseSimpleName("struct")
	if !ok {
		p.synchronize(TokLBrace, TokSemi)
	}
	s := ast.NewStruct()
	s.Compact = compact
	s.Parent = scope
	s.Doc, s.Attrs = doc, attrs
	s.Ident = name
	h := p.program.Arena.Intern(s)
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		s.SrcSpan = source.Span{File: start.File, Start: start.Start, End: start.End}
		return h
	}
	for p.peek().Kind != TokRBrace && !p.atEOF() {
		dm := p.parseDataMember(h)
		if dm != 0 {
			s.Members = append(s.Members, dm)
		}
		if p.peek().Kind == TokComma {
			p.advance()
		}
	}
	end := p.peek().Span
	if p.peek().Kind == TokRBrace {
		p.advance()
	} else {
		p.errf(p.peek().Span, "expected '}' to close struct %q", identText(name))
	}
	s.SrcSpan = source.Span{File: start.File, Start: start.Start, End: end.End}
	return h
}

func (p *parser) parseDataMember(scope ast.WeakHandle) ast.WeakHandle {
	doc, attrs := p.parseLeadingDocAndAttrs()
	if p.peek().Kind == TokRBrace {
		return 0
	}
	start := p.peek().Span
	var tag *int64
	if p.isKeyword("tag") {
		p.advance()
		if _, ok := p.expect(TokLParen, "'('"); ok {
			if p.peek().Kind == TokInteger {
				v := p.advance().IntValue
				tag = &v
			} else {
				p.errf(p.peek().Span, "expected integer tag value")
			}
			p.expect(TokRParen, "')'")
		}
	}
	name, ok := p.parseSimpleName("data member")
	if !ok {
		p.synchronize(TokComma, TokRBrace)
		return 0
	}
	if _, ok := p.expect(TokColon, "':'"); !ok {
		p.synchronize(TokComma, TokRBrace)
		return 0
	}
	typeH := p.parseTypeRef(scope)
	dm := ast.NewDataMember()
	dm.Ident = name
	dm.Type = typeH
	dm.Tag = tag
	dm.Parent = scope
	dm.Doc, dm.Attrs = doc, attrs
	dm.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return p.program.Arena.Intern(dm)
}

func (p *parser) parseException(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	p.expectKeyword("exception")
	name, _ := p.parseSimpleName("exception")
	e := ast.NewException()
	e.Ident = name
	e.Parent = scope
	e.Doc, e.Attrs = doc, attrs
	h := p.program.Arena.Intern(e)
	if p.peek().Kind == TokColon {
		p.advance()
		e.BaseException = p.parseTypeRef(scope)
	}
	if _, ok := p.expect(TokLBrace, "'{'"); ok {
		for p.peek().Kind != TokRBrace && !p.atEOF() {
			dm := p.parseDataMember(h)
			if dm != 0 {
				e.Members = append(e.Members, dm)
			}
			if p.peek().Kind == TokComma {
				p.advance()
			}
		}
		if p.peek().Kind == TokRBrace {
			p.advance()
		}
	}
	e.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return h
}

func (p *parser) parseClass(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	p.expectKeyword("class")
	name, _ := p.parseSimpleName("class")
	c := ast.NewClass()
	c.Ident = name
	c.Parent = scope
	c.Doc, c.Attrs = doc, attrs
	h := p.program.Arena.Intern(c)
	if p.peek().Kind == TokLParen {
		p.advance()
		if p.peek().Kind == TokInteger {
			v := p.advance().IntValue
			c.CompactID = &v
		} else {
			p.errf(p.peek().Span, "expected integer compact id")
		}
		p.expect(TokRParen, "')'")
	}
	if p.peek().Kind == TokColon {
		p.advance()
		c.BaseClass = p.parseTypeRef(scope)
	}
	if _, ok := p.expect(TokLBrace, "'{'"); ok {
		for p.peek().Kind != TokRBrace && !p.atEOF() {
			dm := p.parseDataMember(h)
			if dm != 0 {
				c.Members = append(c.Members, dm)
			}
			if p.peek().Kind == TokComma {
				p.advance()
			}
		}
		if p.peek().Kind == TokRBrace {
			p.advance()
		}
	}
	c.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return h
}

func (p *parser) parseInterface(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	p.expectKeyword("interface")
	name, _ := p.parseSimpleName("interface")
	i := ast.NewInterface()
	i.Ident = name
	i.Parent = scope
	i.Doc, i.Attrs = doc, attrs
	h := p.program.Arena.Intern(i)
	if p.peek().Kind == TokColon {
		p.advance()
		i.BaseInterfaces = append(i.BaseInterfaces, p.parseTypeRef(scope))
		for p.peek().Kind == TokComma {
			p.advance()
			i.BaseInterfaces = append(i.BaseInterfaces, p.parseTypeRef(scope))
		}
	}
	if _, ok := p.expect(TokLBrace, "'{'"); ok {
		for p.peek().Kind != TokRBrace && !p.atEOF() {
			op := p.parseOperation(h)
			if op != 0 {
				i.Operations = append(i.Operations, op)
			}
		}
		if p.peek().Kind == TokRBrace {
			p.advance()
		}
	}
	i.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return h
}

func (p *parser) parseOperation(scope ast.WeakHandle) ast.WeakHandle {
	doc, attrs := p.parseLeadingDocAndAttrs()
	if p.peek().Kind == TokRBrace {
		return 0
	}
	start := p.peek().Span
	idempotent := false
	if p.isKeyword("idempotent") {
		p.advance()
		idempotent = true
	}
	name, ok := p.parseSimpleName("operation")
	if !ok {
		p.synchronize(TokSemi, TokRBrace)
		if p.peek().Kind == TokSemi {
			p.advance()
		}
		return 0
	}
	op := ast.NewOperation()
	op.Ident = name
	op.Idempotent = idempotent
	op.Parent = scope
	op.Doc, op.Attrs = doc, attrs
	h := p.program.Arena.Intern(op)
	if _, ok := p.expect(TokLParen, "'('"); ok {
		for p.peek().Kind != TokRParen && !p.atEOF() {
			param := p.parseParameter(h)
			if param != 0 {
				op.Parameters = append(op.Parameters, param)
			}
			if p.peek().Kind == TokComma {
				p.advance()
			}
		}
		if p.peek().Kind == TokRParen {
			p.advance()
		}
	}
	if p.peek().Kind == TokArrow {
		p.advance()
		if p.peek().Kind == TokLParen {
			op.ReturnIsTuple = true
			p.advance()
			for p.peek().Kind != TokRParen && !p.atEOF() {
				op.ReturnTypes = append(op.ReturnTypes, p.parseTypeRef(h))
				if p.peek().Kind == TokComma {
					p.advance()
				}
			}
			if p.peek().Kind == TokRParen {
				p.advance()
			}
		} else {
			op.ReturnTypes = append(op.ReturnTypes, p.parseTypeRef(h))
		}
	}
	if p.peek().Kind == TokSemi {
		p.advance()
	} else {
		p.errf(p.peek().Span, "expected ';' after operation %q", identText(name))
		p.synchronize(TokSemi, TokRBrace)
		if p.peek().Kind == TokSemi {
			p.advance()
		}
	}
	op.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return h
}

func (p *parser) parseParameter(scope ast.WeakHandle) ast.WeakHandle {
	start := p.peek().Span
	stream := false
	if p.isKeyword("stream") {
		p.advance()
		stream = true
	}
	var tag *int64
	if p.isKeyword("tag") {
		p.advance()
		if _, ok := p.expect(TokLParen, "'('"); ok {
			if p.peek().Kind == TokInteger {
				v := p.advance().IntValue
				tag = &v
			}
			p.expect(TokRParen, "')'")
		}
	}
	name, ok := p.parseSimpleName("parameter")
	if !ok {
		p.synchronize(TokComma, TokRParen)
		return 0
	}
	if _, ok := p.expect(TokColon, "':'"); !ok {
		p.synchronize(TokComma, TokRParen)
		return 0
	}
	typeH := p.parseTypeRef(scope)
	param := ast.NewParameter()
	param.Ident = name
	param.Type = typeH
	param.Stream = stream
	param.Tag = tag
	param.Parent = scope
	param.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return p.program.Arena.Intern(param)
}

func (p *parser) parseEnum(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	unchecked := false
	if p.isKeyword("unchecked") {
		p.advance()
		unchecked = true
	}
	p.expectKeyword("enum")
	name, _ := p.parseSimpleName("enum")
	e := ast.NewEnum()
	e.Unchecked = unchecked
	e.Ident = name
	e.Parent = scope
	e.Doc, e.Attrs = doc, attrs
	h := p.program.Arena.Intern(e)
	if p.peek().Kind == TokColon {
		p.advance()
		e.UnderlyingType = p.parseTypeRef(scope)
	}
	if _, ok := p.expect(TokLBrace, "'{'"); ok {
		for p.peek().Kind != TokRBrace && !p.atEOF() {
			en := p.parseEnumerator(h)
			if en != 0 {
				e.Enumerators = append(e.Enumerators, en)
			}
			if p.peek().Kind == TokComma {
				p.advance()
			}
		}
		if p.peek().Kind == TokRBrace {
			p.advance()
		}
	}
	e.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return h
}

func (p *parser) parseEnumerator(scope ast.WeakHandle) ast.WeakHandle {
	doc, attrs := p.parseLeadingDocAndAttrs()
	if p.peek().Kind == TokRBrace {
		return 0
	}
	start := p.peek().Span
	name, ok := p.parseSimpleName("enumerator")
	if !ok {
		p.synchronize(TokComma, TokRBrace)
		return 0
	}
	en := ast.NewEnumerator()
	en.Ident = name
	en.Parent = scope
	en.Doc, en.Attrs = doc, attrs
	if p.peek().Kind == TokEquals {
		p.advance()
		if p.peek().Kind == TokInteger {
			v := p.advance().IntValue
			en.Discriminant = &v
		} else {
			p.errf(p.peek().Span, "expected integer discriminant")
		}
	}
	h := p.program.Arena.Intern(en)
	if p.peek().Kind == TokLParen {
		p.advance()
		for p.peek().Kind != TokRParen && !p.atEOF() {
			f := p.parseField(h)
			if f != 0 {
				en.AssociatedFields = append(en.AssociatedFields, f)
			}
			if p.peek().Kind == TokComma {
				p.advance()
			}
		}
		if p.peek().Kind == TokRParen {
			p.advance()
		}
	}
	en.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return h
}

func (p *parser) parseField(scope ast.WeakHandle) ast.WeakHandle {
	start := p.peek().Span
	var tag *int64
	if p.isKeyword("tag") {
		p.advance()
		if _, ok := p.expect(TokLParen, "'('"); ok {
			if p.peek().Kind == TokInteger {
				v := p.advance().IntValue
				tag = &v
			}
			p.expect(TokRParen, "')'")
		}
	}
	name, ok := p.parseSimpleName("field")
	if !ok {
		p.synchronize(TokComma, TokRParen)
		return 0
	}
	if _, ok := p.expect(TokColon, "':'"); !ok {
		p.synchronize(TokComma, TokRParen)
		return 0
	}
	typeH := p.parseTypeRef(scope)
	f := ast.NewField()
	f.Ident = name
	f.Type = typeH
	f.Tag = tag
	f.Parent = scope
	f.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return p.program.Arena.Intern(f)
}

func (p *parser) parseTrait(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	p.expectKeyword("trait")
	name, _ := p.parseSimpleName("trait")
	t := ast.NewTrait()
	t.Ident = name
	t.Parent = scope
	t.Doc, t.Attrs = doc, attrs
	t.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	h := p.program.Arena.Intern(t)
	if p.peek().Kind == TokSemi {
		p.advance()
	} else {
		p.errf(p.peek().Span, "expected ';' after trait %q", identText(name))
	}
	return h
}

func (p *parser) parseCustomType(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	p.expectKeyword("custom")
	name, _ := p.parseSimpleName("custom type")
	c := ast.NewCustomType()
	c.Ident = name
	c.Parent = scope
	c.Doc, c.Attrs = doc, attrs
	c.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	h := p.program.Arena.Intern(c)
	if p.peek().Kind == TokSemi {
		p.advance()
	} else {
		p.errf(p.peek().Span, "expected ';' after custom type %q", identText(name))
	}
	return h
}

func (p *parser) parseTypeAlias(scope ast.WeakHandle, doc *ast.DocComment, attrs []ast.Attribute) ast.WeakHandle {
	start := p.peek().Span
	p.expectKeyword("type")
	name, _ := p.parseSimpleName("type alias")
	ta := ast.NewTypeAlias()
	ta.Ident = name
	ta.Parent = scope
	ta.Doc, ta.Attrs = doc, attrs
	h := p.program.Arena.Intern(ta)
	if _, ok := p.expect(TokEquals, "'='"); ok {
		ta.Target = p.parseTypeRef(scope)
	}
	if p.peek().Kind == TokSemi {
		p.advance()
	} else {
		p.errf(p.peek().Span, "expected ';' after type alias %q", identText(name))
		p.synchronize(TokSemi, TokRBrace)
		if p.peek().Kind == TokSemi {
			p.advance()
		}
	}
	ta.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return h
}

// parseTypeRef parses a single TypeRef (named, primitive, sequence, or
// dictionary), leaving Unpatched named references for package scope to
// resolve. scope is the enclosing container handle recorded as the
// reference's lexical scope for lookup purposes.
func (p *parser) parseTypeRef(scope ast.WeakHandle) ast.WeakHandle {
	start := p.peek().Span
	tr := ast.NewTypeRef()
	tr.Parent = scope

	switch {
	case p.isKeyword("sequence"):
		p.advance()
		tr.Form = ast.FormSequence
		if _, ok := p.expect(TokLAngle, "'<'"); ok {
			tr.Element = p.parseTypeRef(scope)
			p.expect(TokRAngle, "'>'")
		}
	case p.isKeyword("dictionary"):
		p.advance()
		tr.Form = ast.FormDictionary
		if _, ok := p.expect(TokLAngle, "'<'"); ok {
			tr.DictKey = p.parseTypeRef(scope)
			p.expect(TokComma, "','")
			tr.DictValue = p.parseTypeRef(scope)
			p.expect(TokRAngle, "'>'")
		}
	case p.peek().Kind == TokKeyword && Primitives[p.peek().Text]:
		tr.Form = ast.FormPrimitive
		tr.PrimitiveName = p.advance().Text
	default:
		global, parts, span, ok := p.parseScopedPath()
		if !ok {
			p.synchronize(TokSemi, TokComma, TokRBrace, TokRParen, TokRBracket)
		}
		tr.Form = ast.FormNamed
		tr.State = ast.Unpatched
		tr.GloballyQualified = global
		tr.UnpatchedName = strings.Join(parts, "::")
		tr.ReferencingScope = scope
		start = span
	}

	if p.peek().Kind == TokQuestion {
		p.advance()
		tr.Optional = true
	}

	tr.SrcSpan = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return p.program.Arena.Intern(tr)
}

// parseScopedPath parses a (possibly "::"-prefixed) dotted identifier path
// such as "::A::B::C" or "B::C", used for module names and type references.
func (p *parser) parseScopedPath() (global bool, parts []string, span source.Span, ok bool) {
	start := p.peek().Span
	if p.peek().Kind == TokScope {
		p.advance()
		global = true
	}
	t := p.peek()
	if t.Kind != TokIdent {
		if t.Kind == TokKeyword {
			p.errf(t.Span, "%q is a reserved keyword and cannot be used as an identifier", t.Text)
		} else {
			p.errf(t.Span, "expected identifier")
		}
		return global, nil, start, false
	}
	parts = append(parts, p.advance().Text)
	for p.peek().Kind == TokScope {
		p.advance()
		n := p.peek()
		if n.Kind != TokIdent {
			p.errf(n.Span, "expected identifier after '::'")
			break
		}
		parts = append(parts, p.advance().Text)
	}
	span = source.Span{File: start.File, Start: start.Start, End: p.lastEnd()}
	return global, parts, span, true
}

func (p *parser) parseSimpleName(what string) (*ast.Identifier, bool) {
	t := p.peek()
	if t.Kind != TokIdent {
		if t.Kind == TokKeyword {
			p.errf(t.Span, "%q is a reserved keyword and cannot be used as %s name", t.Text, what)
		} else {
			p.errf(t.Span, "expected %s name, found %q", what, t.Text)
		}
		return &ast.Identifier{Value: "", Span: t.Span}, false
	}
	p.advance()
	return &ast.Identifier{Value: t.Text, Span: t.Span}, true
}

// lastEnd returns the end location of the most recently consumed token,
// used to close off a node's span after parsing its body.
func (p *parser) lastEnd() source.Location {
	if p.pos == 0 {
		return p.toks[0].Span.Start
	}
	return p.toks[p.pos-1].Span.End
}

func identText(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Value
}
