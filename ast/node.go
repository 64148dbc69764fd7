package ast

import (
	"github.com/slicelang/slicec/doccomment"
	"github.com/slicelang/slicec/source"
)

// Kind enumerates the closed sum type of AST node variants from spec §3.
type Kind int

const (
	KindModule Kind = iota
	KindStruct
	KindClass
	KindException
	KindInterface
	KindEnum
	KindEnumerator
	KindTrait
	KindCustomType
	KindTypeAlias
	KindOperation
	KindParameter
	KindDataMember
	KindField
	KindTypeRef
)

func (k Kind) String() string {
	names := [...]string{
		"Module", "Struct", "Class", "Exception", "Interface", "Enum",
		"Enumerator", "Trait", "CustomType", "TypeAlias", "Operation",
		"Parameter", "DataMember", "Field", "TypeRef",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// Identifier is a bare or scoped (joined with "::") name token.
type Identifier struct {
	Value string
	Span  source.Span
}

// Attribute is a parsed [[...]] (file-level) or [...] (local) attribute:
// a name plus a comma-separated argument list of identifiers or strings.
type Attribute struct {
	Name     string
	Args     []string
	FileWide bool
	Span     source.Span
}

// DocComment is the raw and structured form of a node's doc comment.
type DocComment struct {
	Raw  string
	Span source.Span
	Tags doccomment.Doc
}

// Node is implemented by every AST node variant. Start/End mirror spec's
// Node.Start()/End() in other implementations' visitor vocabularies, but
// here we expose the span directly since nodes are not token-level.
type Node interface {
	Self() WeakHandle
	SetSelf(WeakHandle)
	NodeKind() Kind
	Identifier() *Identifier
	Span() source.Span
	Attributes() []Attribute
	DocComment() *DocComment
	ParentScope() WeakHandle
}

// Base is embedded by every concrete node type and implements all of Node;
// NodeKind returns the Kind field, which each concrete type's constructor
// sets.
type Base struct {
	id     WeakHandle
	Kind   Kind
	Ident  *Identifier
	SrcSpan source.Span
	Attrs  []Attribute
	Doc    *DocComment
	Parent WeakHandle
}

func (b *Base) Self() WeakHandle          { return b.id }
func (b *Base) SetSelf(id WeakHandle)     { b.id = id }
func (b *Base) NodeKind() Kind            { return b.Kind }
func (b *Base) Identifier() *Identifier   { return b.Ident }
func (b *Base) Span() source.Span        { return b.SrcSpan }
func (b *Base) Attributes() []Attribute  { return b.Attrs }
func (b *Base) DocComment() *DocComment  { return b.Doc }
func (b *Base) ParentScope() WeakHandle  { return b.Parent }

// Name returns the node's bare identifier text, or "" if it has none.
func Name(n Node) string {
	if id := n.Identifier(); id != nil {
		return id.Value
	}
	return ""
}
