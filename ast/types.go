package ast

// Module is a container for nested definitions. Unlike other containers, a
// module may be declared more than once (even across files); each physical
// `module X { ... }` block is represented by its own Module node, and the
// scope table (package scope) is responsible for merging same-FQN Module
// nodes into one logical scope, per spec §4.7.
type Module struct {
	Base
	Children []WeakHandle
}

func NewModule() *Module { m := &Module{}; m.Kind = KindModule; return m }

// Struct is a compact or regular struct; Compact structs must be fully
// acyclic, even through optional fields (spec §4.8).
type Struct struct {
	Base
	Compact bool
	Members []WeakHandle // *DataMember
}

func NewStruct() *Struct { s := &Struct{}; s.Kind = KindStruct; return s }

// Exception optionally extends a single other exception.
type Exception struct {
	Base
	BaseException WeakHandle // *TypeRef, 0 if none
	Members       []WeakHandle
}

func NewException() *Exception { e := &Exception{}; e.Kind = KindException; return e }

// Class optionally has a compact id and a single base class.
type Class struct {
	Base
	CompactID *int64
	BaseClass WeakHandle // *TypeRef, 0 if none
	Members   []WeakHandle
}

func NewClass() *Class { c := &Class{}; c.Kind = KindClass; return c }

// Interface may extend multiple other interfaces.
type Interface struct {
	Base
	BaseInterfaces []WeakHandle // *TypeRef
	Operations     []WeakHandle // *Operation
}

func NewInterface() *Interface { i := &Interface{}; i.Kind = KindInterface; return i }

// Enum optionally declares an underlying integral type; Unchecked enums
// may have duplicate discriminants (spec §4.8, §9), which validate/enums.go
// does not report.
type Enum struct {
	Base
	Unchecked      bool
	UnderlyingType WeakHandle // *TypeRef, 0 if none (default underlying type)
	Enumerators    []WeakHandle
}

func NewEnum() *Enum { e := &Enum{}; e.Kind = KindEnum; return e }

// Enumerator may carry an explicit discriminant and associated fields.
type Enumerator struct {
	Base
	Discriminant   *int64
	AssociatedFields []WeakHandle // *Field
}

func NewEnumerator() *Enumerator { e := &Enumerator{}; e.Kind = KindEnumerator; return e }

// Trait is an opaque marker type with no members.
type Trait struct {
	Base
}

func NewTrait() *Trait { t := &Trait{}; t.Kind = KindTrait; return t }

// CustomType is an opaque, externally-defined wire type.
type CustomType struct {
	Base
}

func NewCustomType() *CustomType { c := &CustomType{}; c.Kind = KindCustomType; return c }

// TypeAlias is transparent to the patcher: resolving through it returns the
// alias's own TypeRef, and a later validation pass walks alias chains.
type TypeAlias struct {
	Base
	Target WeakHandle // *TypeRef
}

func NewTypeAlias() *TypeAlias { t := &TypeAlias{}; t.Kind = KindTypeAlias; return t }

// Operation is a single RPC method of an Interface.
type Operation struct {
	Base
	Idempotent    bool
	Parameters    []WeakHandle // *Parameter
	ReturnTypes   []WeakHandle // *TypeRef; len 0 (void), 1, or >=2 (tuple)
	ReturnIsTuple bool         // true iff the return type was written in parens
}

func NewOperation() *Operation { o := &Operation{}; o.Kind = KindOperation; return o }

// Parameter is a single Operation input.
type Parameter struct {
	Base
	Type   WeakHandle // *TypeRef
	Stream bool
	Tag    *int64
}

func NewParameter() *Parameter { p := &Parameter{}; p.Kind = KindParameter; return p }

// DataMember is a field of a Struct, Exception, or Class.
type DataMember struct {
	Base
	Type WeakHandle // *TypeRef
	Tag  *int64
}

func NewDataMember() *DataMember { d := &DataMember{}; d.Kind = KindDataMember; return d }

// Field is an associated field of an Enumerator.
type Field struct {
	Base
	Type WeakHandle // *TypeRef
	Tag  *int64
}

func NewField() *Field { f := &Field{}; f.Kind = KindField; return f }

// TypeRefState tracks whether a TypeRef has been through the patcher.
type TypeRefState int

const (
	Unpatched TypeRefState = iota
	Patched
)

// TypeRefForm distinguishes the four TypeRefDef alternatives from spec
// §4.5's grammar.
type TypeRefForm int

const (
	FormNamed TypeRefForm = iota
	FormPrimitive
	FormSequence
	FormDictionary
)

// TypeRef is interned in the arena like every other node (so the visitor
// framework and cycle detection can address it uniformly), but Primitive,
// Sequence, and Dictionary forms never go through scope lookup — they are
// "anonymous" per spec §4.7.
type TypeRef struct {
	Base
	Form     TypeRefForm
	Optional bool

	// FormNamed
	State             TypeRefState
	GloballyQualified  bool
	UnpatchedName      string     // the "::"-joined lexical form, as written
	ReferencingScope   WeakHandle // the scope this reference was parsed in
	ResolvedTarget     WeakHandle // valid once State == Patched

	// FormPrimitive
	PrimitiveName string

	// FormSequence
	Element WeakHandle // *TypeRef

	// FormDictionary
	DictKey   WeakHandle // *TypeRef
	DictValue WeakHandle // *TypeRef
}

func NewTypeRef() *TypeRef { t := &TypeRef{}; t.Kind = KindTypeRef; return t }

// IsAnonymous reports whether this TypeRef's top-level form bypasses scope
// lookup entirely, per spec §4.7.
func (t *TypeRef) IsAnonymous() bool {
	return t.Form != FormNamed
}
