// Package scope builds the FQN scope table described by spec §4.7 and
// patches every Unpatched TypeRef in the program to a resolved handle.
package scope

import (
	"strings"

	art "github.com/kralicky/go-adaptive-radix-tree"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
	"github.com/slicelang/slicec/source"
)

// RootFQN is the textual root of every fully qualified name, per the
// glossary's "Root::A::B::C" convention.
const RootFQN = "Root"

type entry struct {
	handle ast.WeakHandle
	kind   ast.Kind
	span   source.Span
	isMod  bool
}

// Table maps fully-qualified names to the handle of their (possibly
// merged, for modules) definition. Lookups go through a plain map; an
// ordered radix-tree index of the same FQNs backs ListByPrefix's
// deterministic prefix enumeration.
type Table struct {
	program *ast.Program

	byFQN map[string]entry
	fqnOf map[ast.WeakHandle]string
	tree  art.Tree

	// moduleChildren aggregates the Children of every physical Module node
	// sharing an FQN, implementing the "modules may be re-opened and
	// merged across files" rule.
	moduleChildren map[string][]ast.WeakHandle
}

// Build walks the entire program once, assigning a fully qualified name to
// every definition and recording it in the table. Colliding non-module
// definitions produce a Redefinition diagnostic; the first definition
// inserted for a given FQN wins and is kept in the table.
func Build(program *ast.Program, h *reporter.Handler) *Table {
	t := &Table{
		program:        program,
		byFQN:          make(map[string]entry),
		fqnOf:          make(map[ast.WeakHandle]string),
		tree:           art.New(),
		moduleChildren: make(map[string][]ast.WeakHandle),
	}
	for _, top := range program.TopLevel {
		t.visit(top, RootFQN, h)
	}
	return t
}

func (t *Table) insert(fqn string, handle ast.WeakHandle, kind ast.Kind, span source.Span, isMod bool, h *reporter.Handler) {
	t.fqnOf[handle] = fqn
	prev, exists := t.byFQN[fqn]
	if !exists {
		t.byFQN[fqn] = entry{handle: handle, kind: kind, span: span, isMod: isMod}
		t.tree.Insert(art.Key(fqn), handle)
		return
	}
	if prev.isMod && isMod {
		// Re-opening the same module across files/blocks: not a
		// redefinition. Keep the first handle as the table's
		// representative; children are merged via moduleChildren.
		return
	}
	prevSpan := prev.span
	h.Report(reporter.Diagnostic{
		Code:        reporter.CodeRedefinition,
		Severity:    reporter.Error,
		Message:     "redefinition of \"" + fqn + "\"",
		PrimarySpan: &span,
		Notes: []reporter.Note{
			{Message: "previously defined here", Span: &prevSpan},
		},
	})
	// first definition wins; table entry is left as-is.
}

func (t *Table) visit(h ast.WeakHandle, parentFQN string, handler *reporter.Handler) {
	n, ok := t.program.Arena.Get(h)
	if !ok {
		return
	}
	name := ast.Name(n)
	fqn := parentFQN
	if name != "" {
		fqn = parentFQN + "::" + name
	}

	switch node := n.(type) {
	case *ast.Module:
		t.insert(fqn, h, ast.KindModule, node.Span(), true, handler)
		t.moduleChildren[fqn] = append(t.moduleChildren[fqn], node.Children...)
		for _, c := range node.Children {
			t.visit(c, fqn, handler)
		}
	case *ast.Struct:
		t.insert(fqn, h, ast.KindStruct, node.Span(), false, handler)
		for _, m := range node.Members {
			t.visit(m, fqn, handler)
		}
	case *ast.Class:
		t.insert(fqn, h, ast.KindClass, node.Span(), false, handler)
		for _, m := range node.Members {
			t.visit(m, fqn, handler)
		}
	case *ast.Exception:
		t.insert(fqn, h, ast.KindException, node.Span(), false, handler)
		for _, m := range node.Members {
			t.visit(m, fqn, handler)
		}
	case *ast.Interface:
		t.insert(fqn, h, ast.KindInterface, node.Span(), false, handler)
		for _, op := range node.Operations {
			t.visit(op, fqn, handler)
		}
	case *ast.Enum:
		t.insert(fqn, h, ast.KindEnum, node.Span(), false, handler)
		for _, e := range node.Enumerators {
			t.visit(e, fqn, handler)
		}
	case *ast.Trait:
		t.insert(fqn, h, ast.KindTrait, node.Span(), false, handler)
	case *ast.CustomType:
		t.insert(fqn, h, ast.KindCustomType, node.Span(), false, handler)
	case *ast.TypeAlias:
		t.insert(fqn, h, ast.KindTypeAlias, node.Span(), false, handler)
	case *ast.Enumerator:
		// Enumerators live in their own namespace (not container-scoped
		// FQNs that other types resolve through) but still need an FQN
		// for diagnostics and duplicate detection.
		t.fqnOf[h] = fqn
	case *ast.Operation, *ast.Parameter, *ast.DataMember, *ast.Field:
		t.fqnOf[h] = fqn
	}
}

// FQNOf returns the fully qualified name computed for handle during Build,
// or "" if handle was never visited (e.g. it is a TypeRef).
func (t *Table) FQNOf(h ast.WeakHandle) string {
	return t.fqnOf[h]
}

// Lookup resolves an exact FQN (e.g. "Root::A::B") to its handle.
func (t *Table) Lookup(fqn string) (ast.WeakHandle, bool) {
	e, ok := t.byFQN[fqn]
	if !ok {
		return 0, false
	}
	return e.handle, true
}

// ChildrenUnder returns every direct child handle declared anywhere under
// the module at fqn, across every physical re-opening of that module.
func (t *Table) ChildrenUnder(fqn string) []ast.WeakHandle {
	return t.moduleChildren[fqn]
}

// ListByPrefix returns every FQN in the table with the given prefix, in
// radix-tree (lexicographic) order, giving a deterministic sweep of
// "everything under a scope". No validator in package validate calls it.
func (t *Table) ListByPrefix(prefix string) []string {
	var out []string
	t.tree.ForEachPrefix(art.Key(prefix), func(node art.Node) bool {
		out = append(out, string(node.Key()))
		return true
	})
	return out
}

// parentFQN strips the last "::segment" from fqn, or returns "" if fqn has
// no further parent (i.e. it is already RootFQN).
func parentFQN(fqn string) string {
	idx := strings.LastIndex(fqn, "::")
	if idx < 0 {
		return ""
	}
	return fqn[:idx]
}
