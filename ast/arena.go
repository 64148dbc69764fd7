// Package ast holds the Slice arena and AST node types: a single growing
// arena per compilation owns every definition, and all cross-node
// relationships (parent links, inheritance, type-reference targets) are
// expressed as weak handles (plain arena indices) into it, so the AST's
// graph topology never needs reference counting or a garbage-collector
// cycle collector.
package ast

import "fmt"

// NodeID is both the StrongHandle and WeakHandle representation described
// by spec §4.6: ownership lives solely in the Arena's backing slice, so a
// "strong" handle and a "weak" handle are the same integer, distinguished
// only by convention (a StrongHandle is the single value returned by
// Intern; every other copy of that value is, by construction, weak).
// The zero value is never a valid node; it is used as "no parent" (Root).
type NodeID int

// StrongHandle is returned exactly once per node, at Intern time.
type StrongHandle = NodeID

// WeakHandle is any other reference to a node: parent links, inheritance
// lists, type-reference targets, scope-table entries.
type WeakHandle = NodeID

// Root is the conceptual scope above every top-level module; it is not an
// arena entry.
const Root WeakHandle = 0

// Downgrade converts a StrongHandle into a WeakHandle. Since both are the
// same representation this never fails; it exists so call sites document
// intent the way spec §4.6 describes.
func Downgrade(h StrongHandle) WeakHandle { return WeakHandle(h) }

// Arena is the single growing store of AST nodes for one compilation.
// Nodes are appended during parsing and never removed; Lookups are
// panic-free.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Intern adds n to the arena, assigns it its self-handle, and returns a
// StrongHandle to it.
func (a *Arena) Intern(n Node) StrongHandle {
	a.nodes = append(a.nodes, n)
	id := StrongHandle(len(a.nodes))
	n.SetSelf(id)
	return id
}

// Get dereferences a StrongHandle. It is panic-free: a zero or
// out-of-range handle reports ok=false instead of panicking.
func (a *Arena) Get(h StrongHandle) (Node, bool) {
	if h <= 0 || int(h) > len(a.nodes) {
		return nil, false
	}
	return a.nodes[h-1], true
}

// GetWeak dereferences a WeakHandle, returning an error instead of
// panicking if the handle is dangling (zero, or out of range). Per spec
// invariant 6, callers must only dereference weak handles after patching
// has completed for the owning compilation unit; this method enforces that
// contract defensively rather than assuming it.
func (a *Arena) GetWeak(h WeakHandle) (Node, error) {
	n, ok := a.Get(h)
	if !ok {
		return nil, fmt.Errorf("ast: dangling handle %d", h)
	}
	return n, nil
}

// Len reports how many nodes have been interned.
func (a *Arena) Len() int { return len(a.nodes) }

// All returns every interned node in insertion order, for use by the
// visitor framework and by passes that need a flat, deterministic sweep
// (e.g. scope-table construction).
func (a *Arena) All() []Node {
	out := make([]Node, len(a.nodes))
	copy(out, a.nodes)
	return out
}
