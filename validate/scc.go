package validate

import (
	"sort"

	"github.com/slicelang/slicec/ast"
)

// tarjanSCC computes strongly connected components of the graph described
// by edges, in deterministic order (node and edge iteration both proceed in
// ascending handle order, since handles are assigned in a stable, parse-order
// sequence) so that diagnostics derived from it satisfy the span-stability
// property of spec §8 (P4).
func tarjanSCC(edges map[ast.WeakHandle][]ast.WeakHandle) [][]ast.WeakHandle {
	nodeSet := map[ast.WeakHandle]bool{}
	for from, tos := range edges {
		nodeSet[from] = true
		for _, to := range tos {
			nodeSet[to] = true
		}
	}
	nodes := make([]ast.WeakHandle, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	sortedEdges := make(map[ast.WeakHandle][]ast.WeakHandle, len(edges))
	for from, tos := range edges {
		cp := append([]ast.WeakHandle(nil), tos...)
		sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
		sortedEdges[from] = cp
	}

	t := &tarjan{
		edges:   sortedEdges,
		index:   map[ast.WeakHandle]int{},
		lowlink: map[ast.WeakHandle]int{},
		onStack: map[ast.WeakHandle]bool{},
	}
	for _, n := range nodes {
		if _, visited := t.index[n]; !visited {
			t.strongConnect(n)
		}
	}
	return t.result
}

type tarjan struct {
	counter int
	index   map[ast.WeakHandle]int
	lowlink map[ast.WeakHandle]int
	onStack map[ast.WeakHandle]bool
	stack   []ast.WeakHandle
	edges   map[ast.WeakHandle][]ast.WeakHandle
	result  [][]ast.WeakHandle
}

func (t *tarjan) strongConnect(v ast.WeakHandle) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.edges[v] {
		if _, visited := t.index[w]; !visited {
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] != t.index[v] {
		return
	}
	var scc []ast.WeakHandle
	for {
		n := len(t.stack) - 1
		w := t.stack[n]
		t.stack = t.stack[:n]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	t.result = append(t.result, scc)
}
