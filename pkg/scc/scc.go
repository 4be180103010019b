// Package scc decomposes directed graphs into strongly connected
// components using Tarjan's algorithm. The traversal is iterative with
// an explicit frame stack, so dependence chains of arbitrary length
// (one edge per statement in a large kernel is common) cannot exhaust
// the call stack.
package scc

// frame is one suspended DFS visit: the node and the index of the next
// successor to examine when the visit resumes.
type frame[N comparable] struct {
	node N
	next int
}

// Decompose returns the strongly connected components of the graph
// described by nodes and succs. Nodes are processed in the order given;
// passing a sorted node list makes component enumeration reproducible
// across runs. Each component is a maximal set of mutually reachable
// nodes; components are returned in Tarjan completion order
// (reverse topological over the component DAG).
func Decompose[N comparable](nodes []N, succs func(N) []N) [][]N {
	t := &tarjan[N]{
		succs:   succs,
		index:   make(map[N]int, len(nodes)),
		lowlink: make(map[N]int, len(nodes)),
		onStack: make(map[N]bool, len(nodes)),
	}
	for _, n := range nodes {
		if _, visited := t.index[n]; !visited {
			t.visit(n)
		}
	}
	return t.comps
}

type tarjan[N comparable] struct {
	succs   func(N) []N
	counter int
	index   map[N]int
	lowlink map[N]int
	onStack map[N]bool
	stack   []N
	comps   [][]N
}

// visit runs the DFS from root without recursion. Each frame carries a
// successor cursor; when a child's subtree completes, the parent frame
// resumes at the cursor and folds the child's lowlink in, preserving
// the discovery/lowlink semantics of the recursive formulation exactly.
func (t *tarjan[N]) visit(root N) {
	t.discover(root)
	frames := []frame[N]{{node: root}}

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		v := f.node
		advanced := false

		for f.next < len(t.succs(v)) {
			w := t.succs(v)[f.next]
			f.next++
			if _, visited := t.index[w]; !visited {
				t.discover(w)
				frames = append(frames, frame[N]{node: w})
				advanced = true
				break
			}
			if t.onStack[w] {
				// Back edge into the current traversal stack.
				if t.index[w] < t.lowlink[v] {
					t.lowlink[v] = t.index[w]
				}
			}
			// Visited but off-stack successors belong to an already
			// closed component and cannot extend this one.
		}
		if advanced {
			continue
		}

		// All successors of v are done.
		if t.lowlink[v] == t.index[v] {
			t.popComponent(v)
		}
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := frames[len(frames)-1].node
			if t.lowlink[v] < t.lowlink[parent] {
				t.lowlink[parent] = t.lowlink[v]
			}
		}
	}
}

// discover assigns the next discovery index and pushes the node onto
// the traversal stack.
func (t *tarjan[N]) discover(n N) {
	t.index[n] = t.counter
	t.lowlink[n] = t.counter
	t.counter++
	t.stack = append(t.stack, n)
	t.onStack[n] = true
}

// popComponent pops the traversal stack down to and including root; the
// popped nodes form exactly one component.
func (t *tarjan[N]) popComponent(root N) {
	var comp []N
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		comp = append(comp, w)
		if w == root {
			break
		}
	}
	t.comps = append(t.comps, comp)
}

// IsCyclic reports whether a component represents a dependence cycle:
// more than one node, or a single node with an edge to itself.
func IsCyclic[N comparable](comp []N, succs func(N) []N) bool {
	if len(comp) > 1 {
		return true
	}
	if len(comp) == 0 {
		return false
	}
	only := comp[0]
	for _, w := range succs(only) {
		if w == only {
			return true
		}
	}
	return false
}

// Cyclic filters a decomposition down to its cyclic components.
func Cyclic[N comparable](comps [][]N, succs func(N) []N) [][]N {
	var out [][]N
	for _, comp := range comps {
		if IsCyclic(comp, succs) {
			out = append(out, comp)
		}
	}
	return out
}
