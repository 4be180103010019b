package scc

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
)

// adjacency builds a succs func over a map graph.
func adjacency(adj map[string][]string) func(string) []string {
	return func(n string) []string { return adj[n] }
}

func sortedNodes(adj map[string][]string) []string {
	nodes := make(map[string]struct{})
	for n, succs := range adj {
		nodes[n] = struct{}{}
		for _, w := range succs {
			nodes[w] = struct{}{}
		}
	}
	out := make([]string, 0, len(nodes))
	for n := range nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// canonical sorts nodes within components and components by first node,
// for order-insensitive comparison.
func canonical(comps [][]string) [][]string {
	out := make([][]string, len(comps))
	for i, c := range comps {
		cc := append([]string(nil), c...)
		sort.Strings(cc)
		out[i] = cc
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		adj  map[string][]string
		want [][]string
	}{
		{
			name: "acyclic chain gives singletons",
			adj:  map[string][]string{"a": {"b"}, "b": {"c"}, "c": nil},
			want: [][]string{{"a"}, {"b"}, {"c"}},
		},
		{
			name: "two node cycle",
			adj:  map[string][]string{"a": {"b"}, "b": {"a"}},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "cycle with tail",
			adj:  map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a"}, "d": {"a"}},
			want: [][]string{{"a", "b", "c"}, {"d"}},
		},
		{
			name: "two disjoint cycles",
			adj: map[string][]string{
				"a": {"b"}, "b": {"a"},
				"c": {"d"}, "d": {"c"},
			},
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "cross edge between cycles stays two components",
			adj: map[string][]string{
				"a": {"b"}, "b": {"a", "c"},
				"c": {"d"}, "d": {"c"},
			},
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "self loop singleton",
			adj:  map[string][]string{"a": {"a"}},
			want: [][]string{{"a"}},
		},
		{
			name: "empty graph",
			adj:  map[string][]string{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(sortedNodes(tt.adj), adjacency(tt.adj))
			if !reflect.DeepEqual(canonical(got), canonical(tt.want)) {
				t.Errorf("Decompose() = %v, want %v", canonical(got), canonical(tt.want))
			}
		})
	}
}

func TestDecomposeDeterministic(t *testing.T) {
	adj := map[string][]string{
		"a": {"b"}, "b": {"c", "a"}, "c": {"a"}, "d": {"e"}, "e": {"d"},
	}
	nodes := sortedNodes(adj)

	first := Decompose(nodes, adjacency(adj))
	for i := 0; i < 10; i++ {
		again := Decompose(nodes, adjacency(adj))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced different component order:\n%v\nvs\n%v", i, first, again)
		}
	}
}

func TestIsCyclic(t *testing.T) {
	adj := map[string][]string{"a": {"a"}, "b": {"c"}, "c": {"b"}, "d": nil}
	succs := adjacency(adj)

	if !IsCyclic([]string{"a"}, succs) {
		t.Error("self-loop singleton should be cyclic")
	}
	if !IsCyclic([]string{"b", "c"}, succs) {
		t.Error("two-node component should be cyclic")
	}
	if IsCyclic([]string{"d"}, succs) {
		t.Error("plain singleton should not be cyclic")
	}
	if IsCyclic(nil, succs) {
		t.Error("empty component should not be cyclic")
	}
}

func TestCyclicFilter(t *testing.T) {
	adj := map[string][]string{"a": {"b"}, "b": {"a"}, "c": nil}
	comps := Decompose(sortedNodes(adj), adjacency(adj))
	cyc := Cyclic(comps, adjacency(adj))
	if len(cyc) != 1 || len(cyc[0]) != 2 {
		t.Fatalf("Cyclic() = %v, want one two-node component", cyc)
	}
}

// TestDeepChainCycle folds a very long statement chain into one cycle.
// A recursive traversal would overflow the goroutine stack well before
// this size; the explicit frame stack must not.
func TestDeepChainCycle(t *testing.T) {
	const n = 200000
	adj := make(map[int][]int, n)
	for i := 0; i < n-1; i++ {
		adj[i] = []int{i + 1}
	}
	adj[n-1] = []int{0} // close the cycle

	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}

	comps := Decompose(nodes, func(v int) []int { return adj[v] })
	if len(comps) != 1 {
		t.Fatalf("Decompose() returned %d components, want 1", len(comps))
	}
	if len(comps[0]) != n {
		t.Fatalf("component has %d nodes, want %d", len(comps[0]), n)
	}
}

func ExampleDecompose() {
	adj := map[string][]string{"a": {"b"}, "b": {"a"}, "c": nil}
	comps := Decompose([]string{"a", "b", "c"}, func(n string) []string { return adj[n] })
	for _, comp := range comps {
		sort.Strings(comp)
		fmt.Println(comp)
	}
	// Output:
	// [a b]
	// [c]
}
