// Package depgraph builds per-variable directed dependence graphs from
// parsed candl edges. Each variable gets its own graph whose nodes are
// (statement, reference, variable) triples; edges never cross variables.
package depgraph

import (
	"sort"

	"github.com/minhpq/depcycle/pkg/candl"
)

// Graph is a directed graph over the references of a single variable.
type Graph struct {
	Var string

	succs map[candl.Node][]candl.Node
	edges map[candl.Edge]struct{}
}

// NewGraph returns an empty graph for the given variable.
func NewGraph(variable string) *Graph {
	return &Graph{
		Var:   variable,
		succs: make(map[candl.Node][]candl.Node),
		edges: make(map[candl.Edge]struct{}),
	}
}

// AddNode registers a node with no successors if it is not yet present.
// Every endpoint of every edge must be a key of the graph so traversal
// never misses isolated nodes.
func (g *Graph) AddNode(n candl.Node) {
	if _, ok := g.succs[n]; !ok {
		g.succs[n] = nil
	}
}

// AddEdge inserts a directed edge, registering both endpoints. At most
// one edge exists between any ordered node pair.
func (g *Graph) AddEdge(src, tgt candl.Node) {
	g.AddNode(src)
	g.AddNode(tgt)
	e := candl.Edge{Source: src, Target: tgt}
	if _, dup := g.edges[e]; dup {
		return
	}
	g.edges[e] = struct{}{}
	g.succs[src] = append(g.succs[src], tgt)
}

// Nodes returns all nodes sorted by key. This is the canonical node
// order for SCC traversal and matrix layout.
func (g *Graph) Nodes() []candl.Node {
	nodes := make([]candl.Node, 0, len(g.succs))
	for n := range g.succs {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Key() < nodes[j].Key()
	})
	return nodes
}

// Succs returns the direct successors of n in insertion order.
func (g *Graph) Succs(n candl.Node) []candl.Node {
	return g.succs[n]
}

// HasEdge reports whether the ordered pair (src, tgt) is an edge.
func (g *Graph) HasEdge(src, tgt candl.Node) bool {
	_, ok := g.edges[candl.Edge{Source: src, Target: tgt}]
	return ok
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int {
	return len(g.succs)
}

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// GraphSet holds one graph per variable, in the order the variables
// first appeared in the edge stream. That order is what the reporter
// uses for section ordering, so it must be stable for a given input.
type GraphSet struct {
	byVar map[string]*Graph
	order []string
}

// Build groups edges by variable and constructs one graph per variable.
func Build(edges []candl.Edge) *GraphSet {
	gs := &GraphSet{byVar: make(map[string]*Graph)}
	for _, e := range edges {
		g, ok := gs.byVar[e.Source.Var]
		if !ok {
			g = NewGraph(e.Source.Var)
			gs.byVar[e.Source.Var] = g
			gs.order = append(gs.order, e.Source.Var)
		}
		g.AddEdge(e.Source, e.Target)
	}
	return gs
}

// Vars returns the variable names in first-seen order.
func (gs *GraphSet) Vars() []string {
	return gs.order
}

// Graph returns the graph for a variable, or nil if the variable never
// appeared in the edge stream.
func (gs *GraphSet) Graph(variable string) *Graph {
	return gs.byVar[variable]
}
