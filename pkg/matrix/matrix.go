// Package matrix combines a variable's dependence graph, its SCC
// decomposition and the statement nesting metadata into an annotated
// cycle matrix. A cell tells a loop-transformation pass whether a pair
// of references is tied into a cycle and, if so, at which loop levels
// the cycle must be respected.
package matrix

import (
	"sort"
	"strings"

	"github.com/minhpq/depcycle/pkg/candl"
	"github.com/minhpq/depcycle/pkg/depgraph"
	"github.com/minhpq/depcycle/pkg/scc"
)

// CellKind classifies a matrix cell.
type CellKind int

const (
	// NotApplicable marks the diagonal, pairs outside any common
	// cyclic component, and pairs of statements at equal nesting
	// depth. Same-depth statements cannot nest one inside the other,
	// so the equal-depth rule overrides cycle membership.
	NotApplicable CellKind = iota

	// NoCommonIterator marks a cyclic pair whose statements share no
	// enclosing loop iterator. Such a cycle closes entirely outside
	// the common loops and may still be parallelized at those levels.
	NoCommonIterator

	// CommonIterators marks a cyclic pair with shared enclosing
	// iterators, listed sorted in Cell.Iterators.
	CommonIterators
)

// Cell is one entry of the cycle matrix.
type Cell struct {
	Kind      CellKind `json:"kind"`
	Iterators []string `json:"iterators,omitempty"` // sorted, only for CommonIterators
}

// Label renders the cell's display token: "." for not applicable, "-"
// for a cycle with no common iterator, and the comma-joined iterator
// list otherwise.
func (c Cell) Label() string {
	switch c.Kind {
	case NoCommonIterator:
		return "-"
	case CommonIterators:
		return strings.Join(c.Iterators, ",")
	default:
		return "."
	}
}

// Matrix is the square annotated matrix over a graph's sorted node list.
type Matrix struct {
	Var   string       `json:"var"`
	Nodes []candl.Node `json:"nodes"`
	Cells [][]Cell     `json:"cells"` // Cells[i][j] relates Nodes[i] to Nodes[j]
}

// Build produces the cycle matrix for one variable's graph. comps must
// be the SCC decomposition of g. Statements absent from the metadata
// table carry unknown depth; two unknown depths compare equal (and the
// pair is suppressed), while unknown against known counts as unequal
// and resolves through the empty iterator list.
func Build(g *depgraph.Graph, comps [][]candl.Node, stmts *candl.StatementTable) *Matrix {
	nodes := g.Nodes()
	m := &Matrix{Var: g.Var, Nodes: nodes, Cells: newCells(len(nodes))}

	pos := make(map[candl.Node]int, len(nodes))
	for i, n := range nodes {
		pos[n] = i
	}

	for _, comp := range scc.Cyclic(comps, g.Succs) {
		for _, u := range comp {
			for _, v := range comp {
				if u == v {
					continue
				}
				m.Cells[pos[u]][pos[v]] = pairCell(u, v, stmts)
			}
		}
	}
	return m
}

// pairCell derives the cell for an ordered cyclic pair.
func pairCell(u, v candl.Node, stmts *candl.StatementTable) Cell {
	su := stmts.Lookup(u.Stmt)
	sv := stmts.Lookup(v.Stmt)
	if su.Depth == sv.Depth {
		return Cell{Kind: NotApplicable}
	}
	common := commonIterators(su.Iterators, sv.Iterators)
	if len(common) == 0 {
		return Cell{Kind: NoCommonIterator}
	}
	return Cell{Kind: CommonIterators, Iterators: common}
}

// commonIterators returns the sorted intersection of two iterator lists.
func commonIterators(a, b []string) []string {
	inA := make(map[string]struct{}, len(a))
	for _, it := range a {
		inA[it] = struct{}{}
	}
	var common []string
	seen := make(map[string]struct{})
	for _, it := range b {
		if _, ok := inA[it]; !ok {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		common = append(common, it)
	}
	sort.Strings(common)
	return common
}

func newCells(n int) [][]Cell {
	cells := make([][]Cell, n)
	for i := range cells {
		cells[i] = make([]Cell, n)
	}
	return cells
}
