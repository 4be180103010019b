// Package report renders cycle matrices and component listings as
// aligned text tables. It is purely presentational: nothing here may
// alter matrix semantics.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/minhpq/depcycle/pkg/candl"
	"github.com/minhpq/depcycle/pkg/matrix"
)

// DefaultCellWidth is the column width used when no width is configured.
const DefaultCellWidth = 10

// Renderer writes analysis tables to an output stream.
type Renderer struct {
	w         io.Writer
	cellWidth int
}

// NewRenderer returns a Renderer writing to w. A non-positive width
// falls back to DefaultCellWidth.
func NewRenderer(w io.Writer, cellWidth int) *Renderer {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	return &Renderer{w: w, cellWidth: cellWidth}
}

// Matrix renders one variable's cycle matrix as a labeled section: a
// header row of node keys followed by one row per node, every cell
// right-aligned to the configured width.
func (r *Renderer) Matrix(m *matrix.Matrix) error {
	labelWidth := r.labelWidth(m.Nodes)

	if _, err := fmt.Fprintf(r.w, "\n--- Variable '%s' ---\n", m.Var); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth))
	for _, n := range m.Nodes {
		fmt.Fprintf(&sb, " %*s", r.cellWidth, n.Key())
	}
	sb.WriteByte('\n')

	for i, n := range m.Nodes {
		fmt.Fprintf(&sb, "%*s", labelWidth, n.Key())
		for j := range m.Nodes {
			fmt.Fprintf(&sb, " %*s", r.cellWidth, m.Cells[i][j].Label())
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// Components renders the cyclic components of one variable's graph,
// one line per component with nodes in key order as supplied.
func (r *Renderer) Components(variable string, comps [][]candl.Node) error {
	if _, err := fmt.Fprintf(r.w, "\n--- Variable '%s' ---\n", variable); err != nil {
		return err
	}
	if len(comps) == 0 {
		_, err := fmt.Fprintln(r.w, "no cycles")
		return err
	}
	for i, comp := range comps {
		keys := make([]string, len(comp))
		for j, n := range comp {
			keys[j] = n.Key()
		}
		if _, err := fmt.Fprintf(r.w, "cycle %d: %s\n", i+1, strings.Join(keys, " ")); err != nil {
			return err
		}
	}
	return nil
}

// labelWidth sizes the row-label column to the widest node key.
func (r *Renderer) labelWidth(nodes []candl.Node) int {
	width := 6
	for _, n := range nodes {
		if len(n.Key()) > width {
			width = len(n.Key())
		}
	}
	return width
}
