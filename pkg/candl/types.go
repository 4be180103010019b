// Package candl parses the textual dependence output of the candl
// polyhedral dependence analyzer. It extracts dependence edges between
// statement references and the per-statement loop nesting metadata that
// candl emits in its "# Statement information" section.
package candl

import "fmt"

// UnknownDepth marks a statement whose nesting depth was not present in
// the metadata section.
const UnknownDepth = -1

// Node identifies one textual occurrence of a variable inside a statement.
type Node struct {
	Stmt string `json:"stmt"` // statement id, e.g. "S1"
	Ref  int    `json:"ref"`  // reference index within the statement
	Var  string `json:"var"`  // variable name
}

// Key returns the canonical display key for the node, e.g. "S1_r0_a".
// All node ordering in the pipeline is by this key.
func (n Node) Key() string {
	return fmt.Sprintf("%s_r%d_%s", n.Stmt, n.Ref, n.Var)
}

// Edge is a directed dependence between two references of the same variable.
type Edge struct {
	Source Node `json:"source"`
	Target Node `json:"target"`
}

// StatementInfo describes the loop nesting of one statement.
type StatementInfo struct {
	ID        string   `json:"id"`
	Depth     int      `json:"depth"`     // UnknownDepth if not described
	Iterators []string `json:"iterators"` // outermost to innermost
}

// StatementTable maps statement ids to their nesting metadata.
type StatementTable struct {
	infos map[string]StatementInfo
	order []string // ids in the order they were parsed
}

// NewStatementTable returns an empty table.
func NewStatementTable() *StatementTable {
	return &StatementTable{infos: make(map[string]StatementInfo)}
}

// Add records metadata for a statement, replacing any earlier record.
func (t *StatementTable) Add(info StatementInfo) {
	if _, seen := t.infos[info.ID]; !seen {
		t.order = append(t.order, info.ID)
	}
	t.infos[info.ID] = info
}

// Lookup returns the metadata for a statement. Statements absent from
// the metadata section resolve to an unknown-depth record with no
// iterators; that is not an error.
func (t *StatementTable) Lookup(id string) StatementInfo {
	if info, ok := t.infos[id]; ok {
		return info
	}
	return StatementInfo{ID: id, Depth: UnknownDepth}
}

// Len returns the number of statements described in the table.
func (t *StatementTable) Len() int {
	return len(t.infos)
}

// Statements returns the described statements in parse order.
func (t *StatementTable) Statements() []StatementInfo {
	infos := make([]StatementInfo, 0, len(t.order))
	for _, id := range t.order {
		infos = append(infos, t.infos[id])
	}
	return infos
}
