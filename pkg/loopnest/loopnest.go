// Package loopnest recovers statement nesting metadata directly from a
// C source file. It is the fallback for candl outputs that carry no
// "# Statement information" section: the statements inside the
// "#pragma scop" region are numbered S1..Sn in textual order, matching
// clan's numbering, and each gets its loop depth and the ordered list
// of enclosing loop iterator names.
package loopnest

import (
	"bytes"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/minhpq/depcycle/pkg/candl"
)

const (
	scopBegin = "#pragma scop"
	scopEnd   = "#pragma endscop"
)

// ScanFile parses the C file at path and returns the statement table
// for its scop region. Without scop pragmas the whole file is scanned.
func ScanFile(path string) (*candl.StatementTable, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", path, err)
	}
	return Scan(content)
}

// Scan parses C source text and returns its statement table.
func Scan(content []byte) (*candl.StatementTable, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	tree := parser.Parse(nil, content)
	defer tree.Close()

	w := &walker{
		content: content,
		table:   candl.NewStatementTable(),
	}
	w.regionStart, w.regionEnd = scopRegion(content)
	w.walk(tree.RootNode(), nil)
	return w.table, nil
}

// scopRegion returns the byte range between the scop pragmas, or the
// whole content when the pragmas are absent.
func scopRegion(content []byte) (int, int) {
	start := 0
	end := len(content)
	if idx := bytes.Index(content, []byte(scopBegin)); idx >= 0 {
		start = idx + len(scopBegin)
	}
	if idx := bytes.Index(content, []byte(scopEnd)); idx >= 0 {
		end = idx
	}
	return start, end
}

type walker struct {
	content     []byte
	table       *candl.StatementTable
	regionStart int
	regionEnd   int
	nextStmt    int
}

// walk descends the AST carrying the current iterator stack. Loops push
// their iterator around the body; expression statements inside the
// region become numbered statements at the current depth.
func (w *walker) walk(node *sitter.Node, iters []string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "for_statement":
		name := w.iteratorName(node.ChildByFieldName("initializer"))
		w.walk(loopBody(node), append(iters, name))
		return

	case "while_statement", "do_statement":
		// Non-affine loops have no iterator name; depth still grows.
		w.walk(loopBody(node), append(iters, ""))
		return

	case "expression_statement":
		if w.inRegion(node) {
			w.emit(iters)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i), iters)
	}
}

// emit records one statement at the current nesting. Unnamed loop
// levels (while/do, or a for whose induction variable could not be
// identified) count toward depth but contribute no iterator name.
func (w *walker) emit(iters []string) {
	w.nextStmt++
	named := make([]string, 0, len(iters))
	for _, it := range iters {
		if it != "" {
			named = append(named, it)
		}
	}
	w.table.Add(candl.StatementInfo{
		ID:        fmt.Sprintf("S%d", w.nextStmt),
		Depth:     len(iters),
		Iterators: named,
	})
}

// loopBody returns a loop's body statement. The grammar names the
// field "body"; the last child is the body for grammars that do not.
func loopBody(node *sitter.Node) *sitter.Node {
	if body := node.ChildByFieldName("body"); body != nil {
		return body
	}
	count := int(node.ChildCount())
	if count == 0 {
		return nil
	}
	return node.Child(count - 1)
}

func (w *walker) inRegion(node *sitter.Node) bool {
	start := int(node.StartByte())
	return start >= w.regionStart && start < w.regionEnd
}

// iteratorName extracts the induction variable from a for initializer:
// either "i = 0" or "int i = 0".
func (w *walker) iteratorName(init *sitter.Node) string {
	if init == nil {
		return ""
	}
	switch init.Type() {
	case "assignment_expression":
		if left := init.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			return w.nodeText(left)
		}
	case "comma_expression":
		if left := init.ChildByFieldName("left"); left != nil {
			return w.iteratorName(left)
		}
	case "declaration":
		for i := 0; i < int(init.ChildCount()); i++ {
			child := init.Child(i)
			if child == nil || child.Type() != "init_declarator" {
				continue
			}
			if decl := child.ChildByFieldName("declarator"); decl != nil && decl.Type() == "identifier" {
				return w.nodeText(decl)
			}
		}
	}
	return ""
}

func (w *walker) nodeText(node *sitter.Node) string {
	start := node.StartByte()
	end := node.EndByte()
	if int(end) > len(w.content) {
		return ""
	}
	return string(w.content[start:end])
}
