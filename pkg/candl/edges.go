package candl

import (
	"bufio"
	"fmt"
	"io"
)

// ParseEdges scans a candl output stream line by line and returns the
// dependence edges it describes, in input order. A line matches when it
// contains a statement pair "S<n> -> S<m>", followed by a reference
// pair "ref <i>-><j>", followed by a variable pair "var <name>-><name>".
// Lines that do not match are skipped; candl interleaves edges with
// free-form structural text. Duplicate (source, target, variable)
// triples are emitted once.
func ParseEdges(r io.Reader) ([]Edge, error) {
	var edges []Edge
	seen := make(map[Edge]struct{})

	s := bufio.NewScanner(r)
	for s.Scan() {
		edge, ok := ParseEdgeLine(s.Text())
		if !ok {
			continue
		}
		if _, dup := seen[edge]; dup {
			continue
		}
		seen[edge] = struct{}{}
		edges = append(edges, edge)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading dependence stream: %w", err)
	}
	return edges, nil
}

// ParseEdgeLine attempts to extract one dependence edge from a single
// line. It reports false for lines that do not match the edge grammar.
func ParseEdgeLine(line string) (Edge, bool) {
	sc := newLineScanner(line)

	srcStmt, tgtStmt, ok := scanStmtPair(sc)
	if !ok {
		return Edge{}, false
	}

	if !sc.seekWord("ref") {
		return Edge{}, false
	}
	sc.skipSpaces()
	srcRef, ok := sc.digits()
	if !ok || !sc.literal("->") {
		return Edge{}, false
	}
	tgtRef, ok := sc.digits()
	if !ok {
		return Edge{}, false
	}

	if !sc.seekWord("var") {
		return Edge{}, false
	}
	sc.skipSpaces()
	varName, ok := sc.ident()
	if !ok || !sc.literal("->") {
		return Edge{}, false
	}
	if _, ok := sc.ident(); !ok {
		return Edge{}, false
	}

	return Edge{
		Source: Node{Stmt: srcStmt, Ref: srcRef, Var: varName},
		Target: Node{Stmt: tgtStmt, Ref: tgtRef, Var: varName},
	}, true
}

// scanStmtPair finds the first "S<n> -> S<m>" pair on the line and
// leaves the cursor just past it.
func scanStmtPair(sc *lineScanner) (src, tgt string, ok bool) {
	for !sc.eof() {
		if sc.s[sc.pos] != 'S' {
			sc.pos++
			continue
		}
		mark := sc.pos
		if src, tgt, ok = tryStmtPair(sc); ok {
			return src, tgt, true
		}
		sc.pos = mark + 1
	}
	return "", "", false
}

func tryStmtPair(sc *lineScanner) (src, tgt string, ok bool) {
	src, ok = sc.stmtID()
	if !ok {
		return "", "", false
	}
	sc.skipSpaces()
	if !sc.literal("->") {
		return "", "", false
	}
	sc.skipSpaces()
	tgt, ok = sc.stmtID()
	if !ok {
		return "", "", false
	}
	return src, tgt, true
}
