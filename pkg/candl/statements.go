package candl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// statementHeader introduces the metadata section in candl output.
const statementHeader = "# Statement information"

// ParseStatements scans a candl output stream for the statement
// metadata section and returns the nesting information it describes.
// The section starts at a "# Statement information" header and ends at
// the first blank line or the first line opening a new "#" section.
// An absent section yields an empty table, which is legal: statements
// then resolve to unknown depth on lookup.
func ParseStatements(r io.Reader) (*StatementTable, error) {
	table := NewStatementTable()
	inBlock := false

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if !inBlock {
			if strings.HasPrefix(line, statementHeader) {
				inBlock = true
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			break
		}
		if info, ok := ParseStatementLine(line); ok {
			table.Add(info)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading statement metadata: %w", err)
	}
	return table, nil
}

// ParseStatementLine attempts to extract one statement record from a
// line of the form:
//
//	S1 [depth = 2, iterators = "i,j"]
//
// It reports false for lines that do not match.
func ParseStatementLine(line string) (StatementInfo, bool) {
	sc := newLineScanner(line)
	sc.skipSpaces()

	id, ok := sc.stmtID()
	if !ok {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal("[") {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal("depth") {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal("=") {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	depth, ok := sc.digits()
	if !ok {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal(",") {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal("iterators") {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal("=") {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal(`"`) {
		return StatementInfo{}, false
	}
	csv, ok := sc.until('"')
	if !ok {
		return StatementInfo{}, false
	}
	sc.skipSpaces()
	if !sc.literal("]") {
		return StatementInfo{}, false
	}

	return StatementInfo{ID: id, Depth: depth, Iterators: splitIterators(csv)}, true
}

// splitIterators splits the quoted csv list into trimmed iterator
// names. An empty list (depth 0 statements) yields nil.
func splitIterators(csv string) []string {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	iters := make([]string, 0, len(parts))
	for _, p := range parts {
		iters = append(iters, strings.TrimSpace(p))
	}
	return iters
}
