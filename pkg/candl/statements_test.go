package candl

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseStatementLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want StatementInfo
		ok   bool
	}{
		{
			name: "two iterators",
			line: `S1 [depth = 2, iterators = "i,j"]`,
			want: StatementInfo{ID: "S1", Depth: 2, Iterators: []string{"i", "j"}},
			ok:   true,
		},
		{
			name: "spaced fields",
			line: `S12  [ depth = 3 , iterators = " i , j , k " ]`,
			want: StatementInfo{ID: "S12", Depth: 3, Iterators: []string{"i", "j", "k"}},
			ok:   true,
		},
		{
			name: "depth zero empty list",
			line: `S2 [depth = 0, iterators = ""]`,
			want: StatementInfo{ID: "S2", Depth: 0},
			ok:   true,
		},
		{name: "missing iterators", line: `S1 [depth = 2]`},
		{name: "unterminated quote", line: `S1 [depth = 2, iterators = "i,j]`},
		{name: "not a statement", line: `loop [depth = 2, iterators = "i"]`},
		{name: "edge line", line: `S1 -> S2 (ref 0->0, var a->a)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStatementLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseStatementLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStatementLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseStatementsSection(t *testing.T) {
	input := `edges and other text
# Statement information
S1 [depth = 1, iterators = "i"]
not a statement record
S2 [depth = 2, iterators = "i,j"]

S3 [depth = 3, iterators = "i,j,k"]
`
	table, err := ParseStatements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseStatements() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("table.Len() = %d, want 2 (S3 is after the blank line)", table.Len())
	}
	if got := table.Lookup("S2"); got.Depth != 2 || !reflect.DeepEqual(got.Iterators, []string{"i", "j"}) {
		t.Errorf("Lookup(S2) = %+v", got)
	}
}

func TestParseStatementsStopsAtNewSection(t *testing.T) {
	input := `# Statement information
S1 [depth = 1, iterators = "i"]
# Dependence polyhedra
S2 [depth = 2, iterators = "i,j"]
`
	table, err := ParseStatements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseStatements() error = %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("table.Len() = %d, want 1", table.Len())
	}
}

func TestParseStatementsNoSection(t *testing.T) {
	table, err := ParseStatements(strings.NewReader("S1 -> S2 (ref 0->0, var a->a)\n"))
	if err != nil {
		t.Fatalf("ParseStatements() error = %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("table.Len() = %d, want 0", table.Len())
	}
}

func TestLookupUnknownStatement(t *testing.T) {
	table := NewStatementTable()
	info := table.Lookup("S99")
	if info.Depth != UnknownDepth {
		t.Errorf("Lookup(S99).Depth = %d, want UnknownDepth", info.Depth)
	}
	if len(info.Iterators) != 0 {
		t.Errorf("Lookup(S99).Iterators = %v, want empty", info.Iterators)
	}
}
