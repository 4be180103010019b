package candl

import (
	"strings"
	"testing"
)

func TestParseEdgeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Edge
		ok   bool
	}{
		{
			name: "plain edge",
			line: "S1 -> S2 (ref 0->0, var a->a)",
			want: Edge{
				Source: Node{Stmt: "S1", Ref: 0, Var: "a"},
				Target: Node{Stmt: "S2", Ref: 0, Var: "a"},
			},
			ok: true,
		},
		{
			name: "surrounding noise",
			line: "RAW S12->S3 loop, ref 2->10, var C_out->C_out # carried",
			want: Edge{
				Source: Node{Stmt: "S12", Ref: 2, Var: "C_out"},
				Target: Node{Stmt: "S3", Ref: 10, Var: "C_out"},
			},
			ok: true,
		},
		{
			name: "self edge",
			line: "S2 -> S2 (ref 1->1, var x->x)",
			want: Edge{
				Source: Node{Stmt: "S2", Ref: 1, Var: "x"},
				Target: Node{Stmt: "S2", Ref: 1, Var: "x"},
			},
			ok: true,
		},
		{
			name: "spaces around arrow",
			line: "  S4   ->   S5  blah ref 3->4 blah var tmp->tmp2",
			want: Edge{
				Source: Node{Stmt: "S4", Ref: 3, Var: "tmp"},
				Target: Node{Stmt: "S5", Ref: 4, Var: "tmp"},
			},
			ok: true,
		},
		{name: "comment line", line: "# dependence polyhedra follow"},
		{name: "missing ref", line: "S1 -> S2 var a->a"},
		{name: "missing var", line: "S1 -> S2 ref 0->0"},
		{name: "ref without arrow", line: "S1 -> S2 ref 0, var a->a"},
		{name: "var without target", line: "S1 -> S2 ref 0->0 var a->"},
		{name: "statement without digits", line: "S -> S2 ref 0->0 var a->a"},
		{name: "empty", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEdgeLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseEdgeLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseEdgeLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseEdgesSkipsAndDeduplicates(t *testing.T) {
	input := `# candl output
S1 -> S2 (ref 0->0, var a->a)
noise line
S1 -> S2 (ref 0->0, var a->a)
S2 -> S1 (ref 0->0, var a->a)
S1 -> S2 (ref 0->0, var b->b)
`
	edges, err := ParseEdges(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseEdges() error = %v", err)
	}
	if len(edges) != 3 {
		t.Fatalf("ParseEdges() returned %d edges, want 3", len(edges))
	}

	want := []string{"S1_r0_a->S2_r0_a", "S2_r0_a->S1_r0_a", "S1_r0_b->S2_r0_b"}
	for i, e := range edges {
		got := e.Source.Key() + "->" + e.Target.Key()
		if got != want[i] {
			t.Errorf("edge[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestNodeKey(t *testing.T) {
	n := Node{Stmt: "S3", Ref: 2, Var: "tmp"}
	if got := n.Key(); got != "S3_r2_tmp" {
		t.Errorf("Key() = %q, want %q", got, "S3_r2_tmp")
	}
}
