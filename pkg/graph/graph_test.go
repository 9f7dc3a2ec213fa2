package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/layout"
)

func sampleGraph() *depgraph.Graph {
	return depgraph.NewGraph([]depgraph.Computation{
		{Key: "x"},
		{Key: "x + x", Deps: []string{"x", "x"}},
		{Key: "y", Deps: []string{"x + x"}},
	}, depgraph.NewFinals("y"))
}

func TestFromDepGraph(t *testing.T) {
	g := FromDepGraph(sampleGraph())

	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(g.Nodes))
	}
	want := []struct {
		key  string
		role layout.Role
		deps int
	}{
		{"x", layout.Terminal, 0},
		{"x + x", layout.Intermediate, 2},
		{"y", layout.Final, 1},
	}
	for i, w := range want {
		n := g.Nodes[i]
		if n.Key != w.key || n.Role != w.role || len(n.Deps) != w.deps {
			t.Errorf("node %d = %+v, want key %q role %v deps %d", i, n, w.key, w.role, w.deps)
		}
	}
	if len(g.Finals) != 1 || g.Finals[0] != "y" {
		t.Errorf("finals = %v, want [y]", g.Finals)
	}
}

func TestFromDepGraphEmptyFinals(t *testing.T) {
	g := FromDepGraph(depgraph.NewGraph(nil, nil))
	if g.Finals == nil {
		t.Error("finals should encode as [] not null")
	}
}

func TestWriteReadGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraph(sampleGraph(), &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	if !strings.Contains(buf.String(), `"role": "terminal"`) {
		t.Errorf("roles not encoded by name:\n%s", buf.String())
	}

	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if keys := got.Table.Keys(); strings.Join(keys, "|") != "x|x + x|y" {
		t.Errorf("keys = %v", keys)
	}
	if !got.Finals.Contains("y") {
		t.Error("y should be final")
	}
	if got.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got.EdgeCount())
	}
}

func TestMarshalGraph(t *testing.T) {
	data, err := MarshalGraph(sampleGraph())
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("{\n")) {
		t.Errorf("output is not indented JSON: %q", data[:min(len(data), 20)])
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"malformed", `{"nodes": [`, "decode graph"},
		{"empty key", `{"nodes": [{"key": "", "role": "terminal"}], "finals": []}`, "empty key"},
		{"duplicate key", `{"nodes": [{"key": "a", "role": "terminal"}, {"key": "a", "role": "terminal"}], "finals": []}`, "duplicate key"},
		{"forward dependency", `{"nodes": [{"key": "b", "deps": ["a"], "role": "final"}, {"key": "a", "role": "terminal"}], "finals": ["b"]}`, "does not precede"},
		{"unknown final", `{"nodes": [{"key": "a", "role": "terminal"}], "finals": ["z"]}`, "not a node"},
		{"unknown role", `{"nodes": [{"key": "a", "role": "leaf"}], "finals": []}`, "unknown role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want INVALID_INPUT", apperrors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	g := sampleGraph()
	doc := NewDocument("go", g, layout.Compute(g, layout.DefaultOptions()))

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}
	got, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}

	if got.Version != FormatVersion || got.Language != "go" {
		t.Errorf("header = %d/%q", got.Version, got.Language)
	}
	if len(got.Layout.Nodes) != 3 || len(got.Layout.Edges) != 2 {
		t.Errorf("layout = %d nodes, %d edges", len(got.Layout.Nodes), len(got.Layout.Edges))
	}
	if got.Layout.Height != doc.Layout.Height {
		t.Errorf("height = %v, want %v", got.Layout.Height, doc.Layout.Height)
	}
	if n, _ := got.Layout.Node("y"); n.Role != layout.Final {
		t.Errorf("y role = %v, want final", n.Role)
	}
}

func TestDocumentValidate(t *testing.T) {
	g := sampleGraph()
	valid := NewDocument("go", g, layout.Compute(g, layout.DefaultOptions()))

	tests := []struct {
		name   string
		mutate func(*Document)
		want   string
	}{
		{"version", func(d *Document) { d.Version = 99 }, "version"},
		{"missing layout node", func(d *Document) { d.Layout.Nodes = d.Layout.Nodes[:2] }, "layout has 2 nodes"},
		{"reordered layout", func(d *Document) {
			d.Layout.Nodes[0], d.Layout.Nodes[1] = d.Layout.Nodes[1], d.Layout.Nodes[0]
		}, "layout node 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			d.Layout.Nodes = append([]layout.Node(nil), valid.Layout.Nodes...)
			tt.mutate(&d)
			err := d.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("valid document: %v", err)
	}
}

func TestUnmarshalDocumentMalformed(t *testing.T) {
	if _, err := UnmarshalDocument([]byte("not json")); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := layout.Compute(sampleGraph(), layout.DefaultOptions())
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if len(got.Nodes) != len(l.Nodes) || len(got.Edges) != len(l.Edges) {
		t.Fatalf("got %d nodes %d edges, want %d %d", len(got.Nodes), len(got.Edges), len(l.Nodes), len(l.Edges))
	}
	for i := range l.Edges {
		if got.Edges[i] != l.Edges[i] {
			t.Errorf("edge %d = %+v, want %+v", i, got.Edges[i], l.Edges[i])
		}
	}
	if _, err := UnmarshalLayout([]byte("[")); err == nil {
		t.Error("expected error for malformed layout")
	}
}
