package graph

import (
	"github.com/matzehuels/exprflow/pkg/depgraph"
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/layout"
)

// FormatVersion is the current document format version.
const FormatVersion = 1

// Graph is the serialization format of a dependency graph: the table in
// discovery order plus the final results.
type Graph struct {
	Nodes  []Node   `json:"nodes"`
	Finals []string `json:"finals"`
}

// Node is one table entry.
type Node struct {
	Key  string      `json:"key"`
	Deps []string    `json:"deps,omitempty"`
	Role layout.Role `json:"role"`
}

// FromDepGraph converts a built graph to its serialization format.
func FromDepGraph(g *depgraph.Graph) Graph {
	out := Graph{
		Nodes:  make([]Node, 0, g.Table.Len()),
		Finals: g.Finals.Keys(),
	}
	if out.Finals == nil {
		out.Finals = []string{}
	}
	for _, c := range g.Table.All() {
		out.Nodes = append(out.Nodes, Node{
			Key:  c.Key,
			Deps: c.Deps,
			Role: layout.Classify(g, c.Key),
		})
	}
	return out
}

// ToDepGraph rebuilds a dependency graph. Keys must be unique, every
// dependency must refer to an earlier node, and every final result must be
// a node.
func ToDepGraph(g Graph) (*depgraph.Graph, error) {
	seen := make(map[string]bool, len(g.Nodes))
	comps := make([]depgraph.Computation, 0, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.Key == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "node %d: empty key", i)
		}
		if seen[n.Key] {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "node %d: duplicate key %q", i, n.Key)
		}
		for _, d := range n.Deps {
			if !seen[d] {
				return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "node %q: dependency %q does not precede it", n.Key, d)
			}
		}
		seen[n.Key] = true
		comps = append(comps, depgraph.Computation{Key: n.Key, Deps: n.Deps})
	}
	for _, f := range g.Finals {
		if !seen[f] {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "final result %q is not a node", f)
		}
	}
	return depgraph.NewGraph(comps, depgraph.NewFinals(g.Finals...)), nil
}

// Document bundles a graph with its layout, as written by the json output
// format.
type Document struct {
	Version  int           `json:"version"`
	Language string        `json:"language,omitempty"`
	Graph    Graph         `json:"graph"`
	Layout   layout.Layout `json:"layout"`
}

// NewDocument creates a document for g laid out as l.
func NewDocument(language string, g *depgraph.Graph, l layout.Layout) Document {
	return Document{
		Version:  FormatVersion,
		Language: language,
		Graph:    FromDepGraph(g),
		Layout:   l,
	}
}

// Validate checks that the layout places exactly the graph's nodes.
func (d Document) Validate() error {
	if d.Version != FormatVersion {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "unsupported document version %d", d.Version)
	}
	if len(d.Layout.Nodes) != len(d.Graph.Nodes) {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"layout has %d nodes, graph has %d", len(d.Layout.Nodes), len(d.Graph.Nodes))
	}
	for i, n := range d.Layout.Nodes {
		if n.Key != d.Graph.Nodes[i].Key {
			return apperrors.New(apperrors.ErrCodeInvalidInput,
				"layout node %d is %q, graph node is %q", i, n.Key, d.Graph.Nodes[i].Key)
		}
	}
	return nil
}
