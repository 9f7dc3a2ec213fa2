package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/exprflow/pkg/depgraph"
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/layout"
)

// MarshalGraph converts a dependency graph to JSON bytes. Nodes keep
// discovery order.
func MarshalGraph(g *depgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a dependency graph as indented JSON.
func WriteGraph(g *depgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDepGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph and rebuilds the dependency graph.
func ReadGraph(r io.Reader) (*depgraph.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode graph")
	}
	return ToDepGraph(data)
}

// MarshalDocument serializes a document to indented JSON.
func MarshalDocument(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalDocument decodes and validates a document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode document")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	if _, err := ToDepGraph(d.Graph); err != nil {
		return Document{}, err
	}
	return d, nil
}

// MarshalLayout serializes a layout on its own, without the graph.
func MarshalLayout(l layout.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return data, nil
}

// UnmarshalLayout decodes a layout written by [MarshalLayout].
func UnmarshalLayout(data []byte) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode layout")
	}
	return l, nil
}
