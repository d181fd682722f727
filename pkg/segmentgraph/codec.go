package segmentgraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/jbeda/geom"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a graph to JSON bytes. Edges are emitted once
// each in sorted order, so equal graphs marshal identically and the
// output can serve as a content hash input.
func MarshalGraph(gr *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(gr, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to an io.Writer.
func WriteGraph(gr *Graph, w io.Writer) error {
	return writeGraphTo(gr, w)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	var data graphJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	adj := make(map[string][]Connection)
	for _, e := range data.Edges {
		if e.A == "" || e.B == "" {
			return nil, fmt.Errorf("edge with empty endpoint: %+v", e)
		}
		at := geom.Coord{X: e.At[0], Y: e.At[1]}
		adj[e.A] = append(adj[e.A], Connection{To: e.B, At: at})
		adj[e.B] = append(adj[e.B], Connection{To: e.A, At: at})
	}
	for id := range adj {
		slices.SortFunc(adj[id], func(a, b Connection) int {
			return compareID(a.To, b.To)
		})
	}
	return &Graph{adjacency: adj, edges: len(data.Edges)}, nil
}

// =============================================================================
// Wire Format
// =============================================================================

type graphJSON struct {
	Edges []edgeJSON `json:"edges"`
}

type edgeJSON struct {
	A  string     `json:"a"`
	B  string     `json:"b"`
	At [2]float64 `json:"at"`
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(gr *Graph, w io.Writer) error {
	out := graphJSON{Edges: []edgeJSON{}}
	for _, id := range gr.IDs() {
		for _, c := range gr.Neighbors(id) {
			if c.To < id {
				continue
			}
			out.Edges = append(out.Edges, edgeJSON{
				A:  id,
				B:  c.To,
				At: [2]float64{c.At.X, c.At.Y},
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
