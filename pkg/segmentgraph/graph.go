// Package segmentgraph builds the connectivity graph of a segmented
// display: which segments touch which, and where. Two segments are
// connected when any pair of their endpoints coincides within a small
// tolerance, and the connection point is the midpoint of that pair.
//
// The graph drives both the transition planner (anchored growth along
// connections) and the stroke orderer (pen travel between strokes).
package segmentgraph

import (
	"maps"
	"slices"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
	"github.com/glyphsign/glyphsign/pkg/grid"
)

// DefaultConnectionThreshold is the maximum endpoint distance at which
// two segments count as touching. Layouts place joints at identical
// coordinates, so the tolerance only has to absorb float rounding.
const DefaultConnectionThreshold = 0.001

// Connection is one edge of the graph as seen from a particular
// segment: the neighbor's ID and the world-space point where the two
// segments meet.
type Connection struct {
	To string
	At geom.Coord
}

// Options configures graph construction.
type Options struct {
	// ConnectionThreshold overrides DefaultConnectionThreshold when
	// positive. Distances up to and including the threshold connect.
	ConnectionThreshold float64
}

func (o Options) threshold() float64 {
	if o.ConnectionThreshold > 0 {
		return o.ConnectionThreshold
	}
	return DefaultConnectionThreshold
}

// Graph is the undirected connectivity graph over a grid's segments.
// Every connection is stored from both endpoints, so Neighbors(a)
// containing b implies Neighbors(b) contains a, always.
//
// A Graph is immutable after Build and safe for concurrent reads.
type Graph struct {
	adjacency map[string][]Connection
	edges     int
}

// Build constructs the connectivity graph for a grid.
//
// Candidate pairs are limited to segments on the same tile or one of
// its four orthogonal neighbors; joints never span farther than that.
// For each candidate pair the first endpoint pair within the threshold
// wins and contributes the connection point.
func Build(g *grid.Grid, opts Options) *Graph {
	threshold := opts.threshold()
	adj := make(map[string][]Connection, g.Len())

	for _, id := range g.SegmentIDs() {
		seg, _ := g.Segment(id)
		for _, candidate := range candidateIDs(g, seg.Tile) {
			if candidate <= id {
				// Each unordered pair is examined once.
				continue
			}
			other, _ := g.Segment(candidate)
			at, ok := touchPoint(seg, other, threshold)
			if !ok {
				continue
			}
			adj[id] = append(adj[id], Connection{To: candidate, At: at})
			adj[candidate] = append(adj[candidate], Connection{To: id, At: at})
		}
	}

	edges := 0
	for id := range adj {
		slices.SortFunc(adj[id], func(a, b Connection) int {
			return compareID(a.To, b.To)
		})
		edges += len(adj[id])
	}
	return &Graph{adjacency: adj, edges: edges / 2}
}

// candidateIDs returns the segments that could plausibly touch a
// segment on the given tile: everything on the tile itself plus the
// four orthogonal neighbor tiles.
func candidateIDs(g *grid.Grid, tile grid.TileCoord) []string {
	ids := g.SegmentsInTile(tile)
	for _, n := range tile.Neighbors4() {
		ids = append(ids, g.SegmentsInTile(n)...)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// touchPoint finds the first endpoint pair of the two segments within
// the threshold and returns its midpoint. Non-finite endpoints from
// degenerate hand-authored primitives never connect.
func touchPoint(a, b *grid.Segment, threshold float64) (geom.Coord, bool) {
	for _, pa := range geometry.EndpointsOf(a.Primitives) {
		if !geometry.Finite(pa) {
			continue
		}
		for _, pb := range geometry.EndpointsOf(b.Primitives) {
			if !geometry.Finite(pb) {
				continue
			}
			if geometry.AlmostEqual(pa, pb, threshold) {
				return geometry.Midpoint(pa, pb), true
			}
		}
	}
	return geom.Coord{}, false
}

func connected(adj map[string][]Connection, a, b string) bool {
	for _, c := range adj[a] {
		if c.To == b {
			return true
		}
	}
	return false
}

func compareID(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Neighbors returns the connections of a segment, sorted by neighbor
// ID. Returns nil for isolated or unknown segments; both are routine.
func (gr *Graph) Neighbors(id string) []Connection {
	return gr.adjacency[id]
}

// NeighborIDs returns just the neighbor IDs of a segment, sorted.
func (gr *Graph) NeighborIDs(id string) []string {
	conns := gr.adjacency[id]
	ids := make([]string, len(conns))
	for i, c := range conns {
		ids[i] = c.To
	}
	return ids
}

// Connected reports whether two segments share a connection.
func (gr *Graph) Connected(a, b string) bool {
	return connected(gr.adjacency, a, b)
}

// ConnectionPoint returns the meeting point of two connected segments
// and true, or the zero coordinate and false when they do not touch.
func (gr *Graph) ConnectionPoint(a, b string) (geom.Coord, bool) {
	for _, c := range gr.adjacency[a] {
		if c.To == b {
			return c.At, true
		}
	}
	return geom.Coord{}, false
}

// IDs returns every segment that has at least one connection, sorted.
func (gr *Graph) IDs() []string {
	return slices.Sorted(maps.Keys(gr.adjacency))
}

// EdgeCount returns the number of distinct connections in the graph.
func (gr *Graph) EdgeCount() int { return gr.edges }

// Degree returns the number of connections of a segment.
// Returns 0 for isolated or unknown segments.
func (gr *Graph) Degree(id string) int { return len(gr.adjacency[id]) }
