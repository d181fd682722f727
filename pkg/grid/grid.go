// Package grid models a tiled segmented display layout: the repeating
// tiles, the segments each tile contains, and the named glyphs drawn by
// activating segment sets.
//
// A Grid is a read-only snapshot once built. The segment graph and the
// transition planners consume it but never mutate it, so a single Grid
// may be shared freely between display instances.
package grid

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
)

var (
	// ErrInvalidSegmentID is returned by [Grid.AddSegment] when the
	// segment ID is empty. All segments must have non-empty identifiers.
	ErrInvalidSegmentID = errors.New("segment ID must not be empty")

	// ErrDuplicateSegmentID is returned by [Grid.AddSegment] when a
	// segment with the same ID already exists in the grid.
	ErrDuplicateSegmentID = errors.New("duplicate segment ID")

	// ErrNoPrimitives is returned by [Grid.AddSegment] when the segment
	// has no primitives. A segment with no geometry cannot be lit.
	ErrNoPrimitives = errors.New("segment has no primitives")
)

// TileCoord addresses one tile of the display grid.
// Col grows rightward, Row grows downward.
type TileCoord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Neighbors4 returns the four orthogonal neighbor coordinates
// (right, left, down, up). Diagonal tiles never share a drawn edge,
// so they are not candidates for segment connectivity.
func (t TileCoord) Neighbors4() [4]TileCoord {
	return [4]TileCoord{
		{Col: t.Col + 1, Row: t.Row},
		{Col: t.Col - 1, Row: t.Row},
		{Col: t.Col, Row: t.Row + 1},
		{Col: t.Col, Row: t.Row - 1},
	}
}

// Segment is one independently switchable piece of the display:
// a shape on a specific tile, with its geometry already transformed
// into the shared world coordinate space.
type Segment struct {
	ID         string
	Tile       TileCoord
	Primitives []geometry.Primitive
	Kind       geometry.Kind
}

// NewSegment creates a segment and classifies its dominant shape.
func NewSegment(id string, tile TileCoord, prims []geometry.Primitive) Segment {
	return Segment{
		ID:         id,
		Tile:       tile,
		Primitives: prims,
		Kind:       geometry.ClassifyAll(prims),
	}
}

// StartPoint returns the natural pen-entry position for the segment.
func (s *Segment) StartPoint() geom.Coord {
	return geometry.StartPoint(s.Primitives, s.Kind)
}

// Grid is a complete display layout: dimensions in tiles, the world
// size of one tile, and every segment keyed by ID.
//
// The zero value is not usable - use New. Grid is safe for concurrent
// reads once fully built; it is not safe to add segments concurrently.
type Grid struct {
	cols, rows     int
	tileW, tileH   float64
	segments       map[string]*Segment
	segmentsByTile map[TileCoord][]string
}

// New creates an empty grid with the given dimensions in tiles and the
// world-space size of a single tile.
func New(cols, rows int, tileW, tileH float64) *Grid {
	return &Grid{
		cols:           cols,
		rows:           rows,
		tileW:          tileW,
		tileH:          tileH,
		segments:       make(map[string]*Segment),
		segmentsByTile: make(map[TileCoord][]string),
	}
}

// AddSegment adds a segment to the grid.
// Returns ErrInvalidSegmentID for an empty ID, ErrDuplicateSegmentID
// when the ID is already present, or ErrNoPrimitives when the segment
// carries no geometry. The segment's Kind is classified from its
// primitives when left unset.
func (g *Grid) AddSegment(s Segment) error {
	if s.ID == "" {
		return ErrInvalidSegmentID
	}
	if _, exists := g.segments[s.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSegmentID, s.ID)
	}
	if len(s.Primitives) == 0 {
		return fmt.Errorf("%w: %q", ErrNoPrimitives, s.ID)
	}
	if s.Kind == geometry.KindUnknown {
		s.Kind = geometry.ClassifyAll(s.Primitives)
	}
	seg := &s
	g.segments[seg.ID] = seg
	g.segmentsByTile[seg.Tile] = append(g.segmentsByTile[seg.Tile], seg.ID)
	return nil
}

// Segment returns the segment with the given ID and true, or nil and
// false when absent. Missing IDs are routine (glyph definitions may
// reference stale segments), so absence is not an error.
func (g *Grid) Segment(id string) (*Segment, bool) {
	s, ok := g.segments[id]
	return s, ok
}

// SegmentIDs returns all segment IDs in sorted order.
func (g *Grid) SegmentIDs() []string {
	return slices.Sorted(maps.Keys(g.segments))
}

// SegmentsInTile returns the IDs of segments on the given tile, sorted.
// Returns nil for tiles without segments.
func (g *Grid) SegmentsInTile(tile TileCoord) []string {
	ids := slices.Clone(g.segmentsByTile[tile])
	slices.Sort(ids)
	return ids
}

// Len returns the number of segments in the grid.
func (g *Grid) Len() int { return len(g.segments) }

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int { return g.rows }

// TileSize returns the world-space size of one tile.
func (g *Grid) TileSize() (w, h float64) { return g.tileW, g.tileH }

// Center returns the world-space center of the whole grid. The stroke
// orderer uses its X and Y as the quadrant boundary lines.
func (g *Grid) Center() geom.Coord {
	return geom.Coord{
		X: float64(g.cols) * g.tileW / 2,
		Y: float64(g.rows) * g.tileH / 2,
	}
}

// Kind returns the classified kind of a segment, or KindUnknown for
// absent IDs.
func (g *Grid) Kind(id string) geometry.Kind {
	if s, ok := g.segments[id]; ok {
		return s.Kind
	}
	return geometry.KindUnknown
}

// StartPoint returns the pen-entry position of a segment, or the zero
// coordinate for absent IDs.
func (g *Grid) StartPoint(id string) geom.Coord {
	if s, ok := g.segments[id]; ok {
		return s.StartPoint()
	}
	return geom.Coord{}
}
