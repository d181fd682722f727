package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
)

// =============================================================================
// Project Serialization API
// =============================================================================

// Project bundles a display layout with its glyph library. This is the
// on-disk unit the CLI works with: one file describes everything a
// display instance needs except runtime tuning.
type Project struct {
	Grid   *Grid
	Glyphs GlyphSet
}

// MarshalProject converts a project to JSON bytes.
// Segments are sorted by ID for deterministic output.
func MarshalProject(p *Project) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeProjectTo(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteProjectFile writes a project to a JSON file.
// The file is created with 0644 permissions.
func WriteProjectFile(p *Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeProjectTo(p, f)
}

// WriteProject writes a project as JSON to an io.Writer.
func WriteProject(p *Project, w io.Writer) error {
	return writeProjectTo(p, w)
}

// ReadProjectFile reads a JSON file and returns the decoded project.
func ReadProjectFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readProjectFrom(f)
}

// ReadProject decodes a JSON project from an io.Reader.
func ReadProject(r io.Reader) (*Project, error) {
	return readProjectFrom(r)
}

// =============================================================================
// Wire Format
// =============================================================================

type projectJSON struct {
	Cols       int                 `json:"cols"`
	Rows       int                 `json:"rows"`
	TileWidth  float64             `json:"tile_width"`
	TileHeight float64             `json:"tile_height"`
	Segments   []segmentJSON       `json:"segments"`
	Glyphs     map[string][]string `json:"glyphs,omitempty"`
}

type segmentJSON struct {
	ID         string          `json:"id"`
	Tile       TileCoord       `json:"tile"`
	Kind       string          `json:"kind,omitempty"`
	Primitives []primitiveJSON `json:"primitives"`
}

// primitiveJSON is the tagged wire form of a geometry primitive.
// Exactly one shape's fields are populated, selected by Type.
type primitiveJSON struct {
	Type   string       `json:"type"` // "line", "arc", or "circle"
	P1     *[2]float64  `json:"p1,omitempty"`
	P2     *[2]float64  `json:"p2,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`
	Center *[2]float64  `json:"center,omitempty"`
	Radius float64      `json:"radius,omitempty"`
}

func coordOut(c geom.Coord) *[2]float64 { return &[2]float64{c.X, c.Y} }

func coordIn(p *[2]float64) geom.Coord {
	if p == nil {
		return geom.Coord{}
	}
	return geom.Coord{X: p[0], Y: p[1]}
}

func primitiveOut(p geometry.Primitive) primitiveJSON {
	switch p := p.(type) {
	case geometry.Line:
		return primitiveJSON{Type: "line", P1: coordOut(p.P1), P2: coordOut(p.P2)}
	case geometry.Arc:
		points := make([][2]float64, len(p.Points))
		for i, pt := range p.Points {
			points[i] = [2]float64{pt.X, pt.Y}
		}
		return primitiveJSON{Type: "arc", Points: points}
	case geometry.Circle:
		return primitiveJSON{Type: "circle", Center: coordOut(p.Center), Radius: p.Radius}
	}
	return primitiveJSON{}
}

func primitiveIn(p primitiveJSON) (geometry.Primitive, error) {
	switch p.Type {
	case "line":
		return geometry.Line{P1: coordIn(p.P1), P2: coordIn(p.P2)}, nil
	case "arc":
		points := make([]geom.Coord, len(p.Points))
		for i, pt := range p.Points {
			points[i] = geom.Coord{X: pt[0], Y: pt[1]}
		}
		return geometry.Arc{Points: points}, nil
	case "circle":
		return geometry.Circle{Center: coordIn(p.Center), Radius: p.Radius}, nil
	}
	return nil, fmt.Errorf("unknown primitive type %q", p.Type)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeProjectTo(p *Project, w io.Writer) error {
	g := p.Grid
	out := projectJSON{
		Cols:   g.Cols(),
		Rows:   g.Rows(),
		Glyphs: p.Glyphs,
	}
	out.TileWidth, out.TileHeight = g.TileSize()

	for _, id := range g.SegmentIDs() {
		seg, _ := g.Segment(id)
		sj := segmentJSON{
			ID:   seg.ID,
			Tile: seg.Tile,
			Kind: seg.Kind.String(),
		}
		for _, prim := range seg.Primitives {
			sj.Primitives = append(sj.Primitives, primitiveOut(prim))
		}
		out.Segments = append(out.Segments, sj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readProjectFrom(r io.Reader) (*Project, error) {
	var data projectJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New(data.Cols, data.Rows, data.TileWidth, data.TileHeight)
	for _, sj := range data.Segments {
		prims := make([]geometry.Primitive, 0, len(sj.Primitives))
		for _, pj := range sj.Primitives {
			prim, err := primitiveIn(pj)
			if err != nil {
				return nil, fmt.Errorf("segment %q: %w", sj.ID, err)
			}
			prims = append(prims, prim)
		}
		seg := Segment{ID: sj.ID, Tile: sj.Tile, Primitives: prims}
		if sj.Kind != "" {
			seg.Kind = geometry.ParseKind(sj.Kind)
		}
		if err := g.AddSegment(seg); err != nil {
			return nil, fmt.Errorf("segment %q: %w", sj.ID, err)
		}
	}

	glyphs := data.Glyphs
	if glyphs == nil {
		glyphs = GlyphSet{}
	}
	return &Project{Grid: g, Glyphs: GlyphSet(glyphs)}, nil
}
