package grid

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
)

func pt(x, y float64) geom.Coord { return geom.Coord{X: x, Y: y} }

func line(x1, y1, x2, y2 float64) geometry.Primitive {
	return geometry.Line{P1: pt(x1, y1), P2: pt(x2, y2)}
}

func testGrid(t *testing.T) *Grid {
	t.Helper()
	g := New(2, 2, 100, 100)
	segments := []Segment{
		NewSegment("0,0:top", TileCoord{0, 0}, []geometry.Primitive{line(0, 0, 100, 0)}),
		NewSegment("0,0:left", TileCoord{0, 0}, []geometry.Primitive{line(0, 0, 0, 100)}),
		NewSegment("1,0:top", TileCoord{1, 0}, []geometry.Primitive{line(100, 0, 200, 0)}),
	}
	for _, s := range segments {
		if err := g.AddSegment(s); err != nil {
			t.Fatalf("AddSegment(%s): %v", s.ID, err)
		}
	}
	return g
}

func TestAddSegmentValidation(t *testing.T) {
	g := New(1, 1, 100, 100)

	if err := g.AddSegment(Segment{}); !errors.Is(err, ErrInvalidSegmentID) {
		t.Errorf("AddSegment(empty ID) = %v, want ErrInvalidSegmentID", err)
	}

	seg := NewSegment("a", TileCoord{0, 0}, []geometry.Primitive{line(0, 0, 1, 0)})
	if err := g.AddSegment(seg); err != nil {
		t.Fatalf("AddSegment: %v", err)
	}
	if err := g.AddSegment(seg); !errors.Is(err, ErrDuplicateSegmentID) {
		t.Errorf("AddSegment(duplicate) = %v, want ErrDuplicateSegmentID", err)
	}

	if err := g.AddSegment(Segment{ID: "empty"}); !errors.Is(err, ErrNoPrimitives) {
		t.Errorf("AddSegment(no primitives) = %v, want ErrNoPrimitives", err)
	}
}

func TestSegmentLookup(t *testing.T) {
	g := testGrid(t)

	if _, ok := g.Segment("0,0:top"); !ok {
		t.Error("Segment(0,0:top) not found")
	}
	if _, ok := g.Segment("missing"); ok {
		t.Error("Segment(missing) found, want absent")
	}
	if got := g.Kind("0,0:top"); got != geometry.KindHorizontal {
		t.Errorf("Kind(0,0:top) = %v, want horizontal", got)
	}
	if got := g.Kind("missing"); got != geometry.KindUnknown {
		t.Errorf("Kind(missing) = %v, want unknown", got)
	}
}

func TestSegmentsInTile(t *testing.T) {
	g := testGrid(t)

	got := g.SegmentsInTile(TileCoord{0, 0})
	want := []string{"0,0:left", "0,0:top"}
	if len(got) != len(want) {
		t.Fatalf("SegmentsInTile(0,0) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SegmentsInTile(0,0)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := g.SegmentsInTile(TileCoord{5, 5}); got != nil {
		t.Errorf("SegmentsInTile(5,5) = %v, want nil", got)
	}
}

func TestCenter(t *testing.T) {
	g := New(5, 4, 100, 100)
	want := pt(250, 200)
	if got := g.Center(); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}
}

func TestGlyphSet(t *testing.T) {
	g := testGrid(t)
	glyphs := GlyphSet{
		"bar":   {"0,0:top", "1,0:top"},
		"stale": {"0,0:top", "gone"},
	}

	active, ok := glyphs.Active("bar")
	if !ok || len(active) != 2 {
		t.Fatalf("Active(bar) = %v, %v; want 2 ids, true", active, ok)
	}
	if _, ok := glyphs.Active("nope"); ok {
		t.Error("Active(nope) = true, want false")
	}

	missing := glyphs.Unknown("stale", g)
	if len(missing) != 1 || missing[0] != "gone" {
		t.Errorf("Unknown(stale) = %v, want [gone]", missing)
	}

	names := glyphs.Names()
	if len(names) != 2 || names[0] != "bar" || names[1] != "stale" {
		t.Errorf("Names() = %v, want [bar stale]", names)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	g := New(2, 1, 100, 100)
	segments := []Segment{
		NewSegment("h", TileCoord{0, 0}, []geometry.Primitive{line(0, 50, 100, 50)}),
		NewSegment("arc", TileCoord{1, 0}, []geometry.Primitive{
			geometry.Arc{Points: []geom.Coord{pt(150, 40), pt(160, 45), pt(170, 50)}},
		}),
		NewSegment("dot", TileCoord{1, 0}, []geometry.Primitive{
			geometry.Circle{Center: pt(150, 50), Radius: 5},
		}),
	}
	for _, s := range segments {
		if err := g.AddSegment(s); err != nil {
			t.Fatalf("AddSegment(%s): %v", s.ID, err)
		}
	}
	p := &Project{Grid: g, Glyphs: GlyphSet{"x": {"h", "arc"}}}

	data, err := MarshalProject(p)
	if err != nil {
		t.Fatalf("MarshalProject: %v", err)
	}

	got, err := ReadProject(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadProject: %v", err)
	}

	if got.Grid.Len() != 3 {
		t.Errorf("round-trip Len() = %d, want 3", got.Grid.Len())
	}
	if got.Grid.Kind("h") != geometry.KindHorizontal {
		t.Errorf("round-trip Kind(h) = %v, want horizontal", got.Grid.Kind("h"))
	}
	if got.Grid.Kind("arc") != geometry.KindArcTopRight {
		t.Errorf("round-trip Kind(arc) = %v, want arc-top-right", got.Grid.Kind("arc"))
	}
	seg, ok := got.Grid.Segment("dot")
	if !ok {
		t.Fatal("round-trip Segment(dot) missing")
	}
	circle, ok := seg.Primitives[0].(geometry.Circle)
	if !ok || circle.Radius != 5 {
		t.Errorf("round-trip dot primitive = %#v, want circle radius 5", seg.Primitives[0])
	}
	if _, ok := got.Glyphs.Active("x"); !ok {
		t.Error("round-trip glyph x missing")
	}
}

func TestMarshalDeterministic(t *testing.T) {
	g := testGrid(t)
	p := &Project{Grid: g, Glyphs: GlyphSet{}}

	first, err := MarshalProject(p)
	if err != nil {
		t.Fatalf("MarshalProject: %v", err)
	}
	second, err := MarshalProject(p)
	if err != nil {
		t.Fatalf("MarshalProject: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("MarshalProject output differs between runs")
	}
}
