package segmentgraph

import (
	"slices"
	"testing"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
	"github.com/glyphsign/glyphsign/pkg/grid"
)

func pt(x, y float64) geom.Coord { return geom.Coord{X: x, Y: y} }

func line(x1, y1, x2, y2 float64) geometry.Primitive {
	return geometry.Line{P1: pt(x1, y1), P2: pt(x2, y2)}
}

func mustAdd(t *testing.T, g *grid.Grid, id string, tile grid.TileCoord, prims ...geometry.Primitive) {
	t.Helper()
	if err := g.AddSegment(grid.NewSegment(id, tile, prims)); err != nil {
		t.Fatalf("AddSegment(%s): %v", id, err)
	}
}

// chainGrid is three collinear segments sharing joints at x=28 and
// x=68: a - b - c.
func chainGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g := grid.New(1, 1, 100, 100)
	mustAdd(t, g, "a", grid.TileCoord{}, line(10, 50, 28, 50))
	mustAdd(t, g, "b", grid.TileCoord{}, line(28, 50, 68, 50))
	mustAdd(t, g, "c", grid.TileCoord{}, line(68, 50, 90, 50))
	return g
}

func TestBuildChain(t *testing.T) {
	gr := Build(chainGrid(t), Options{})

	if gr.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", gr.EdgeCount())
	}
	if !gr.Connected("a", "b") || !gr.Connected("b", "c") {
		t.Error("expected a-b and b-c connections")
	}
	if gr.Connected("a", "c") {
		t.Error("a and c share no joint but are connected")
	}
	if got, ok := gr.ConnectionPoint("a", "b"); !ok || got != pt(28, 50) {
		t.Errorf("ConnectionPoint(a, b) = %v, %v; want (28,50), true", got, ok)
	}
}

func TestConnectionsAreSymmetric(t *testing.T) {
	gr := Build(chainGrid(t), Options{})

	for _, id := range gr.IDs() {
		for _, c := range gr.Neighbors(id) {
			if !gr.Connected(c.To, id) {
				t.Errorf("connection %s->%s has no reverse entry", id, c.To)
			}
			back, ok := gr.ConnectionPoint(c.To, id)
			if !ok || back != c.At {
				t.Errorf("ConnectionPoint(%s, %s) = %v, want %v", c.To, id, back, c.At)
			}
		}
	}
}

func TestThresholdBoundary(t *testing.T) {
	const threshold = 0.5
	build := func(gap float64) *Graph {
		g := grid.New(1, 1, 100, 100)
		mustAdd(t, g, "a", grid.TileCoord{}, line(0, 50, 40, 50))
		mustAdd(t, g, "b", grid.TileCoord{}, line(40+gap, 50, 80, 50))
		return Build(g, Options{ConnectionThreshold: threshold})
	}

	if gr := build(threshold); !gr.Connected("a", "b") {
		t.Error("gap equal to threshold should connect")
	}
	if gr := build(threshold * 1.01); gr.Connected("a", "b") {
		t.Error("gap beyond threshold should not connect")
	}
}

func TestCrossTileConnections(t *testing.T) {
	g := grid.New(2, 1, 100, 100)
	mustAdd(t, g, "left", grid.TileCoord{Col: 0, Row: 0}, line(50, 50, 100, 50))
	mustAdd(t, g, "right", grid.TileCoord{Col: 1, Row: 0}, line(100, 50, 150, 50))
	gr := Build(g, Options{})

	if !gr.Connected("left", "right") {
		t.Error("segments joined at a tile boundary are not connected")
	}
}

func TestTJunction(t *testing.T) {
	g := grid.New(1, 1, 100, 100)
	mustAdd(t, g, "bar", grid.TileCoord{}, line(20, 50, 80, 50))
	mustAdd(t, g, "stem", grid.TileCoord{}, line(80, 50, 80, 90))
	mustAdd(t, g, "hook", grid.TileCoord{}, geometry.Arc{
		Points: []geom.Coord{pt(20, 50), pt(14, 52), pt(10, 60)},
	})
	gr := Build(g, Options{})

	if got := gr.NeighborIDs("bar"); !slices.Equal(got, []string{"hook", "stem"}) {
		t.Errorf("NeighborIDs(bar) = %v, want [hook stem]", got)
	}
	if gr.Connected("stem", "hook") {
		t.Error("stem and hook touch only through bar")
	}
}

func TestFindPath(t *testing.T) {
	gr := Build(chainGrid(t), Options{})

	path, ok := gr.FindPath("a", "c")
	if !ok {
		t.Fatal("FindPath(a, c) found no path")
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(path, want) {
		t.Errorf("FindPath(a, c) = %v, want %v", path, want)
	}

	if path, ok := gr.FindPath("a", "a"); !ok || !slices.Equal(path, []string{"a"}) {
		t.Errorf("FindPath(a, a) = %v, %v; want [a], true", path, ok)
	}
}

func TestFindPathDisconnected(t *testing.T) {
	g := chainGrid(t)
	mustAdd(t, g, "island", grid.TileCoord{}, line(5, 5, 15, 5))
	gr := Build(g, Options{})

	if _, ok := gr.FindPath("a", "island"); ok {
		t.Error("FindPath(a, island) = found, want no path")
	}
	if _, ok := gr.FindPath("a", "ghost"); ok {
		t.Error("FindPath(a, ghost) = found, want no path")
	}
}

func TestNearest(t *testing.T) {
	gr := Build(chainGrid(t), Options{})

	active := map[string]bool{"c": true}
	got, ok := gr.Nearest("a", func(id string) bool { return active[id] })
	if !ok || got != "c" {
		t.Errorf("Nearest(a) = %q, %v; want c, true", got, ok)
	}

	if _, ok := gr.Nearest("a", func(string) bool { return false }); ok {
		t.Error("Nearest with no match = found, want none")
	}
}
