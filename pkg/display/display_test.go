package display

import (
	"reflect"
	"testing"
	"time"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
	"github.com/glyphsign/glyphsign/pkg/transition"
)

// rowDisplay builds a display over three connected horizontal segments
// with glyphs "bar" (all three) and "dot" (the middle one).
func rowDisplay(t *testing.T, opts Options) *Display {
	t.Helper()
	g := grid.New(3, 1, 40, 40)
	for i := 0; i < 3; i++ {
		x := float64(i) * 40
		seg := grid.NewSegment(
			[]string{"s0", "s1", "s2"}[i],
			grid.TileCoord{Col: i, Row: 0},
			[]geometry.Primitive{geometry.Line{
				P1: geom.Coord{X: x, Y: 20},
				P2: geom.Coord{X: x + 40, Y: 20},
			}},
		)
		if err := g.AddSegment(seg); err != nil {
			t.Fatalf("AddSegment: %v", err)
		}
	}

	if opts.Glyphs == nil {
		opts.Glyphs = grid.GlyphSet{
			"bar": {"s0", "s1", "s2"},
			"dot": {"s1"},
		}
	}
	d, err := New(g, segmentgraph.Build(g, segmentgraph.Options{}), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

// drain ticks until the display settles.
func drain(t *testing.T, d *Display, frame time.Duration) {
	t.Helper()
	for i := 0; i < 1000 && d.InTransition(); i++ {
		d.Tick(frame)
	}
	if d.InTransition() {
		t.Fatal("display did not settle")
	}
}

func TestSetGlyphImmediate(t *testing.T) {
	d := rowDisplay(t, Options{})

	if !d.SetGlyph("bar", transition.KindImmediate) {
		t.Fatal("SetGlyph(bar) = false, want true")
	}
	updates, ok := d.Tick(0)
	if !ok {
		t.Fatal("Tick did not apply the immediate step")
	}
	if len(updates.On) != 3 || len(updates.Off) != 0 {
		t.Errorf("updates = %d on, %d off; want 3 on, 0 off", len(updates.On), len(updates.Off))
	}
	if got := d.Active(); !reflect.DeepEqual(got, []string{"s0", "s1", "s2"}) {
		t.Errorf("Active = %v, want [s0 s1 s2]", got)
	}
	if d.InTransition() {
		t.Error("InTransition = true after the plan finished")
	}
}

func TestUnknownGlyphBlanksDisplay(t *testing.T) {
	d := rowDisplay(t, Options{})
	d.SetGlyph("bar", transition.KindImmediate)
	drain(t, d, 0)

	if d.SetGlyph("missing", transition.KindImmediate) {
		t.Error("SetGlyph(missing) = true, want false")
	}
	drain(t, d, 0)
	if n := d.ActiveCount(); n != 0 {
		t.Errorf("ActiveCount = %d after unknown glyph, want 0", n)
	}
}

func TestClear(t *testing.T) {
	d := rowDisplay(t, Options{})
	d.SetTarget([]string{"s0", "s2"}, transition.KindImmediate)
	drain(t, d, 0)

	d.Clear(transition.KindImmediate)
	drain(t, d, 0)
	if n := d.ActiveCount(); n != 0 {
		t.Errorf("ActiveCount = %d after Clear, want 0", n)
	}
}

func TestTickFrameTiming(t *testing.T) {
	d := rowDisplay(t, Options{
		Config: transition.Config{FrameDuration: 50 * time.Millisecond, Wandering: 1, Density: 0.5},
	})
	d.SetGlyph("bar", transition.KindRandom)

	if _, ok := d.Tick(20 * time.Millisecond); ok {
		t.Error("step applied before the frame interval elapsed")
	}
	if !d.InTransition() {
		t.Fatal("transition not built on first Tick")
	}
	if _, ok := d.Tick(40 * time.Millisecond); !ok {
		t.Error("step not applied after the frame interval elapsed")
	}
}

func TestStagedGlyphReplacesInFlight(t *testing.T) {
	frame := time.Millisecond
	d := rowDisplay(t, Options{
		Config: transition.Config{FrameDuration: frame},
	})

	d.SetGlyph("bar", transition.KindWriting)
	d.Tick(frame)
	d.Tick(frame)
	if !d.InTransition() {
		t.Fatal("writing plan finished too early for the test to interrupt")
	}

	d.SetGlyph("dot", transition.KindImmediate)
	drain(t, d, frame)

	if got := d.Active(); !reflect.DeepEqual(got, []string{"s1"}) {
		t.Errorf("Active = %v after replacement, want [s1]", got)
	}
}

func TestWritingDrawsInPenOrder(t *testing.T) {
	frame := time.Millisecond
	d := rowDisplay(t, Options{
		Config: transition.Config{FrameDuration: frame},
	})
	d.SetGlyph("bar", transition.KindWriting)

	var lit []string
	for i := 0; i < 100 && d.InTransition(); i++ {
		updates, ok := d.Tick(frame)
		if !ok {
			continue
		}
		for id := range updates.On {
			lit = append(lit, id)
		}
	}
	if !reflect.DeepEqual(lit, []string{"s0", "s1", "s2"}) {
		t.Errorf("writing lit order = %v, want [s0 s1 s2]", lit)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() [][]string {
		d := rowDisplay(t, Options{
			Config: transition.Config{FrameDuration: time.Millisecond, Wandering: 0.5, Density: 0.3},
			Seed:   7,
		})
		var steps [][]string
		for _, glyph := range []string{"bar", "dot", "bar"} {
			d.SetGlyph(glyph, transition.KindRandom)
			for i := 0; i < 1000 && d.InTransition(); i++ {
				updates, ok := d.Tick(time.Millisecond)
				if !ok {
					continue
				}
				var step []string
				for id := range updates.On {
					step = append(step, "+"+id)
				}
				for id := range updates.Off {
					step = append(step, "-"+id)
				}
				steps = append(steps, step)
			}
		}
		return steps
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("replay lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		am := map[string]bool{}
		bm := map[string]bool{}
		for _, s := range a[i] {
			am[s] = true
		}
		for _, s := range b[i] {
			bm[s] = true
		}
		if !reflect.DeepEqual(am, bm) {
			t.Errorf("step %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSetConfig(t *testing.T) {
	d := rowDisplay(t, Options{})

	if err := d.SetConfig(transition.Config{Wandering: 2}); err == nil {
		t.Error("SetConfig accepted out-of-range wandering")
	}

	cfg := transition.Config{Steps: 4, FrameDuration: 10 * time.Millisecond}
	if err := d.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if got := d.Config().Steps; got != 4 {
		t.Errorf("Config.Steps = %d, want 4", got)
	}
}

func TestEffectRoundTrip(t *testing.T) {
	for _, name := range EffectNames() {
		if got := ParseEffect(name).String(); got != name {
			t.Errorf("ParseEffect(%q).String() = %q", name, got)
		}
	}
	if ParseEffect("sparkle") != EffectNone {
		t.Error("unknown effect name did not fall back to none")
	}

	d := rowDisplay(t, Options{})
	if d.Effect() != EffectNone {
		t.Error("new display effect is not none")
	}
	d.SetEffect(EffectPowerOn)
	if d.Effect() != EffectPowerOn {
		t.Error("SetEffect did not stick")
	}
}
