package transition

import (
	"bytes"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
)

func set(ids ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// rowGraph builds a graph over n collinear segments named s0..s(n-1),
// each joined to the next.
func rowGraph(t *testing.T, n int) *segmentgraph.Graph {
	t.Helper()
	g := grid.New(1, 1, float64(n*10), 100)
	for i := 0; i < n; i++ {
		x := float64(i * 10)
		seg := grid.NewSegment(segName(i), grid.TileCoord{}, []geometry.Primitive{
			geometry.Line{P1: geom.Coord{X: x, Y: 50}, P2: geom.Coord{X: x + 10, Y: 50}},
		})
		if err := g.AddSegment(seg); err != nil {
			t.Fatalf("AddSegment: %v", err)
		}
	}
	return segmentgraph.Build(g, segmentgraph.Options{})
}

func segName(i int) string {
	return fmt.Sprintf("s%d", i)
}

func planOnOff(p Plan) (on, off []string) {
	for _, step := range p {
		for _, c := range step {
			if c.On {
				on = append(on, c.ID)
			} else {
				off = append(off, c.ID)
			}
		}
	}
	slices.Sort(on)
	slices.Sort(off)
	return on, off
}

func TestGenerateChangesCoversSymmetricDifference(t *testing.T) {
	graph := rowGraph(t, 8)
	current := set("s0", "s1", "s2", "s3")
	target := set("s2", "s3", "s4", "s5", "s6")

	e := NewEngine(Config{Steps: 5, Wandering: 0.4, Density: 0.3}, 42)
	plan := e.GenerateChanges(graph, current, target, nil)

	on, off := planOnOff(plan)
	if want := []string{"s4", "s5", "s6"}; !slices.Equal(on, want) {
		t.Errorf("plan turns on %v, want %v", on, want)
	}
	if want := []string{"s0", "s1"}; !slices.Equal(off, want) {
		t.Errorf("plan turns off %v, want %v", off, want)
	}
}

func TestGenerateChangesDeterministicPerSeed(t *testing.T) {
	graph := rowGraph(t, 6)
	current := set("s0", "s1")
	target := set("s3", "s4", "s5")
	cfg := Config{Steps: 4, Wandering: 0.5, Density: 0.4}

	first := NewEngine(cfg, 7).GenerateChanges(graph, current, target, nil)
	second := NewEngine(cfg, 7).GenerateChanges(graph, current, target, nil)
	if !slices.EqualFunc(first, second, slices.Equal) {
		t.Errorf("same seed produced different plans:\n%v\n%v", first, second)
	}
}

func TestGenerateChangesZeroWanderingStillProgresses(t *testing.T) {
	graph := rowGraph(t, 6)
	current := set("s0")
	target := set("s1", "s2", "s3", "s4", "s5")

	e := NewEngine(Config{Steps: 4, Wandering: 0, Density: 0.5}, 1)
	plan := e.GenerateChanges(graph, current, target, nil)

	on, _ := planOnOff(plan)
	if want := []string{"s1", "s2", "s3", "s4", "s5"}; !slices.Equal(on, want) {
		t.Errorf("zero wandering plan turns on %v, want %v", on, want)
	}
}

func TestGenerateChangesStepBounds(t *testing.T) {
	graph := rowGraph(t, 8)
	current := set()
	target := set("s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7")
	cfg := Config{Steps: 4, Wandering: 1, Density: 0.25}

	plan := NewEngine(cfg, 3).GenerateChanges(graph, current, target, nil)
	if len(plan) > cfg.Steps {
		t.Errorf("plan has %d steps, want at most %d", len(plan), cfg.Steps)
	}
	if len(plan) == 0 {
		t.Fatal("plan is empty")
	}
}

func TestGenerateChangesStyledGuard(t *testing.T) {
	graph := rowGraph(t, 4)
	current := set("s0", "s1")
	target := set("s0", "s1", "s2")

	// s1 is lit but in the wrong style, so it must be re-sent.
	styled := func(id string) bool { return id != "s1" }
	e := NewEngine(Config{Steps: 3, Wandering: 1, Density: 1}, 5)
	plan := e.GenerateChanges(graph, current, target, styled)

	on, _ := planOnOff(plan)
	if want := []string{"s1", "s2"}; !slices.Equal(on, want) {
		t.Errorf("plan turns on %v, want %v", on, want)
	}
}

func TestGenerateChangesEmpty(t *testing.T) {
	graph := rowGraph(t, 3)
	e := NewEngine(Config{Steps: 3, Wandering: 1, Density: 1}, 1)

	if plan := e.GenerateChanges(graph, set("s0"), set("s0"), nil); len(plan) != 0 {
		t.Errorf("no-op transition produced %d steps, want 0", len(plan))
	}
}

func TestGenerateImmediate(t *testing.T) {
	plan := GenerateImmediate(set("a", "b"), set("b", "c"))
	if len(plan) != 1 {
		t.Fatalf("immediate plan has %d steps, want 1", len(plan))
	}
	on, off := planOnOff(plan)
	if !slices.Equal(on, []string{"c"}) || !slices.Equal(off, []string{"a"}) {
		t.Errorf("immediate step on=%v off=%v, want on=[c] off=[a]", on, off)
	}
}

func TestGenerateImmediateNoChanges(t *testing.T) {
	if plan := GenerateImmediate(set("a", "b"), set("a", "b")); len(plan) != 0 {
		t.Errorf("no-op immediate plan has %d steps, want 0", len(plan))
	}
	if plan := GenerateImmediate(nil, nil); len(plan) != 0 {
		t.Errorf("dark-to-dark immediate plan has %d steps, want 0", len(plan))
	}
}

func TestConvertToChanges(t *testing.T) {
	plan := ConvertToChanges([]string{"x", "y"}, set("stale", "x"), set("x", "y"))

	if len(plan) != 3 {
		t.Fatalf("plan has %d steps, want 3", len(plan))
	}
	for i, want := range []string{"x", "y"} {
		if len(plan[i]) != 1 || plan[i][0].ID != want || !plan[i][0].On {
			t.Errorf("step %d = %v, want single on-change for %s", i, plan[i], want)
		}
	}
	last := plan[2]
	if len(last) != 1 || last[0].ID != "stale" || last[0].On {
		t.Errorf("final step = %v, want off-change for stale", last)
	}
}

func TestConvertToChangesNoStale(t *testing.T) {
	plan := ConvertToChanges([]string{"x"}, set("x"), set("x"))
	if len(plan) != 1 {
		t.Errorf("plan has %d steps, want 1 (no trailing off step)", len(plan))
	}
}

func TestGenerateKinds(t *testing.T) {
	graph := rowGraph(t, 4)
	current := set("s0")
	target := set("s2", "s3")
	order := func(_, tgt map[string]struct{}) []string {
		ids := make([]string, 0, len(tgt))
		for id := range tgt {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return ids
	}
	e := NewEngine(Config{Steps: 3, Wandering: 1, Density: 1}, 9)

	writing := e.Generate(KindWriting, graph, current, target, order)
	// Clear step first, then one step per ordered segment.
	if len(writing) != 3 {
		t.Fatalf("writing plan has %d steps, want 3", len(writing))
	}
	if writing[0][0].ID != "s0" || writing[0][0].On {
		t.Errorf("writing step 0 = %v, want off-change for s0", writing[0])
	}

	overwrite := e.Generate(KindOverwrite, graph, current, target, order)
	if len(overwrite) != 3 {
		t.Fatalf("overwrite plan has %d steps, want 3", len(overwrite))
	}
	last := overwrite[len(overwrite)-1]
	if len(last) != 1 || last[0].ID != "s0" || last[0].On {
		t.Errorf("overwrite final step = %v, want off-change for s0", last)
	}

	immediate := e.Generate(KindImmediate, graph, current, target, nil)
	if len(immediate) != 1 {
		t.Errorf("immediate plan has %d steps, want 1", len(immediate))
	}

	// From a dark display there is nothing to clear, so the writing
	// plan starts with the first pen stroke.
	dark := e.Generate(KindWriting, graph, nil, target, order)
	if len(dark) != 2 {
		t.Fatalf("writing plan from dark has %d steps, want 2", len(dark))
	}
	if len(dark[0]) != 1 || dark[0][0].ID != "s2" || !dark[0][0].On {
		t.Errorf("writing step 0 from dark = %v, want on-change for s2", dark[0])
	}
}

func TestConfigValidateAndSetDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if cfg.Steps != DefaultSteps || cfg.FrameDuration != DefaultFrameDuration {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Wandering != 0 || cfg.Density != 0 {
		t.Errorf("explicit zero wandering or density rewritten: %+v", cfg)
	}

	bad := Config{Wandering: 1.5}
	if err := bad.ValidateAndSetDefaults(); err != ErrInvalidWandering {
		t.Errorf("ValidateAndSetDefaults() = %v, want ErrInvalidWandering", err)
	}
}

func TestTransitionCursor(t *testing.T) {
	plan := Plan{
		{{ID: "a", On: true}},
		{{ID: "b", On: true}, {ID: "a", On: false}},
	}
	tr := New(KindRandom, plan, 50*time.Millisecond)

	if tr.Complete() {
		t.Fatal("fresh transition reports complete")
	}
	if tr.Tick(20 * time.Millisecond) {
		t.Error("Tick(20ms) = true, want false")
	}
	if !tr.Tick(40 * time.Millisecond) {
		t.Error("Tick(+40ms) = false, want true at 60ms accumulated")
	}

	u, ok := tr.Advance()
	if !ok || len(u.On) != 1 {
		t.Fatalf("first Advance() = %v, %v", u, ok)
	}
	u, ok = tr.Advance()
	if !ok {
		t.Fatal("second Advance() exhausted early")
	}
	if _, on := u.On["b"]; !on {
		t.Error("second step should turn b on")
	}
	if _, off := u.Off["a"]; !off {
		t.Error("second step should turn a off")
	}

	if _, ok := tr.Advance(); ok {
		t.Error("Advance() past the end = true, want false")
	}
	if !tr.Complete() {
		t.Error("exhausted transition not complete")
	}
}

func TestTransitionTickKeepsRemainder(t *testing.T) {
	tr := New(KindRandom, Plan{{}, {}}, 50*time.Millisecond)
	if !tr.Tick(120 * time.Millisecond) {
		t.Fatal("Tick(120ms) = false, want true")
	}
	// 70ms remainder is already past the next frame boundary.
	if !tr.Tick(0) {
		t.Error("Tick(0) = false, want true with 70ms accumulated")
	}
	if tr.Tick(0) {
		t.Error("Tick(0) = true after remainder consumed, want false")
	}
}

func TestPlanRoundTrip(t *testing.T) {
	p := &PlanFile{
		Kind:          KindWriting,
		FrameDuration: 50,
		Plan: Plan{
			{{ID: "a", On: true}},
			{{ID: "b", On: false}},
		},
	}

	data, err := MarshalPlan(p)
	if err != nil {
		t.Fatalf("MarshalPlan: %v", err)
	}
	got, err := ReadPlan(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadPlan: %v", err)
	}
	if got.Kind != KindWriting || got.FrameDuration != 50 {
		t.Errorf("round-trip header = %v/%d, want writing/50", got.Kind, got.FrameDuration)
	}
	if len(got.Plan) != 2 || got.Plan[0][0].ID != "a" || got.Plan[1][0].On {
		t.Errorf("round-trip plan = %v", got.Plan)
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindImmediate, KindRandom, KindWriting, KindOverwrite} {
		if got := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := ParseKind("bogus"); got != KindImmediate {
		t.Errorf("ParseKind(bogus) = %v, want immediate", got)
	}
}
