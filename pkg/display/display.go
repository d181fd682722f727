// Package display runs one segmented display instance: the lit set,
// the in-flight transition moving it toward a staged glyph, and the
// knobs a controller adjusts between glyphs.
//
// A Display owns its state and is driven by a single goroutine calling
// Tick with real frame deltas. The grid and graph it reads are
// immutable and may be shared between instances.
package display

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
	"github.com/glyphsign/glyphsign/pkg/strokeorder"
	"github.com/glyphsign/glyphsign/pkg/transition"
)

// Options configures a display instance.
type Options struct {
	// Glyphs maps glyph names to segment sets. Optional; without it
	// only SetTarget works.
	Glyphs grid.GlyphSet

	// Config is the transition config used for generated plans. A
	// zero Steps or FrameDuration takes its default; Wandering and
	// Density are used as given, since zero is legal for both.
	Config transition.Config

	// Seed drives the randomized plan generator. The same seed and
	// glyph sequence replays identically.
	Seed uint64

	// Order overrides the pen order used by writing and overwrite
	// plans. Defaults to the stroke orderer over the display's grid.
	Order transition.OrderFunc
}

// Display is one running display instance.
type Display struct {
	id     uuid.UUID
	grid   *grid.Grid
	graph  *segmentgraph.Graph
	glyphs grid.GlyphSet

	engine *transition.Engine
	seed   uint64
	order  transition.OrderFunc

	active   map[string]struct{}
	target   map[string]struct{}
	nextKind transition.Kind
	inflight *transition.Transition

	effect Effect
}

// New creates a display instance over a grid and its segment graph.
func New(g *grid.Grid, graph *segmentgraph.Graph, opts Options) (*Display, error) {
	cfg := opts.Config
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("display config: %w", err)
	}

	order := opts.Order
	if order == nil {
		order = strokeorder.New(g, graph).Order
	}

	return &Display{
		id:     uuid.New(),
		grid:   g,
		graph:  graph,
		glyphs: opts.Glyphs,
		engine: transition.NewEngine(cfg, opts.Seed),
		seed:   opts.Seed,
		order:  order,
		active: make(map[string]struct{}),
	}, nil
}

// ID returns the instance identity.
func (d *Display) ID() uuid.UUID { return d.id }

// Config returns the transition config plans are generated with.
func (d *Display) Config() transition.Config { return d.engine.Config() }

// SetConfig replaces the transition config for future plans. The
// in-flight transition, if any, keeps playing under its old config.
func (d *Display) SetConfig(cfg transition.Config) error {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("display config: %w", err)
	}
	d.engine = transition.NewEngine(cfg, d.seed)
	return nil
}

// Effect returns the styling effect carried on switch updates.
func (d *Display) Effect() Effect { return d.effect }

// SetEffect selects the styling effect for subsequent updates.
func (d *Display) SetEffect(e Effect) { d.effect = e }

// SetGlyph stages the named glyph as the next target and reports
// whether the glyph is defined. An unknown name stages an empty
// target, so the display blanks rather than freezing on a typo.
// The plan is built on the next Tick.
func (d *Display) SetGlyph(name string, kind transition.Kind) bool {
	target, ok := d.glyphs.Active(name)
	d.target = target
	d.nextKind = kind
	return ok
}

// SetTarget stages an explicit segment set as the next target.
func (d *Display) SetTarget(ids []string, kind transition.Kind) {
	target := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		target[id] = struct{}{}
	}
	d.target = target
	d.nextKind = kind
}

// Clear stages an empty target, extinguishing the display.
func (d *Display) Clear(kind transition.Kind) {
	d.target = map[string]struct{}{}
	d.nextKind = kind
}

// Tick advances the display by one frame delta. When a step is due
// its updates are applied to the lit set and returned with true.
//
// A staged target builds a fresh transition first, replacing any
// in-flight one; the dropped plan's remaining steps are simply never
// applied. The lit set stays consistent because every plan is
// generated from the lit set as it stands at build time.
func (d *Display) Tick(dt time.Duration) (transition.Updates, bool) {
	if d.target != nil {
		plan := d.engine.Generate(d.nextKind, d.graph, d.active, d.target, d.order)
		d.inflight = transition.New(d.nextKind, plan, d.engine.Config().FrameDuration)
		d.target = nil
	}

	if d.inflight == nil {
		return transition.Updates{}, false
	}
	if !d.inflight.Tick(dt) {
		return transition.Updates{}, false
	}

	updates, ok := d.inflight.Advance()
	if d.inflight.Complete() {
		d.inflight = nil
	}
	if !ok {
		return transition.Updates{}, false
	}

	for id := range updates.On {
		d.active[id] = struct{}{}
	}
	for id := range updates.Off {
		delete(d.active, id)
	}
	return updates, true
}

// InTransition reports whether a transition is in flight or staged.
func (d *Display) InTransition() bool {
	return d.inflight != nil || d.target != nil
}

// Active returns the currently lit segment IDs, sorted.
func (d *Display) Active() []string {
	ids := make([]string, 0, len(d.active))
	for id := range d.active {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsActive reports whether a segment is currently lit.
func (d *Display) IsActive(id string) bool {
	_, ok := d.active[id]
	return ok
}

// ActiveCount returns the number of lit segments.
func (d *Display) ActiveCount() int { return len(d.active) }

// Grid returns the layout this display renders.
func (d *Display) Grid() *grid.Grid { return d.grid }

// Graph returns the segment connectivity graph.
func (d *Display) Graph() *segmentgraph.Graph { return d.graph }
