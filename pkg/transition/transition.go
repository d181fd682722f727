// Package transition plans and plays the switch sequences that move a
// segmented display from one glyph to the next. A plan is a list of
// steps; each step is a batch of segment on/off changes applied in a
// single frame.
//
// Plans are produced by an [Engine] (randomized growth along the
// segment graph) or converted from a deterministic pen order, and
// consumed by a [Transition] cursor that a display instance ticks
// with real frame deltas. A transition does not have to finish before
// the next one replaces it.
package transition

import "time"

// Change switches a single segment on or off.
type Change struct {
	ID string
	On bool
}

// Step is a batch of changes applied together in one frame.
type Step []Change

// Plan is a complete transition: steps played in order, one per frame
// interval.
type Plan []Step

// IDs returns every segment ID mentioned anywhere in the plan, in
// first-appearance order.
func (p Plan) IDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, step := range p {
		for _, c := range step {
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Updates is the net effect of one advanced step, split into the
// segments to light and the segments to extinguish. The two sets are
// disjoint.
type Updates struct {
	On  map[string]struct{}
	Off map[string]struct{}
}

// Transition is the runtime cursor over a plan. It is owned by a
// single display instance and is not safe for concurrent use.
// Replacing an in-flight transition with a new one is always allowed;
// the remaining steps are simply dropped.
type Transition struct {
	kind          Kind
	plan          Plan
	current       int
	frameTimer    time.Duration
	frameDuration time.Duration
}

// New creates a transition cursor over a plan. Steps advance every
// frameDuration of accumulated Tick time.
func New(kind Kind, plan Plan, frameDuration time.Duration) *Transition {
	return &Transition{
		kind:          kind,
		plan:          plan,
		frameDuration: frameDuration,
	}
}

// Kind returns the animation kind the plan was generated with.
func (t *Transition) Kind() Kind { return t.kind }

// Tick accumulates elapsed time and reports whether a step is due.
// The frame timer keeps its remainder, so uneven frame deltas do not
// drift the step rate. Immediate transitions are always due.
func (t *Transition) Tick(dt time.Duration) bool {
	if t.kind == KindImmediate {
		return true
	}
	t.frameTimer += dt
	if t.frameTimer >= t.frameDuration {
		t.frameTimer -= t.frameDuration
		return true
	}
	return false
}

// Advance applies the next step and returns its updates and true, or
// zero updates and false when the plan is exhausted. When a segment
// appears on both sides within one step the off wins, keeping the
// sets disjoint.
func (t *Transition) Advance() (Updates, bool) {
	if t.current >= len(t.plan) {
		return Updates{}, false
	}
	step := t.plan[t.current]
	t.current++

	u := Updates{
		On:  make(map[string]struct{}),
		Off: make(map[string]struct{}),
	}
	for _, c := range step {
		if c.On {
			u.On[c.ID] = struct{}{}
		} else {
			u.Off[c.ID] = struct{}{}
		}
	}
	for id := range u.Off {
		delete(u.On, id)
	}
	return u, true
}

// Complete reports whether every step has been advanced.
func (t *Transition) Complete() bool { return t.current >= len(t.plan) }

// Remaining returns the number of steps not yet advanced.
func (t *Transition) Remaining() int { return len(t.plan) - t.current }
