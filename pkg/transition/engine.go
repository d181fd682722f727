package transition

import (
	"maps"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
)

// Kind selects how a plan moves the display from one glyph to the
// next.
type Kind int

const (
	// KindImmediate applies every change in a single step.
	KindImmediate Kind = iota
	// KindRandom grows and shrinks the lit set randomly along the
	// segment graph.
	KindRandom
	// KindWriting clears the display, then draws the target glyph in
	// pen order, one segment per step.
	KindWriting
	// KindOverwrite draws the target glyph in pen order on top of the
	// current one, extinguishing stale segments at the end.
	KindOverwrite
)

var kindNames = map[Kind]string{
	KindImmediate: "immediate",
	KindRandom:    "random",
	KindWriting:   "writing",
	KindOverwrite: "overwrite",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "immediate"
}

// ParseKind converts a kind name to its Kind value. Unrecognized
// names fall back to KindImmediate.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindImmediate
}

// KindNames returns all recognized kind names, sorted.
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for _, n := range kindNames {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// forcedProgressAfter bounds the number of consecutive rejected draws
// before the next draw is accepted unconditionally. Without the bound
// a wandering of zero would never fill a step.
const forcedProgressAfter = 16

// OrderFunc produces the deterministic pen order used by writing and
// overwrite plans: the segments of target not in current, in drawing
// order. The stroke orderer provides one.
type OrderFunc func(current, target map[string]struct{}) []string

// Engine generates transition plans. The zero value is not usable;
// use NewEngine. An Engine is not safe for concurrent use because it
// owns its random source.
type Engine struct {
	cfg Config
	rng *rand.Rand
}

// NewEngine creates an engine with the given config and seed. The
// same seed and inputs always produce the same plan.
func NewEngine(cfg Config, seed uint64) *Engine {
	return &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

// Config returns the engine's config.
func (e *Engine) Config() Config { return e.cfg }

// Generate produces a plan of the given kind moving the display from
// the current lit set to the target set.
//
// The order function is required for KindWriting and KindOverwrite
// and ignored otherwise. An empty target with an empty current yields
// an empty plan.
func (e *Engine) Generate(kind Kind, graph *segmentgraph.Graph, current, target map[string]struct{}, order OrderFunc) Plan {
	switch kind {
	case KindRandom:
		return e.GenerateChanges(graph, current, target, nil)
	case KindWriting:
		plan := GenerateImmediate(current, nil)
		plan = append(plan, ConvertToChanges(order(nil, target), nil, target)...)
		return plan
	case KindOverwrite:
		return ConvertToChanges(order(nil, target), current, target)
	}
	return GenerateImmediate(current, target)
}

// GenerateImmediate returns a single step switching off everything in
// current but not target and on everything in target but not current.
// Identical sets yield an empty plan, not a plan with one empty step,
// so a no-op transition is complete before its first frame.
func GenerateImmediate(current, target map[string]struct{}) Plan {
	var step Step
	for _, id := range sortedIDs(current) {
		if _, keep := target[id]; !keep {
			step = append(step, Change{ID: id, On: false})
		}
	}
	for _, id := range sortedIDs(target) {
		if _, lit := current[id]; !lit {
			step = append(step, Change{ID: id, On: true})
		}
	}
	if len(step) == 0 {
		return nil
	}
	return Plan{step}
}

// ConvertToChanges turns a pen order into a plan: one single-change
// step per ordered segment, then one trailing step extinguishing
// everything in current that the target does not keep. The trailing
// step is omitted when there is nothing to extinguish.
func ConvertToChanges(order []string, current, target map[string]struct{}) Plan {
	var plan Plan
	for _, id := range order {
		plan = append(plan, Step{{ID: id, On: true}})
	}

	var off Step
	for _, id := range sortedIDs(current) {
		if _, keep := target[id]; !keep {
			off = append(off, Change{ID: id, On: false})
		}
	}
	if len(off) > 0 {
		plan = append(plan, off)
	}
	return plan
}

// pendingChange is a queued switch with the anchor segment its group
// clusters around during distribution.
type pendingChange struct {
	id     string
	anchor string
	on     bool
}

// GenerateChanges builds a randomized plan from current to target.
//
// Every change is anchored to the nearest currently lit segment it
// connects to, so related changes land in the same step and the glyph
// appears to grow and dissolve along its own geometry. Segments with
// no lit connection anchor to themselves. The styled predicate, when
// non-nil, drops target segments that are already lit in the
// requested style; a nil predicate treats every lit segment as
// correctly styled.
//
// The resulting plan covers exactly the symmetric difference of the
// two sets, each segment once.
func (e *Engine) GenerateChanges(graph *segmentgraph.Graph, current, target map[string]struct{}, styled func(id string) bool) Plan {
	pending := collectPending(graph, current, target, styled)
	if len(pending) == 0 {
		return nil
	}

	steps := e.cfg.Steps
	if steps < 1 {
		steps = 1
	}
	perStep := int(math.Ceil(float64(len(pending)) * e.cfg.Density))
	plan := make(Plan, steps)

	for i := range plan {
		available := min(perStep, len(pending))
		taken := 0
		rejected := 0
		for taken < available && len(pending) > 0 {
			if e.rng.Float64() >= e.cfg.Wandering && rejected < forcedProgressAfter {
				rejected++
				continue
			}
			rejected = 0

			idx := e.rng.IntN(len(pending))
			accepted := pending[idx]
			pending = slices.Delete(pending, idx, idx+1)
			plan[i] = append(plan[i], Change{ID: accepted.id, On: accepted.on})
			taken++

			// Pull changes sharing the anchor into the same step.
			pending = slices.DeleteFunc(pending, func(p pendingChange) bool {
				if p.anchor != accepted.anchor || taken >= available {
					return false
				}
				plan[i] = append(plan[i], Change{ID: p.id, On: p.on})
				taken++
				return true
			})
		}
	}

	// Whatever did not fit goes into the final step.
	for _, p := range pending {
		plan[len(plan)-1] = append(plan[len(plan)-1], Change{ID: p.id, On: p.on})
	}

	for len(plan) > 0 && len(plan[len(plan)-1]) == 0 {
		plan = plan[:len(plan)-1]
	}
	return plan
}

// collectPending lists every required change with its anchor, in
// deterministic order.
func collectPending(graph *segmentgraph.Graph, current, target map[string]struct{}, styled func(id string) bool) []pendingChange {
	var pending []pendingChange

	litOther := func(self string) func(string) bool {
		return func(id string) bool {
			if id == self {
				return false
			}
			_, lit := current[id]
			return lit
		}
	}

	for _, id := range sortedIDs(current) {
		if _, keep := target[id]; keep {
			continue
		}
		anchor, ok := graph.Nearest(id, litOther(id))
		if !ok {
			anchor = id
		}
		pending = append(pending, pendingChange{id: id, anchor: anchor, on: false})
	}

	for _, id := range sortedIDs(target) {
		if _, lit := current[id]; lit && (styled == nil || styled(id)) {
			continue
		}
		anchor, ok := graph.Nearest(id, litOther(id))
		if !ok {
			anchor = id
		}
		pending = append(pending, pendingChange{id: id, anchor: anchor, on: true})
	}
	return pending
}

func sortedIDs(set map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(set))
}
