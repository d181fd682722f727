// Package strokeorder computes the deterministic pen order in which a
// glyph's segments are drawn, imitating hand-written stroke flow:
// connected same-kind segments form strokes, strokes are ordered
// top-left to bottom-right the way Hangeul is written, and segments
// inside a stroke follow the pen direction their kind implies.
//
// The whole pipeline is free of randomness. Unknown segment IDs are
// skipped wherever they appear; glyph content may be stale relative
// to the layout.
package strokeorder

import (
	"maps"
	"slices"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
)

// Stroke is a run of compatible connected segments drawn in one pen
// motion.
type Stroke struct {
	// Members in drawing order after the flow walk.
	Members []string
	// StartID is where the pen enters the stroke.
	StartID string
	// EndID is where the pen leaves the stroke, set by the walk.
	EndID string
	// Kind is the dominant segment kind of the members.
	Kind geometry.Kind
	// Start is the pen-entry position of StartID.
	Start geom.Coord
}

// Generator computes stroke orders for one layout. It holds the grid
// and its connectivity graph; both are read-only, so a Generator is
// safe for concurrent use.
type Generator struct {
	grid  *grid.Grid
	graph *segmentgraph.Graph
}

// New creates a generator for a layout and its graph.
func New(g *grid.Grid, graph *segmentgraph.Graph) *Generator {
	return &Generator{grid: g, graph: graph}
}

// Order returns the segments of target not in current, in pen order.
// Returns nil when there is nothing to activate. The signature
// matches transition.OrderFunc.
func (g *Generator) Order(current, target map[string]struct{}) []string {
	toActivate := make(map[string]struct{})
	for id := range target {
		if _, lit := current[id]; lit {
			continue
		}
		if _, ok := g.grid.Segment(id); !ok {
			continue
		}
		toActivate[id] = struct{}{}
	}
	if len(toActivate) == 0 {
		return nil
	}

	strokes := g.groupStrokes(toActivate)
	for _, s := range strokes {
		g.orderSegmentsInStroke(s)
	}
	conns := g.identifyConnections(strokes)
	ordered := orderStrokesByPosition(strokes, conns, g.grid.Center())
	return linearize(ordered, conns)
}

// Strokes returns the strokes of the given segment set in final
// drawing order. Exposed for inspection tooling; Order is the normal
// entry point.
func (g *Generator) Strokes(ids map[string]struct{}) []*Stroke {
	present := make(map[string]struct{}, len(ids))
	for id := range ids {
		if _, ok := g.grid.Segment(id); ok {
			present[id] = struct{}{}
		}
	}
	strokes := g.groupStrokes(present)
	for _, s := range strokes {
		g.orderSegmentsInStroke(s)
	}
	conns := g.identifyConnections(strokes)
	return orderStrokesByPosition(strokes, conns, g.grid.Center())
}

// groupStrokes clusters the set into strokes: breadth-first over
// graph connections, admitting a neighbor when its kind is compatible
// with the segment it was reached from.
func (g *Generator) groupStrokes(ids map[string]struct{}) []*Stroke {
	var strokes []*Stroke
	visited := make(map[string]struct{})

	sorted := slices.Sorted(maps.Keys(ids))
	for _, seed := range sorted {
		if _, done := visited[seed]; done {
			continue
		}

		var members []string
		queue := []string{seed}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			if _, done := visited[current]; done {
				continue
			}
			visited[current] = struct{}{}
			members = append(members, current)

			currentKind := g.grid.Kind(current)
			for _, neighbor := range g.graph.NeighborIDs(current) {
				if _, wanted := ids[neighbor]; !wanted {
					continue
				}
				if _, done := visited[neighbor]; done {
					continue
				}
				if compatible(currentKind, g.grid.Kind(neighbor)) {
					queue = append(queue, neighbor)
				}
			}
		}

		slices.Sort(members)
		kind := g.dominantKind(members)
		start := g.strokeStart(members, kind)
		strokes = append(strokes, &Stroke{
			Members: members,
			StartID: start,
			Kind:    kind,
			Start:   g.grid.StartPoint(start),
		})
	}
	return strokes
}

// compatible reports whether two segment kinds may share a stroke:
// identical kinds always do, and arc quadrants that are adjacent on a
// circle do in either direction.
func compatible(a, b geometry.Kind) bool {
	if a == b {
		return true
	}
	if !a.IsArc() || !b.IsArc() {
		return false
	}
	adjacent := [][2]geometry.Kind{
		{geometry.KindArcTopLeft, geometry.KindArcTopRight},
		{geometry.KindArcTopRight, geometry.KindArcBottomRight},
		{geometry.KindArcBottomRight, geometry.KindArcBottomLeft},
		{geometry.KindArcBottomLeft, geometry.KindArcTopLeft},
	}
	for _, pair := range adjacent {
		if (a == pair[0] && b == pair[1]) || (a == pair[1] && b == pair[0]) {
			return true
		}
	}
	return false
}

// dominantKind is the most common kind among the members; priority
// order breaks ties.
func (g *Generator) dominantKind(members []string) geometry.Kind {
	counts := make(map[geometry.Kind]int)
	for _, id := range members {
		counts[g.grid.Kind(id)]++
	}

	best := geometry.KindUnknown
	bestCount := -1
	for kind, count := range counts {
		if count > bestCount || (count == bestCount && kindPriority(kind) < kindPriority(best)) {
			best = kind
			bestCount = count
		}
	}
	return best
}

// strokeStart picks the pen-entry member for a stroke of the given
// dominant kind. Members are pre-sorted, so equal positions resolve
// to the smallest ID.
func (g *Generator) strokeStart(members []string, kind geometry.Kind) string {
	pos := func(id string) geom.Coord { return g.grid.StartPoint(id) }

	pick := func(better func(a, b geom.Coord) bool) string {
		best := members[0]
		for _, id := range members[1:] {
			if better(pos(id), pos(best)) {
				best = id
			}
		}
		return best
	}

	switch kind {
	case geometry.KindHorizontal, geometry.KindArcBottomLeft:
		return pick(func(a, b geom.Coord) bool { return a.X < b.X })
	case geometry.KindVertical, geometry.KindArcTopLeft, geometry.KindArcTopRight:
		return pick(func(a, b geom.Coord) bool { return a.Y < b.Y })
	case geometry.KindArcBottomRight:
		return pick(func(a, b geom.Coord) bool { return a.X > b.X })
	}
	// Topmost then leftmost.
	return pick(func(a, b geom.Coord) bool {
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

// orderSegmentsInStroke rewrites the stroke's members into drawing
// order: a greedy walk from StartID to the lowest-scoring unvisited
// connected neighbor, jumping to the first unvisited member when the
// pen cannot continue. Sets EndID to the final member.
func (g *Generator) orderSegmentsInStroke(s *Stroke) {
	inStroke := make(map[string]struct{}, len(s.Members))
	for _, id := range s.Members {
		inStroke[id] = struct{}{}
	}

	ordered := make([]string, 0, len(s.Members))
	visited := make(map[string]struct{})
	current := s.StartID
	ordered = append(ordered, current)
	visited[current] = struct{}{}

	for len(ordered) < len(s.Members) {
		next := ""
		bestScore := 0.0
		for _, neighbor := range g.graph.NeighborIDs(current) {
			if _, member := inStroke[neighbor]; !member {
				continue
			}
			if _, done := visited[neighbor]; done {
				continue
			}
			score := g.flowScore(current, neighbor, s.Kind)
			if next == "" || score < bestScore {
				next = neighbor
				bestScore = score
			}
		}

		if next == "" {
			// Pen lift: jump to the first unvisited member.
			for _, id := range s.Members {
				if _, done := visited[id]; !done {
					next = id
					break
				}
			}
		}
		ordered = append(ordered, next)
		visited[next] = struct{}{}
		current = next
	}

	s.Members = ordered
	s.EndID = ordered[len(ordered)-1]
}

// flowScore rates moving the pen from one segment to the next within
// a stroke; lower is better.
//
// Horizontal strokes prefer the nearest segment to the right and
// penalize moving left; vertical strokes mirror that downward. Arc
// strokes prefer clockwise-adjacent quadrants, tolerate
// counter-clockwise ones, and push everything else away. Anything
// else falls back to plain distance.
func (g *Generator) flowScore(current, next string, strokeKind geometry.Kind) float64 {
	currentPos := g.grid.StartPoint(current)
	nextPos := g.grid.StartPoint(next)

	if strokeKind.IsArc() {
		return arcFlowScore(g.grid.Kind(current), g.grid.Kind(next))
	}

	switch strokeKind {
	case geometry.KindHorizontal:
		score := abs(nextPos.X-currentPos.X) * 10
		if nextPos.X < currentPos.X {
			score += 1000
		}
		return score
	case geometry.KindVertical:
		score := abs(nextPos.Y-currentPos.Y) * 10
		if nextPos.Y < currentPos.Y {
			score += 1000
		}
		return score
	}
	return currentPos.DistanceFrom(nextPos)
}

func arcFlowScore(from, to geometry.Kind) float64 {
	clockwise := map[geometry.Kind]geometry.Kind{
		geometry.KindArcTopLeft:     geometry.KindArcTopRight,
		geometry.KindArcTopRight:    geometry.KindArcBottomRight,
		geometry.KindArcBottomRight: geometry.KindArcBottomLeft,
		geometry.KindArcBottomLeft:  geometry.KindArcTopLeft,
	}
	if clockwise[from] == to {
		return 0
	}
	if clockwise[to] == from {
		return 3
	}
	return 100
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
