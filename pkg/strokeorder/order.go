package strokeorder

import (
	"slices"

	"github.com/jbeda/geom"

	"github.com/glyphsign/glyphsign/pkg/geometry"
)

// kindPriority ranks segment kinds for stroke tie-breaking; lower
// draws first.
func kindPriority(k geometry.Kind) int {
	switch k {
	case geometry.KindArcTopLeft:
		return 1
	case geometry.KindArcTopRight:
		return 2
	case geometry.KindArcBottomLeft:
		return 3
	case geometry.KindArcBottomRight:
		return 4
	case geometry.KindHorizontal:
		return 5
	case geometry.KindVertical:
		return 6
	}
	return 7
}

// identifyConnections finds the directed stroke adjacency: for each
// stroke, the other strokes reachable from its exit. The exit is the
// end segment, except for arc strokes where the pen may leave from
// any member. Connection lists are deduplicated and ordered by the
// target stroke's position in the input slice.
func (g *Generator) identifyConnections(strokes []*Stroke) map[*Stroke][]*Stroke {
	strokeOf := make(map[string]*Stroke)
	index := make(map[*Stroke]int, len(strokes))
	for i, s := range strokes {
		index[s] = i
		for _, id := range s.Members {
			strokeOf[id] = s
		}
	}

	conns := make(map[*Stroke][]*Stroke)
	for _, s := range strokes {
		exits := []string{s.EndID}
		if s.Kind.IsArc() {
			exits = s.Members
		}

		var targets []*Stroke
		for _, exit := range exits {
			for _, neighbor := range g.graph.NeighborIDs(exit) {
				other, ok := strokeOf[neighbor]
				if !ok || other == s {
					continue
				}
				if !slices.Contains(targets, other) {
					targets = append(targets, other)
				}
			}
		}
		if len(targets) > 0 {
			slices.SortFunc(targets, func(a, b *Stroke) int {
				return index[a] - index[b]
			})
			conns[s] = targets
		}
	}
	return conns
}

// positionEpsilon is how close two stroke starts must be before
// positional ordering gives way to the kind tie-break.
const positionEpsilon = 1.0

// orderStrokesByPosition sorts strokes into writing order and then
// splices connected strokes directly after the stroke they hang off.
//
// The sort follows quadrant priority around the grid center (the
// top-left quadrant first, then top-right, then the bottom half),
// then top to bottom, then left to right. Strokes starting at nearly
// the same point fall back to a fixed kind precedence: vertical
// before horizontal, the left arc of each pair before the right one,
// lines before arcs.
func orderStrokesByPosition(strokes []*Stroke, conns map[*Stroke][]*Stroke, center geom.Coord) []*Stroke {
	sorted := slices.Clone(strokes)
	slices.SortStableFunc(sorted, func(a, b *Stroke) int {
		if q := quadrantRank(a.Start, center) - quadrantRank(b.Start, center); q != 0 {
			return q
		}
		if dy := a.Start.Y - b.Start.Y; abs(dy) > positionEpsilon {
			if dy < 0 {
				return -1
			}
			return 1
		}
		if dx := a.Start.X - b.Start.X; abs(dx) > positionEpsilon {
			if dx < 0 {
				return -1
			}
			return 1
		}
		return compareKinds(a.Kind, b.Kind)
	})

	// Splice: every stroke pulls its connected strokes in right
	// behind it, transitively, so dependent strokes never wait for
	// the positional order to reach them.
	out := make([]*Stroke, 0, len(sorted))
	placed := make(map[*Stroke]bool, len(sorted))
	var place func(s *Stroke)
	place = func(s *Stroke) {
		if placed[s] {
			return
		}
		placed[s] = true
		out = append(out, s)
		for _, c := range conns[s] {
			place(c)
		}
	}
	for _, s := range sorted {
		place(s)
	}
	return out
}

// quadrantRank orders the quadrants of the grid for writing:
// top-left strictly first, then top-right, then the bottom half,
// where left-to-right ordering separates bottom-left from
// bottom-right.
func quadrantRank(p, center geom.Coord) int {
	top := p.Y <= center.Y
	left := p.X < center.X
	switch {
	case top && left:
		return 0
	case top:
		return 1
	}
	return 2
}

// compareKinds is the tie-break for strokes starting at the same
// point.
func compareKinds(a, b geometry.Kind) int {
	switch {
	case a == b:
		return 0
	case a == geometry.KindVertical && b == geometry.KindHorizontal:
		return -1
	case a == geometry.KindHorizontal && b == geometry.KindVertical:
		return 1
	case a.IsArc() != b.IsArc():
		// Lines before arcs.
		if b.IsArc() {
			return -1
		}
		return 1
	}
	return kindPriority(a) - kindPriority(b)
}

// linearize emits the final segment order. Each stroke contributes
// its members; immediately afterwards its best unprocessed connected
// stroke is emitted, keeping strokes that share a joint together
// even when the positional order would separate them.
func linearize(ordered []*Stroke, conns map[*Stroke][]*Stroke) []string {
	var out []string
	processed := make(map[*Stroke]bool, len(ordered))

	emit := func(s *Stroke) {
		processed[s] = true
		out = append(out, s.Members...)
	}

	for _, s := range ordered {
		if processed[s] {
			continue
		}
		emit(s)
		if next := bestConnected(conns[s], processed); next != nil {
			emit(next)
		}
	}
	return out
}

// bestConnected picks the connected stroke to draw next: lowest kind
// priority, then leftmost start, then topmost start.
func bestConnected(candidates []*Stroke, processed map[*Stroke]bool) *Stroke {
	var best *Stroke
	for _, c := range candidates {
		if processed[c] {
			continue
		}
		if best == nil || connectedLess(c, best) {
			best = c
		}
	}
	return best
}

func connectedLess(a, b *Stroke) bool {
	if pa, pb := kindPriority(a.Kind), kindPriority(b.Kind); pa != pb {
		return pa < pb
	}
	if a.Start.X != b.Start.X {
		return a.Start.X < b.Start.X
	}
	return a.Start.Y < b.Start.Y
}
