package geometry

import "github.com/jbeda/geom"

// Kind classifies a segment's dominant shape for stroke ordering.
// Arc kinds name the quadrant of the circle the arc occupies.
type Kind int

const (
	KindUnknown Kind = iota
	KindHorizontal
	KindVertical
	KindArcTopLeft
	KindArcTopRight
	KindArcBottomLeft
	KindArcBottomRight
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindHorizontal:     "horizontal",
	KindVertical:       "vertical",
	KindArcTopLeft:     "arc-top-left",
	KindArcTopRight:    "arc-top-right",
	KindArcBottomLeft:  "arc-bottom-left",
	KindArcBottomRight: "arc-bottom-right",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind converts a kind name back to its Kind value.
// Unrecognized names map to KindUnknown.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s {
			return k
		}
	}
	return KindUnknown
}

// IsArc reports whether the kind is one of the four arc quadrants.
func (k Kind) IsArc() bool {
	switch k {
	case KindArcTopLeft, KindArcTopRight, KindArcBottomLeft, KindArcBottomRight:
		return true
	}
	return false
}

// Classify determines the kind of a single primitive.
//
// Lines are horizontal when their X extent exceeds their Y extent.
// Arcs are classified by comparing the first and last sampled point:
// with Y growing downward, an arc that starts above where it ends and
// ends to the left of where it starts occupies the top-left quadrant,
// and so on. Circles have no dominant direction.
func Classify(p Primitive) Kind {
	switch p := p.(type) {
	case Line:
		dx := abs(p.P2.X - p.P1.X)
		dy := abs(p.P2.Y - p.P1.Y)
		if dx > dy {
			return KindHorizontal
		}
		return KindVertical
	case Arc:
		if len(p.Points) < 2 {
			return KindUnknown
		}
		return classifyArc(p.Points[0], p.Points[len(p.Points)-1])
	case Circle:
		return KindUnknown
	}
	return KindUnknown
}

// ClassifyAll determines the kind of a segment from its primitive list.
// The first primitive decides; segments are authored with a single
// dominant shape and any trailing primitives are decorations.
func ClassifyAll(prims []Primitive) Kind {
	if len(prims) == 0 {
		return KindUnknown
	}
	return Classify(prims[0])
}

func classifyArc(start, end geom.Coord) Kind {
	switch {
	case start.Y < end.Y && end.X < start.X:
		return KindArcTopLeft
	case start.Y < end.Y && end.X > start.X:
		return KindArcTopRight
	case start.Y > end.Y && end.X < start.X:
		return KindArcBottomLeft
	case start.Y > end.Y && end.X > start.X:
		return KindArcBottomRight
	}
	return KindUnknown
}

// StartPoint returns the pen-entry position of a primitive list for a
// given kind: where a writer's stroke would naturally begin on that
// shape. Horizontal strokes enter from the left, vertical strokes from
// the top, arcs from the extremal point of their quadrant, and unknown
// shapes use their centroid.
func StartPoint(prims []Primitive, kind Kind) geom.Coord {
	switch kind {
	case KindHorizontal, KindArcBottomLeft:
		return Leftmost(prims)
	case KindVertical, KindArcTopLeft, KindArcTopRight:
		return Topmost(prims)
	case KindArcBottomRight:
		return Rightmost(prims)
	default:
		return Average(prims)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
