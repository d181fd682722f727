// Package geometry defines the primitive shapes that make up display
// segments and the point-level helpers used to reason about them.
//
// A segment on the display resolves to one or more primitives: a line
// between two points, an arc sampled as an ordered polyline, or a full
// circle. All primitives live in a shared coordinate space where the Y
// axis grows downward (SVG viewbox convention), so "topmost" always
// means smallest Y.
//
// Primitives are immutable value types. The package never mutates
// geometry it is handed; consumers such as the segment graph derive
// connectivity purely from the points exposed here.
package geometry

import "github.com/jbeda/geom"

// Primitive is a closed set of drawable shapes. The only implementations
// are Line, Arc, and Circle; consumers dispatch with a type switch.
type Primitive interface {
	// Endpoints returns the representative connection points of the
	// primitive: both endpoints for a line, the first and last sampled
	// point for an arc, and the center for a circle.
	Endpoints() []geom.Coord

	// AllPoints returns every point that defines the primitive, used
	// for extremal-point scans. For circles this is just the center.
	AllPoints() []geom.Coord

	isPrimitive()
}

// Line is a straight segment between two points.
type Line struct {
	P1, P2 geom.Coord
}

// Arc is a circular arc sampled as an ordered polyline.
// A valid arc has at least two points.
type Arc struct {
	Points []geom.Coord
}

// Circle is a full circle given by center and radius.
type Circle struct {
	Center geom.Coord
	Radius float64
}

func (Line) isPrimitive()   {}
func (Arc) isPrimitive()    {}
func (Circle) isPrimitive() {}

// Endpoints returns both endpoints of the line.
func (l Line) Endpoints() []geom.Coord { return []geom.Coord{l.P1, l.P2} }

// AllPoints returns both endpoints of the line.
func (l Line) AllPoints() []geom.Coord { return []geom.Coord{l.P1, l.P2} }

// Endpoints returns the first and last sampled point of the arc.
// An arc with fewer than two points contributes what it has.
func (a Arc) Endpoints() []geom.Coord {
	switch len(a.Points) {
	case 0:
		return nil
	case 1:
		return []geom.Coord{a.Points[0]}
	default:
		return []geom.Coord{a.Points[0], a.Points[len(a.Points)-1]}
	}
}

// AllPoints returns every sampled point of the arc.
func (a Arc) AllPoints() []geom.Coord { return a.Points }

// Endpoints returns the center of the circle. Circles connect to other
// segments through their center, matching how concentric fixtures are
// authored in tile layouts.
func (c Circle) Endpoints() []geom.Coord { return []geom.Coord{c.Center} }

// AllPoints returns the center of the circle.
func (c Circle) AllPoints() []geom.Coord { return []geom.Coord{c.Center} }

// EndpointsOf collects the representative endpoints of every primitive
// in the list, in order.
func EndpointsOf(prims []Primitive) []geom.Coord {
	var points []geom.Coord
	for _, p := range prims {
		points = append(points, p.Endpoints()...)
	}
	return points
}
