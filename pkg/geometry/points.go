package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Extremal-point scans over a primitive list. Each returns the full
// coordinate of the extreme point, not just the extreme component, so
// callers can use the other axis for tie-breaking and flow scoring.
// An empty primitive list yields the zero coordinate.

// Leftmost returns the point with the smallest X.
func Leftmost(prims []Primitive) geom.Coord {
	return scan(prims, func(best, p geom.Coord) bool { return p.X < best.X })
}

// Rightmost returns the point with the largest X.
func Rightmost(prims []Primitive) geom.Coord {
	return scan(prims, func(best, p geom.Coord) bool { return p.X > best.X })
}

// Topmost returns the point with the smallest Y (Y grows downward).
func Topmost(prims []Primitive) geom.Coord {
	return scan(prims, func(best, p geom.Coord) bool { return p.Y < best.Y })
}

// Bottommost returns the point with the largest Y.
func Bottommost(prims []Primitive) geom.Coord {
	return scan(prims, func(best, p geom.Coord) bool { return p.Y > best.Y })
}

func scan(prims []Primitive, better func(best, p geom.Coord) bool) geom.Coord {
	var best geom.Coord
	found := false
	for _, prim := range prims {
		for _, p := range prim.AllPoints() {
			if !found || better(best, p) {
				best = p
				found = true
			}
		}
	}
	return best
}

// Average returns the centroid of all defining points.
func Average(prims []Primitive) geom.Coord {
	var sum geom.Coord
	count := 0
	for _, prim := range prims {
		for _, p := range prim.AllPoints() {
			sum = sum.Plus(p)
			count++
		}
	}
	if count == 0 {
		return geom.Coord{}
	}
	return sum.Times(1 / float64(count))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b geom.Coord) geom.Coord {
	return a.Plus(b).Times(0.5)
}

// Bounds returns the axis-aligned bounding rectangle of all defining
// points, or a zero rect for an empty list.
func Bounds(prims []Primitive) geom.Rect {
	var r geom.Rect
	found := false
	for _, prim := range prims {
		for _, p := range prim.AllPoints() {
			if !found {
				r = geom.Rect{Min: p, Max: p}
				found = true
				continue
			}
			r.ExpandToContainCoord(p)
		}
	}
	return r
}

// AlmostEqual reports whether two coordinates are within tol of each
// other in Euclidean distance.
func AlmostEqual(a, b geom.Coord, tol float64) bool {
	return a.DistanceFrom(b) <= tol
}

// nan guards: layouts authored by hand occasionally contain degenerate
// primitives. Finite reports whether a coordinate has finite components.
func Finite(p geom.Coord) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
