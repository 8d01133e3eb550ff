package geometry

import "github.com/golang/geo/r2"

// PolygonsIntersect reports whether two convex polygons intersect, using the
// separating-axis theorem: the polygons are disjoint iff some edge normal of
// either polygon projects them onto disjoint intervals. The test short-circuits
// on the first separating axis found.
//
// Degenerate polygons (fewer than 3 vertices) never intersect. Polygons that
// merely share a boundary point project onto touching intervals, which the
// strict disjointness test does not separate, so exact contact counts as
// intersecting.
func PolygonsIntersect(a, b []r2.Point) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	return !hasSeparatingAxis(a, b) && !hasSeparatingAxis(b, a)
}

// hasSeparatingAxis tests the edge normals of poly against both polygons.
func hasSeparatingAxis(poly, other []r2.Point) bool {
	for i := range poly {
		p1 := poly[i]
		p2 := poly[(i+1)%len(poly)]

		// Perpendicular of the edge vector. A zero-length edge yields a zero
		// normal, which carries no separating information.
		axis := r2.Point{X: p1.Y - p2.Y, Y: p2.X - p1.X}
		if axis.X == 0 && axis.Y == 0 {
			continue
		}

		minA, maxA := project(poly, axis)
		minB, maxB := project(other, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}

// project returns the interval covered by the polygon's vertices along axis.
// The axis need not be normalized: both intervals scale identically.
func project(poly []r2.Point, axis r2.Point) (min, max float64) {
	min = poly[0].Dot(axis)
	max = min
	for _, p := range poly[1:] {
		d := p.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}
