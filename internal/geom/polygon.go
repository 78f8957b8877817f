package geom

import "sort"

// Point2 is a point in the 2D coordinate system of a projection plane.
type Point2 struct {
	X, Y float64
}

// PlaneBasis returns two orthonormal vectors spanning the plane with unit
// normal n. The choice of basis is deterministic for a given normal.
func PlaneBasis(n Vec) (Vec, Vec) {
	seed := Vec{1, 0, 0}
	if absf(n.X) > 0.9 {
		seed = Vec{0, 1, 0}
	}
	u := seed.Cross(n).Normalize()
	v := n.Cross(u).Normalize()
	return u, v
}

// ProjectToPlane maps p into the 2D coordinates of the plane through origin
// with basis (u, v).
func ProjectToPlane(p, origin, u, v Vec) Point2 {
	d := p.Sub(origin)
	return Point2{d.Dot(u), d.Dot(v)}
}

// ConvexHull returns the convex hull of the points in counter-clockwise
// order (Andrew's monotone chain). Fewer than 3 input points come back
// unchanged.
func ConvexHull(points []Point2) []Point2 {
	if len(points) < 3 {
		return points
	}
	pts := make([]Point2, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	var lower, upper []Point2
	for _, p := range pts {
		for len(lower) >= 2 && cross2(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross2(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// PolygonArea returns the area of a simple polygon given in order
// (shoelace formula; always non-negative).
func PolygonArea(poly []Point2) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// OverlapArea returns the area of the intersection of two convex polygons,
// each given in counter-clockwise order (Sutherland-Hodgman clipping).
func OverlapArea(subject, clip []Point2) float64 {
	if len(subject) < 3 || len(clip) < 3 {
		return 0
	}
	out := make([]Point2, len(subject))
	copy(out, subject)
	for i := range clip {
		a := clip[i]
		b := clip[(i+1)%len(clip)]
		out = clipByEdge(out, a, b)
		if len(out) == 0 {
			return 0
		}
	}
	return PolygonArea(out)
}

// clipByEdge keeps the part of poly on the left side of the directed edge
// a -> b.
func clipByEdge(poly []Point2, a, b Point2) []Point2 {
	var out []Point2
	for i := range poly {
		cur := poly[i]
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn := cross2(a, b, cur) >= 0
		prevIn := cross2(a, b, prev) >= 0
		if curIn {
			if !prevIn {
				out = append(out, edgeIntersect(prev, cur, a, b))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, edgeIntersect(prev, cur, a, b))
		}
	}
	return out
}

// edgeIntersect returns the intersection of segment p1-p2 with the infinite
// line through a-b.
func edgeIntersect(p1, p2, a, b Point2) Point2 {
	dx, dy := b.X-a.X, b.Y-a.Y
	ex, ey := p2.X-p1.X, p2.Y-p1.Y
	den := dx*ey - dy*ex
	if den == 0 {
		return p1
	}
	t := (dx*(a.Y-p1.Y) - dy*(a.X-p1.X)) / den
	return Point2{p1.X + t*ex, p1.Y + t*ey}
}

func cross2(o, a, b Point2) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
