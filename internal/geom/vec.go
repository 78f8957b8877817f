// Package geom provides the 3D vector/matrix primitives and the
// least-squares superposition used for base reference frames.
package geom

import "math"

// Vec is a point or direction in 3D space.
type Vec struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec {
	return Vec{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of v and w.
func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Dist returns the distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	return v.Sub(w).Norm()
}

// Normalize returns v scaled to unit length. A zero-length vector is
// returned unchanged rather than producing NaNs; callers treat it as a
// degenerate direction.
func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Centroid returns the average position of a set of points.
func Centroid(points []Vec) Vec {
	var c Vec
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(points)))
}

// Angle returns the angle between v and w in degrees, in [0, 180].
// Zero-length input yields 0 rather than an error.
func Angle(v, w Vec) float64 {
	nv, nw := v.Norm(), w.Norm()
	if nv == 0 || nw == 0 {
		return 0
	}
	cos := v.Dot(w) / (nv * nw)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// SignedAngle returns the angle from v to w in degrees, signed by the
// orientation of the rotation about ref.
func SignedAngle(v, w, ref Vec) float64 {
	a := Angle(v, w)
	if v.Cross(w).Dot(ref) < 0 {
		return -a
	}
	return a
}
