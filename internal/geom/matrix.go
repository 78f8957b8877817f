package geom

import "math"

// Matrix is a 3x3 matrix in row-major order. Rotation matrices store the
// local x/y/z axes of a reference frame as columns.
type Matrix [3][3]float64

// Identity is the 3x3 identity matrix.
var Identity = Matrix{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// Col returns column j as a vector.
func (m Matrix) Col(j int) Vec {
	return Vec{m[0][j], m[1][j], m[2][j]}
}

// SetCol overwrites column j with v.
func (m *Matrix) SetCol(j int, v Vec) {
	m[0][j], m[1][j], m[2][j] = v.X, v.Y, v.Z
}

// MulVec returns m * v.
func (m Matrix) MulVec(v Vec) Vec {
	return Vec{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Mul returns m * o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}
	return r
}

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	var r Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Det returns the determinant of m.
func (m Matrix) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// FromCols builds a matrix whose columns are x, y, z.
func FromCols(x, y, z Vec) Matrix {
	return Matrix{
		{x.X, y.X, z.X},
		{x.Y, y.Y, z.Y},
		{x.Z, y.Z, z.Z},
	}
}

// RotationAbout returns the rotation matrix for a rotation of deg degrees
// about the given axis (right-hand rule). The axis need not be unit length;
// a zero axis yields the identity.
func RotationAbout(axis Vec, deg float64) Matrix {
	a := axis.Normalize()
	if a.Norm() == 0 {
		return Identity
	}
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	t := 1 - c
	return Matrix{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c},
	}
}
