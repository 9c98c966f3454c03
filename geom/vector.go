/*
Package geom provides the 3-vector, 3x3 matrix, rigid-body least-squares
fit, polygon overlap, and angle primitives that every other package in
this module builds on.

Nothing in this package knows about atoms, residues, or base pairs: it is
the same kind of leaf-level numeric package as poly/align/matrix, kept
free of domain types so it can be unit tested in isolation.
*/
package geom

import "math"

// Vector3 is a point or direction in 3-space, stored as (X, Y, Z) in
// double precision throughout, per the numerical semantics of the
// geometry kernel.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the scalar (inner) product of v and w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the vector (outer) product v x w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean (L2) length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A zero-length vector is
// returned unchanged rather than dividing by zero; callers that need to
// distinguish this case should check Norm() first.
func (v Vector3) Normalize() Vector3 {
	n := v.Norm()
	if n < 1e-12 {
		return v
	}
	return v.Scale(1 / n)
}

// Midpoint returns the point halfway between v and w.
func Midpoint(v, w Vector3) Vector3 {
	return v.Add(w).Scale(0.5)
}

// clampUnit clamps x into [-1, 1] so it can be passed safely to math.Acos,
// tolerating the round-off that accumulates in dot products of
// nominally-unit vectors.
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Angle returns the angle at vertex B of A-B-C in degrees, in [0, 180].
func Angle(a, b, c Vector3) float64 {
	u := a.Sub(b)
	w := c.Sub(b)
	un, wn := u.Norm(), w.Norm()
	if un < 1e-12 || wn < 1e-12 {
		return 0
	}
	cosTheta := clampUnit(u.Dot(w) / (un * wn))
	return math.Acos(cosTheta) * 180 / math.Pi
}

// AngleBetween returns the angle between two direction vectors in
// degrees, in [0, 180].
func AngleBetween(u, w Vector3) float64 {
	un, wn := u.Norm(), w.Norm()
	if un < 1e-12 || wn < 1e-12 {
		return 0
	}
	cosTheta := clampUnit(u.Dot(w) / (un * wn))
	return math.Acos(cosTheta) * 180 / math.Pi
}

// RotateAroundAxis rotates v by angleDeg degrees (right-handed) about the
// given axis, via Rodrigues' rotation formula. axis need not be unit
// length. Used wherever a frame or bond direction must be rotated about a
// reference axis, such as the CEHS mid-step construction's ∓γ/2
// rotation.
func RotateAroundAxis(v, axis Vector3, angleDeg float64) Vector3 {
	k := axis.Normalize()
	theta := angleDeg * math.Pi / 180
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	return v.Scale(cosT).
		Add(k.Cross(v).Scale(sinT)).
		Add(k.Scale(k.Dot(v) * (1 - cosT)))
}

// Dihedral returns the signed dihedral angle of A-B-C-D in degrees,
// in (-180, 180].
func Dihedral(a, b, c, d Vector3) float64 {
	b1 := b.Sub(a)
	b2 := c.Sub(b)
	b3 := d.Sub(c)

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)

	n1n, n2n := n1.Norm(), n2.Norm()
	if n1n < 1e-12 || n2n < 1e-12 {
		return 0
	}

	m1 := n1.Cross(b2.Normalize())

	x := n1.Dot(n2) / (n1n * n2n)
	y := m1.Dot(n2) / (m1.Norm() * n2n)
	if m1.Norm() < 1e-12 {
		y = 0
	}

	angle := math.Atan2(y, x) * 180 / math.Pi
	if angle <= -180 {
		angle += 360
	}
	return angle
}
