package model

import "github.com/jyesselm/x3dna/geom"

// ReferenceFrame is a right-handed orthonormal rotation R and origin o
// attached to a single nucleotide base (spec.md §3). Invariant: columns
// of R are unit length and mutually orthogonal within 1e-6, det(R) = +1
// within 1e-6.
type ReferenceFrame struct {
	Rotation geom.Matrix3
	Origin   geom.Vector3
}

// X, Y, Z return the frame's basis vectors.
func (f ReferenceFrame) X() geom.Vector3 { return f.Rotation.X() }
func (f ReferenceFrame) Y() geom.Vector3 { return f.Rotation.Y() }
func (f ReferenceFrame) Z() geom.Vector3 { return f.Rotation.Z() }

// IsOrthonormal reports whether the frame's rotation is orthonormal and
// right-handed within tol, the invariant spec.md §3 and §8 require of
// every assigned frame.
func (f ReferenceFrame) IsOrthonormal(tol float64) bool {
	x, y, z := f.X(), f.Y(), f.Z()
	unit := func(v geom.Vector3) bool {
		n := v.Norm()
		return n > 1-tol && n < 1+tol
	}
	ortho := func(a, b geom.Vector3) bool {
		d := a.Dot(b)
		return d > -tol && d < tol
	}
	if !unit(x) || !unit(y) || !unit(z) {
		return false
	}
	if !ortho(x, y) || !ortho(y, z) || !ortho(x, z) {
		return false
	}
	det := f.Rotation.Determinant()
	return det > 1-tol && det < 1+tol
}
