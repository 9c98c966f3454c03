package geom

// Matrix3 is a 3x3 matrix stored column-major, so that Col(0..2) returns
// the basis vectors of a reference frame directly.
type Matrix3 struct {
	// columns are the three basis vectors.
	c0, c1, c2 Vector3
}

// NewMatrix3FromColumns builds a Matrix3 from three column vectors.
func NewMatrix3FromColumns(c0, c1, c2 Vector3) Matrix3 {
	return Matrix3{c0, c1, c2}
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		c0: Vector3{1, 0, 0},
		c1: Vector3{0, 1, 0},
		c2: Vector3{0, 0, 1},
	}
}

// Col returns column i (0-based) of the matrix.
func (m Matrix3) Col(i int) Vector3 {
	switch i {
	case 0:
		return m.c0
	case 1:
		return m.c1
	default:
		return m.c2
	}
}

// X, Y, Z are convenience accessors for the frame's basis vectors: the
// columns of the rotation matrix, by the convention used throughout this
// module (ReferenceFrame.Rotation.X() is the base's long axis, Z() is
// the base normal).
func (m Matrix3) X() Vector3 { return m.c0 }
func (m Matrix3) Y() Vector3 { return m.c1 }
func (m Matrix3) Z() Vector3 { return m.c2 }

// MulVec returns M * v, treating v as a column vector.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m.c0.X*v.X + m.c1.X*v.Y + m.c2.X*v.Z,
		Y: m.c0.Y*v.X + m.c1.Y*v.Y + m.c2.Y*v.Z,
		Z: m.c0.Z*v.X + m.c1.Z*v.Y + m.c2.Z*v.Z,
	}
}

// Transpose returns the transpose of m.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		c0: Vector3{m.c0.X, m.c1.X, m.c2.X},
		c1: Vector3{m.c0.Y, m.c1.Y, m.c2.Y},
		c2: Vector3{m.c0.Z, m.c1.Z, m.c2.Z},
	}
}

// Mul returns m * n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	return Matrix3{
		c0: m.MulVec(n.c0),
		c1: m.MulVec(n.c1),
		c2: m.MulVec(n.c2),
	}
}

// Determinant returns det(m).
func (m Matrix3) Determinant() float64 {
	return m.c0.X*(m.c1.Y*m.c2.Z-m.c1.Z*m.c2.Y) -
		m.c1.X*(m.c0.Y*m.c2.Z-m.c0.Z*m.c2.Y) +
		m.c2.X*(m.c0.Y*m.c1.Z-m.c0.Z*m.c1.Y)
}

// WithNegatedYZ returns a copy of m with the Y and Z columns negated.
// Used when two frames point in opposing z-directions and must be
// flipped before a step-parameter calculation (spec.md §4.11).
func (m Matrix3) WithNegatedYZ() Matrix3 {
	return Matrix3{
		c0: m.c0,
		c1: m.c1.Scale(-1),
		c2: m.c2.Scale(-1),
	}
}
