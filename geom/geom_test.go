package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAngleRightAngle(t *testing.T) {
	a := Vector3{1, 0, 0}
	b := Vector3{0, 0, 0}
	c := Vector3{0, 1, 0}
	got := Angle(a, b, c)
	if !almostEqual(got, 90, 1e-9) {
		t.Errorf("Angle() = %v, want 90", got)
	}
}

func TestDihedralSign(t *testing.T) {
	a := Vector3{1, 0, 0}
	b := Vector3{0, 0, 0}
	c := Vector3{0, 1, 0}
	d := Vector3{0, 1, 1}
	got := Dihedral(a, b, c, d)
	if got <= 0 {
		t.Errorf("Dihedral() = %v, want positive", got)
	}
}

func TestFitAlwaysReturnsARightHandedRotation(t *testing.T) {
	// A point set whose naive cross-covariance SVD could produce a
	// reflection: nearly coplanar standard points aligned to a mirrored
	// experimental set. Fit's Kabsch sign-fix (geom/fit.go) must still
	// hand back a proper (det > 0) rotation.
	standard := []Vector3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0.01},
	}
	experimental := []Vector3{
		{0, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {-1, 1, 0.01},
	}
	result, err := Fit(experimental, standard)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if !IsRightHanded(result.Rotation) {
		t.Errorf("Fit returned a left-handed rotation (det = %v)", result.Rotation.Determinant())
	}
}

func TestPlanarityRMSDOfCoplanarPointsIsZero(t *testing.T) {
	points := []Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	rmsd := PlanarityRMSD(points, Vector3{}, Vector3{Z: 1})
	if !almostEqual(rmsd, 0, 1e-12) {
		t.Errorf("PlanarityRMSD() = %v, want 0 for coplanar points", rmsd)
	}
	if !IsPlanar(points, Vector3{}, Vector3{Z: 1}, 1e-9) {
		t.Errorf("IsPlanar() = false for exactly coplanar points")
	}
}

func TestPlanarityRMSDDetectsAWarpedRing(t *testing.T) {
	points := []Vector3{{0, 0, 0.5}, {1, 0, -0.5}, {0, 1, 0.5}, {1, 1, -0.5}}
	rmsd := PlanarityRMSD(points, Vector3{}, Vector3{Z: 1})
	if rmsd < 0.4 {
		t.Errorf("PlanarityRMSD() = %v, want >= 0.4 for a ring puckered +/-0.5", rmsd)
	}
	if IsPlanar(points, Vector3{}, Vector3{Z: 1}, 0.1) {
		t.Errorf("IsPlanar() = true for a ring well outside tolerance")
	}
}

func TestReverseFramesReversesOrderAndNegatesYZ(t *testing.T) {
	a := Identity3()
	b := NewMatrix3FromColumns(Vector3{X: 0, Y: 1, Z: 0}, Vector3{X: -1, Y: 0, Z: 0}, Vector3{X: 0, Y: 0, Z: 1})
	rev := ReverseFrames([]Matrix3{a, b})
	if len(rev) != 2 {
		t.Fatalf("len(rev) = %d, want 2", len(rev))
	}
	// rev[0] is b's X unchanged, Y/Z negated.
	if !almostEqual(rev[0].X().X, b.X().X, 1e-12) || !almostEqual(rev[0].Y().X, -b.Y().X, 1e-12) {
		t.Errorf("ReverseFrames()[0] = %+v, want flip(b)", rev[0])
	}
	if !almostEqual(rev[1].X().X, a.X().X, 1e-12) || !almostEqual(rev[1].Z().Z, -a.Z().Z, 1e-12) {
		t.Errorf("ReverseFrames()[1] = %+v, want flip(a)", rev[1])
	}
}

func TestReverseVectorsReversesOrderOnly(t *testing.T) {
	in := []Vector3{{X: 1}, {X: 2}, {X: 3}}
	out := ReverseVectors(in)
	want := []Vector3{{X: 3}, {X: 2}, {X: 1}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("ReverseVectors() mismatch (-want +got):\n%s", diff)
	}
}

func TestFitRecoversIdentity(t *testing.T) {
	standard := []Vector3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	// experimental == standard, so the fit should recover R = I, t = 0.
	result, err := Fit(standard, standard)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if result.RMSD > 1e-8 {
		t.Errorf("RMSD = %v, want ~0", result.RMSD)
	}
	for i := 0; i < 3; i++ {
		col := result.Rotation.Col(i)
		id := Identity3().Col(i)
		if !almostEqual(col.X, id.X, 1e-6) || !almostEqual(col.Y, id.Y, 1e-6) || !almostEqual(col.Z, id.Z, 1e-6) {
			t.Errorf("Rotation.Col(%d) = %+v, want %+v", i, col, id)
		}
	}
}

func TestFitRotationEquivariant(t *testing.T) {
	standard := []Vector3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0.3, 0.4, 0.1},
	}
	// Apply an arbitrary rigid transform T to the standard points to
	// produce a synthetic "experimental" set: T = 90deg rotation about
	// Z plus a translation.
	rot := Matrix3{
		c0: Vector3{0, 1, 0},
		c1: Vector3{-1, 0, 0},
		c2: Vector3{0, 0, 1},
	}
	t0 := Vector3{5, -2, 1}
	experimental := make([]Vector3, len(standard))
	for i, p := range standard {
		experimental[i] = rot.MulVec(p).Add(t0)
	}

	result, err := Fit(experimental, standard)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if result.RMSD > 1e-6 {
		t.Errorf("RMSD = %v, want ~0 for an exact rigid transform", result.RMSD)
	}
	for i := 0; i < 3; i++ {
		got := result.Rotation.Col(i)
		want := rot.Col(i)
		if !almostEqual(got.X, want.X, 1e-5) || !almostEqual(got.Y, want.Y, 1e-5) || !almostEqual(got.Z, want.Z, 1e-5) {
			t.Errorf("Rotation.Col(%d) = %+v, want %+v", i, got, want)
		}
	}
}

func TestFitRequiresThreePoints(t *testing.T) {
	pts := []Vector3{{0, 0, 0}, {1, 0, 0}}
	if _, err := Fit(pts, pts); err == nil {
		t.Errorf("Fit with 2 points should return an error")
	}
}

func TestOverlapAreaOfIdenticalSquares(t *testing.T) {
	square := Polygon2{Vertices: []Vector2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
	area := OverlapArea(square, square)
	if !almostEqual(area, 1, 1e-9) {
		t.Errorf("OverlapArea() = %v, want 1", area)
	}
}

func TestOverlapAreaOfDisjointSquares(t *testing.T) {
	a := Polygon2{Vertices: []Vector2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
	b := Polygon2{Vertices: []Vector2{{10, 10}, {11, 10}, {11, 11}, {10, 11}}}
	area := OverlapArea(a, b)
	if area != 0 {
		t.Errorf("OverlapArea() of disjoint polygons = %v, want 0", area)
	}
}

func TestOverlapAreaNeverNegative(t *testing.T) {
	a := Polygon2{Vertices: []Vector2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}}
	b := Polygon2{Vertices: []Vector2{{1, 1}, {3, 1}, {3, 3}, {1, 3}}}
	area := OverlapArea(a, b)
	if area < 0 {
		t.Errorf("OverlapArea() = %v, must never be negative", area)
	}
	if !almostEqual(area, 1, 1e-9) {
		t.Errorf("OverlapArea() = %v, want 1 for 2x2 squares sharing a 1x1 corner", area)
	}
}
