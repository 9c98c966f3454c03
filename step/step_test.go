package step

import (
	"math"
	"testing"

	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

func zRotationFrame(angleDeg float64, origin geom.Vector3) model.ReferenceFrame {
	theta := angleDeg * math.Pi / 180
	x := geom.Vector3{X: math.Cos(theta), Y: math.Sin(theta), Z: 0}
	y := geom.Vector3{X: -math.Sin(theta), Y: math.Cos(theta), Z: 0}
	z := geom.Vector3{X: 0, Y: 0, Z: 1}
	return model.ReferenceFrame{Rotation: geom.NewMatrix3FromColumns(x, y, z), Origin: origin}
}

func TestComputeZeroBendRecoversTwistAndRise(t *testing.T) {
	f1 := zRotationFrame(0, geom.Vector3{})
	f2 := zRotationFrame(36, geom.Vector3{X: 0, Y: 0, Z: 3.38})

	params, flipped := Compute(f1, f2)
	if flipped {
		t.Fatalf("did not expect an anti-parallel flip for two parallel z-axes")
	}
	if math.Abs(params.Rise-3.38) > 1e-6 {
		t.Errorf("Rise = %v, want 3.38", params.Rise)
	}
	if math.Abs(math.Abs(params.Twist)-36) > 1e-6 {
		t.Errorf("|Twist| = %v, want 36", math.Abs(params.Twist))
	}
	if math.Abs(params.Tilt) > 1e-9 || math.Abs(params.Roll) > 1e-9 {
		t.Errorf("expected zero tilt/roll for a zero-bend step, got tilt=%v roll=%v", params.Tilt, params.Roll)
	}
}

func TestComputeInvariantUnderGlobalRigidTransform(t *testing.T) {
	f1 := zRotationFrame(0, geom.Vector3{X: 1, Y: 2, Z: 3})
	f2 := zRotationFrame(32.7, geom.Vector3{X: 1, Y: 2, Z: 6.38})

	base, _ := Compute(f1, f2)

	// Apply a rigid transform: rotate everything by 40 degrees about z and
	// translate by an arbitrary vector.
	rot := zRotationFrame(40, geom.Vector3{}).Rotation
	shift := geom.Vector3{X: 5, Y: -7, Z: 11}

	transform := func(f model.ReferenceFrame) model.ReferenceFrame {
		return model.ReferenceFrame{
			Rotation: rot.Mul(f.Rotation),
			Origin:   rot.MulVec(f.Origin).Add(shift),
		}
	}
	tf1, tf2 := transform(f1), transform(f2)
	transformed, _ := Compute(tf1, tf2)

	if math.Abs(base.Rise-transformed.Rise) > 1e-6 {
		t.Errorf("Rise changed under rigid transform: %v vs %v", base.Rise, transformed.Rise)
	}
	if math.Abs(base.Twist-transformed.Twist) > 1e-6 {
		t.Errorf("Twist changed under rigid transform: %v vs %v", base.Twist, transformed.Twist)
	}
	if math.Abs(base.Shift-transformed.Shift) > 1e-6 {
		t.Errorf("Shift changed under rigid transform: %v vs %v", base.Shift, transformed.Shift)
	}
	if math.Abs(base.Slide-transformed.Slide) > 1e-6 {
		t.Errorf("Slide changed under rigid transform: %v vs %v", base.Slide, transformed.Slide)
	}
}

func TestComputeAntiParallelFramesAreFlipped(t *testing.T) {
	f1 := zRotationFrame(0, geom.Vector3{})
	f2Rotation := zRotationFrame(0, geom.Vector3{}).Rotation.WithNegatedYZ()
	f2 := model.ReferenceFrame{Rotation: f2Rotation, Origin: geom.Vector3{X: 0, Y: 0, Z: -3.38}}
	// f2 now has z pointing at (0,0,-1): anti-parallel to f1's z.

	_, flipped := Compute(f1, f2)
	if !flipped {
		t.Errorf("expected Compute to report a flip for anti-parallel frames")
	}
}

// tiltedFrame builds a frame by tilting the identity basis by tiltDeg
// about the X axis, then twisting it by twistDeg about Z. Unlike
// zRotationFrame (a pure twist, whose z-axis never moves), this produces
// a genuine bend between two such frames, exercising Compute's general
// (non-degenerate) branch.
func tiltedFrame(twistDeg, tiltDeg float64, origin geom.Vector3) model.ReferenceFrame {
	rotAbout := func(v, axis geom.Vector3, deg float64) geom.Vector3 {
		return geom.RotateAroundAxis(v, axis, deg)
	}
	xAxis := geom.Vector3{X: 1}
	zAxis := geom.Vector3{Z: 1}
	ex := rotAbout(geom.Vector3{X: 1}, xAxis, tiltDeg)
	ey := rotAbout(geom.Vector3{Y: 1}, xAxis, tiltDeg)
	ez := rotAbout(geom.Vector3{Z: 1}, xAxis, tiltDeg)
	ex = rotAbout(ex, zAxis, twistDeg)
	ey = rotAbout(ey, zAxis, twistDeg)
	ez = rotAbout(ez, zAxis, twistDeg)
	return model.ReferenceFrame{Rotation: geom.NewMatrix3FromColumns(ex, ey, ez), Origin: origin}
}

// TestComputeSwapAntisymmetry verifies spec.md §8's swap-antisymmetry
// property algebraically, for two frames whose z-axes are not
// anti-parallel (z1.Dot(z2) >= 0, the case that applies to consecutive
// mid-frames along one walking direction and so never trips Compute's
// own anti-parallel flip): swapping which frame is passed first negates
// Shift, Slide, Rise, Twist, and Roll, but leaves Tilt unchanged. This
// follows from Compute's bend-axis construction: reversing the frame
// order negates bendAxis and swaps (x1r, x2r) with (x2r, x1r), which
// negates the signed twist angle and flips the sign of cos(phi) (Roll)
// while leaving sin(phi) (Tilt) unchanged, since phi and its supplement
// 180-phi share a sine but have opposite cosines.
func TestComputeSwapAntisymmetry(t *testing.T) {
	f1 := tiltedFrame(0, 0, geom.Vector3{X: 1, Y: -2, Z: 0})
	f2 := tiltedFrame(34, 12, geom.Vector3{X: 0.5, Y: 1, Z: 3.2})
	if f1.Z().Dot(f2.Z()) < 0 {
		t.Fatalf("test fixture frames must not be anti-parallel")
	}

	forward, flippedFwd := Compute(f1, f2)
	reverse, flippedRev := Compute(f2, f1)
	if flippedFwd || flippedRev {
		t.Fatalf("did not expect an anti-parallel flip in either direction")
	}

	const tol = 1e-6
	if math.Abs(reverse.Shift+forward.Shift) > tol {
		t.Errorf("Shift: forward=%v reverse=%v, want reverse = -forward", forward.Shift, reverse.Shift)
	}
	if math.Abs(reverse.Slide+forward.Slide) > tol {
		t.Errorf("Slide: forward=%v reverse=%v, want reverse = -forward", forward.Slide, reverse.Slide)
	}
	if math.Abs(reverse.Rise+forward.Rise) > tol {
		t.Errorf("Rise: forward=%v reverse=%v, want reverse = -forward", forward.Rise, reverse.Rise)
	}
	if math.Abs(reverse.Twist+forward.Twist) > tol {
		t.Errorf("Twist: forward=%v reverse=%v, want reverse = -forward", forward.Twist, reverse.Twist)
	}
	if math.Abs(reverse.Roll+forward.Roll) > tol {
		t.Errorf("Roll: forward=%v reverse=%v, want reverse = -forward", forward.Roll, reverse.Roll)
	}
	if math.Abs(reverse.Tilt-forward.Tilt) > tol {
		t.Errorf("Tilt: forward=%v reverse=%v, want reverse == forward", forward.Tilt, reverse.Tilt)
	}
}

// TestComputeSwapAntisymmetryDegenerateBranch re-checks the same property
// for Compute's zero-bend branch (z1 == z2 exactly), where Tilt and Roll
// are both fixed at zero and only Twist, Shift, Slide, and Rise
// participate.
func TestComputeSwapAntisymmetryDegenerateBranch(t *testing.T) {
	f1 := zRotationFrame(10, geom.Vector3{X: 2, Y: 0, Z: 0})
	f2 := zRotationFrame(46, geom.Vector3{X: 2, Y: 0, Z: 3.38})

	forward, _ := Compute(f1, f2)
	reverse, _ := Compute(f2, f1)

	const tol = 1e-6
	if math.Abs(reverse.Twist+forward.Twist) > tol {
		t.Errorf("Twist: forward=%v reverse=%v, want reverse = -forward", forward.Twist, reverse.Twist)
	}
	if math.Abs(reverse.Shift+forward.Shift) > tol {
		t.Errorf("Shift: forward=%v reverse=%v, want reverse = -forward", forward.Shift, reverse.Shift)
	}
	if math.Abs(reverse.Rise+forward.Rise) > tol {
		t.Errorf("Rise: forward=%v reverse=%v, want reverse = -forward", forward.Rise, reverse.Rise)
	}
	if reverse.Tilt != 0 || reverse.Roll != 0 {
		t.Errorf("expected zero tilt/roll in the degenerate branch, got tilt=%v roll=%v", reverse.Tilt, reverse.Roll)
	}
}

func TestBatchStartAndStride(t *testing.T) {
	frames := []model.ReferenceFrame{
		zRotationFrame(0, geom.Vector3{Z: 0}),
		zRotationFrame(36, geom.Vector3{Z: 3.38}),
		zRotationFrame(72, geom.Vector3{Z: 6.76}),
		zRotationFrame(108, geom.Vector3{Z: 10.14}),
	}
	all := Batch(frames, 0, 1)
	if len(all) != 3 {
		t.Fatalf("got %d steps, want 3", len(all))
	}
	subset := Batch(frames, 1, 2)
	if len(subset) != 1 {
		t.Fatalf("got %d steps with start=1 stride=2, want 1", len(subset))
	}
}
