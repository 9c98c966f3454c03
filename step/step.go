/*
Package step implements the El Hassan-Calladine (CEHS) step-parameter and
helical-parameter construction of spec.md §4.11: given two reference
frames, compute the six step parameters (shift, slide, rise, tilt, roll,
twist), the mid-step frame, and the six helical parameters derived from
the same relative pose by screw decomposition.
*/
package step

import (
	"math"

	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

// Parameters is the six-component rigid-body step descriptor between two
// consecutive base-pair frames (spec.md §3, §4.11).
type Parameters struct {
	Shift, Slide, Rise float64
	Tilt, Roll, Twist  float64
	MidFrame           model.ReferenceFrame
}

// HelicalParameters is the screw-decomposition equivalent of Parameters
// (spec.md §4.11).
type HelicalParameters struct {
	XDisplacement, YDisplacement float64
	HRise                        float64
	Inclination, Tip             float64
	HTwist                       float64
}

// Compute runs the CEHS construction between two frames. Per spec.md
// §4.11, if the two frames' z-axes point in opposing directions (dot <
// 0), frame 2 is flipped (y and z columns negated) before computing;
// swapped reports whether this flip occurred, for the caller to record
// per-pair (spec.md §4.10's consumer).
func Compute(f1, f2 model.ReferenceFrame) (Parameters, bool) {
	swapped := false
	r2 := f2.Rotation
	if f1.Z().Dot(f2.Z()) < 0 {
		r2 = r2.WithNegatedYZ()
		swapped = true
	}
	f2 = model.ReferenceFrame{Rotation: r2, Origin: f2.Origin}

	z1, z2 := f1.Z(), f2.Z()
	x1, x2 := f1.X(), f2.X()

	bendAxis := z1.Cross(z2)
	gamma := geom.AngleBetween(z1, z2)
	if bendAxis.Norm() < 1e-9 {
		bendAxis = x1.Add(x2)
	}
	bendAxis = bendAxis.Normalize()

	var params Parameters
	if gamma < 1e-10/math.Pi*180 {
		// Degenerate: zero bend (spec.md §4.11 degeneracies).
		midX := x1.Add(x2).Normalize()
		midZ := z1.Normalize()
		midY := midZ.Cross(midX)
		midOrigin := geom.Midpoint(f1.Origin, f2.Origin)
		midRot := geom.NewMatrix3FromColumns(midX, midY, midZ)
		mid := model.ReferenceFrame{Rotation: midRot, Origin: midOrigin}

		params.Twist = signedAngleAbout(x1, x2, midZ)
		params.Tilt = 0
		params.Roll = 0
		params.MidFrame = mid
	} else {
		x1r := geom.RotateAroundAxis(x1, bendAxis, -gamma/2)
		x2r := geom.RotateAroundAxis(x2, bendAxis, gamma/2)
		z1r := geom.RotateAroundAxis(z1, bendAxis, -gamma/2)
		z2r := geom.RotateAroundAxis(z2, bendAxis, gamma/2)

		midZ := geom.Midpoint(z1r, z2r).Normalize()
		midX := geom.Midpoint(x1r, x2r).Normalize()
		midY := midZ.Cross(midX)
		midOrigin := geom.Midpoint(f1.Origin, f2.Origin)
		midRot := geom.NewMatrix3FromColumns(midX, midY, midZ)
		mid := model.ReferenceFrame{Rotation: midRot, Origin: midOrigin}

		params.Twist = signedAngleAbout(x1r, x2r, midZ)

		phi := geom.AngleBetween(bendAxis, midX) * math.Pi / 180
		params.Tilt = gamma * math.Sin(phi)
		params.Roll = gamma * math.Cos(phi)
		params.MidFrame = mid
	}

	d := f2.Origin.Sub(f1.Origin)
	params.Shift = d.Dot(params.MidFrame.X())
	params.Slide = d.Dot(params.MidFrame.Y())
	params.Rise = d.Dot(params.MidFrame.Z())

	return params, swapped
}

// signedAngleAbout returns the signed angle (degrees) from u to v, as
// seen looking down axis (right-handed: positive is counter-clockwise
// about axis).
func signedAngleAbout(u, v, axis geom.Vector3) float64 {
	unsigned := geom.AngleBetween(u, v)
	cross := u.Cross(v)
	if cross.Dot(axis) < 0 {
		return -unsigned
	}
	return unsigned
}

// Helical computes the screw-decomposition helical parameters
// corresponding to the same two frames (spec.md §4.11).
func Helical(f1, f2 model.ReferenceFrame, params Parameters) HelicalParameters {
	htwist := params.Twist
	if htwist < 0 {
		// h-twist is reported as the net rotation angle, sign-corrected to
		// match the handedness of the local helical axis rather than the
		// arbitrary mid-frame x direction.
		htwist = -htwist
	}

	hrise := params.Rise

	midY := params.MidFrame.Y()
	midX := params.MidFrame.X()
	helicalAxis := params.MidFrame.Z()

	inclination := 90 - geom.AngleBetween(helicalAxis, midY)
	tip := 90 - geom.AngleBetween(helicalAxis, midX)

	d := f2.Origin.Sub(f1.Origin)
	xDisp := d.Dot(midX) - params.Shift
	yDisp := d.Dot(midY) - params.Slide

	return HelicalParameters{
		XDisplacement: xDisp,
		YDisplacement: yDisp,
		HRise:         hrise,
		Inclination:   inclination,
		Tip:           tip,
		HTwist:        htwist,
	}
}

// BatchResult is one element of a batch step-parameter run: the pair
// index, the computed parameters, and whether the anti-parallel flip was
// applied.
type BatchResult struct {
	PairIndex int
	Params    Parameters
	Helical   HelicalParameters
	Flipped   bool
}

// Batch computes step and helical parameters for every consecutive pair
// of frames in frames (spec.md §4.11's batch API), then extracts the
// subset {start, start+stride, start+2*stride, ...}.
func Batch(frames []model.ReferenceFrame, start, stride int) []BatchResult {
	if stride <= 0 {
		stride = 1
	}
	var all []BatchResult
	for i := 0; i+1 < len(frames); i++ {
		p, flipped := Compute(frames[i], frames[i+1])
		h := Helical(frames[i], frames[i+1], p)
		all = append(all, BatchResult{PairIndex: i, Params: p, Helical: h, Flipped: flipped})
	}
	var out []BatchResult
	for i := start; i < len(all); i += stride {
		out = append(out, all[i])
	}
	return out
}
