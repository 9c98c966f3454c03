package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitResult is the outcome of a rigid-body least-squares alignment: the
// rotation and translation that best map the "standard" (template) point
// set onto the "experimental" point set, plus the residual RMSD.
type FitResult struct {
	Rotation    Matrix3
	Translation Vector3
	RMSD        float64
}

// Fit performs a least-squares rigid alignment of N >= 3 point pairs,
// minimizing sum_i || R*standard_i + t - experimental_i ||^2, using the
// standard SVD-based Kabsch formulation (spec.md §4.1).
//
// experimental and standard must have equal, matching length >= 3.
func Fit(experimental, standard []Vector3) (FitResult, error) {
	n := len(experimental)
	if n != len(standard) {
		return FitResult{}, fmt.Errorf("geom: Fit: mismatched point counts %d vs %d", n, len(standard))
	}
	if n < 3 {
		return FitResult{}, fmt.Errorf("geom: Fit: need at least 3 point pairs, got %d", n)
	}

	centroidExp := centroid(experimental)
	centroidStd := centroid(standard)

	// Cross-covariance matrix H = sum_i (standard_i - centroidStd) * (experimental_i - centroidExp)^T
	var hxx, hxy, hxz float64
	var hyx, hyy, hyz float64
	var hzx, hzy, hzz float64
	for i := 0; i < n; i++ {
		s := standard[i].Sub(centroidStd)
		e := experimental[i].Sub(centroidExp)
		hxx += s.X * e.X
		hxy += s.X * e.Y
		hxz += s.X * e.Z
		hyx += s.Y * e.X
		hyy += s.Y * e.Y
		hyz += s.Y * e.Z
		hzx += s.Z * e.X
		hzy += s.Z * e.Y
		hzz += s.Z * e.Z
	}

	h := mat.NewDense(3, 3, []float64{
		hxx, hxy, hxz,
		hyx, hyy, hyz,
		hzx, hzy, hzz,
	})

	var svd mat.SVD
	ok := svd.Factorize(h, mat.SVDFull)
	if !ok {
		return FitResult{}, fmt.Errorf("geom: Fit: SVD factorization failed (degenerate point set)")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// d corrects for a reflection so the resulting rotation is proper
	// (det = +1), following the standard Kabsch sign-fix.
	var vu mat.Dense
	vu.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vu) < 0 {
		d = -1.0
	}

	corr := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, d})
	var rm mat.Dense
	rm.Mul(&v, corr)
	rm.Mul(&rm, u.T())

	rotation := matrix3FromDense(&rm)

	// Translation maps the standard centroid onto the experimental
	// centroid under the fitted rotation.
	translation := centroidExp.Sub(rotation.MulVec(centroidStd))

	var sqSum float64
	for i := 0; i < n; i++ {
		predicted := rotation.MulVec(standard[i]).Add(translation)
		diff := predicted.Sub(experimental[i])
		sqSum += diff.Dot(diff)
	}
	rmsd := math.Sqrt(sqSum / float64(n))

	return FitResult{Rotation: rotation, Translation: translation, RMSD: rmsd}, nil
}

func centroid(points []Vector3) Vector3 {
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

func matrix3FromDense(m *mat.Dense) Matrix3 {
	return Matrix3{
		c0: Vector3{m.At(0, 0), m.At(1, 0), m.At(2, 0)},
		c1: Vector3{m.At(0, 1), m.At(1, 1), m.At(2, 1)},
		c2: Vector3{m.At(0, 2), m.At(1, 2), m.At(2, 2)},
	}
}
