package geom

import "math"

// PlanarityRMSD returns the RMS perpendicular distance of points from the
// plane through origin with the given normal, the 3D analogue of poly's
// checks.GcContent: both reduce a point set (there, a base sequence) down
// to a single deviation fraction against a reference, here a plane rather
// than a nucleotide count. The pair validator (spec.md §4.6) uses this to
// report each base's ring planarity alongside its observables; it does
// not gate validity on the value.
func PlanarityRMSD(points []Vector3, origin, normal Vector3) float64 {
	if len(points) == 0 {
		return 0
	}
	n := normal.Normalize()
	var sumSq float64
	for _, p := range points {
		d := p.Sub(origin).Dot(n)
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(points)))
}

// IsPlanar reports whether points lie within tol angstroms (RMS) of the
// plane (origin, normal).
func IsPlanar(points []Vector3, origin, normal Vector3, tol float64) bool {
	return PlanarityRMSD(points, origin, normal) <= tol
}

// IsRightHanded reports whether m's three columns form a right-handed
// basis, the orientation every fitted or constructed ReferenceFrame in
// this module is required to have (spec.md §3's frame convention). The
// same is-it-well-formed predicate shape as poly's checks.IsDNA/IsRNA,
// which validate a sequence's alphabet before anything downstream trusts
// it.
func IsRightHanded(m Matrix3) bool {
	return m.Determinant() > 0
}
