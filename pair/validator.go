/*
Package pair implements the pair validator, pair-type classifier, the
candidate cache, and the mutual-best selection strategy of spec.md
§4.6-§4.9.
*/
package pair

import (
	"math"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/hbond"
	"github.com/jyesselm/x3dna/model"
	"github.com/jyesselm/x3dna/step"
)

// exocyclicDecoration extends the ring polygon with the attached
// exocyclic atoms spec.md §4.6 calls for ("base ring polygons ... with
// attached exocyclic atoms").
var exocyclicDecoration = map[classify.BaseIdentity][]string{
	classify.BaseA: {"N6"},
	classify.BaseG: {"O6", "N2"},
	classify.BaseC: {"O2", "N4"},
	classify.BaseT: {"O2", "O4"},
	classify.BaseU: {"O2", "O4"},
	classify.BaseI: {"O6"},
	classify.BasePseudoU: {"O2", "O4"},
}

// Validate computes the geometric observables and gating predicates of
// spec.md §4.6 between two nucleotide residues that both already carry
// reference frames. If either residue has no frame, it returns the zero
// ValidationResult, which is not Valid.
func Validate(r1, r2 *model.Residue, cfg config.Config) model.ValidationResult {
	if !r1.HasFrame() || !r2.HasFrame() {
		return model.ValidationResult{}
	}
	f1, f2 := *r1.Frame, *r2.Frame

	dorg := f1.Origin.Sub(f2.Origin).Norm()

	avgNormal := geom.Midpoint(f1.Z(), f2.Z()).Normalize()
	dv := f1.Origin.Sub(f2.Origin).Dot(avgNormal)

	planeAngle := geom.AngleBetween(f1.Z(), f2.Z())
	if planeAngle > 90 {
		planeAngle = 180 - planeAngle
	}

	n1 := classify.GlycosidicNitrogen(r1.IsPurine())
	n2 := classify.GlycosidicNitrogen(r2.IsPurine())
	dNN := math.Inf(1)
	if a1, ok := r1.AtomByName(n1); ok {
		if a2, ok := r2.AtomByName(n2); ok {
			dNN = a1.Position.Sub(a2.Position).Norm()
		}
	}

	overlap := overlapArea(r1, r2, f1, f2, avgNormal)
	planarity1 := ringPlanarityRMSD(r1, f1)
	planarity2 := ringPlanarityRMSD(r2, f2)

	dirX := f1.X().Dot(f2.X())
	dirY := f1.Y().Dot(f2.Y())
	dirZ := f1.Z().Dot(f2.Z())

	counting := hbond.CountOnly(r1, r2, cfg)
	detailed := hbond.Detect(r1, r2, cfg)

	res := model.ValidationResult{
		Dorg: dorg, Dv: dv, PlaneAngle: planeAngle, DNN: dNN, OverlapArea: overlap,
		DirX: dirX, DirY: dirY, DirZ: dirZ,
		HBonds:          detailed.Final,
		BaseHBondCount:  counting.BaseBase,
		SugarHBondCount: counting.SugarO2,

		RingPlanarityRMSD1: planarity1,
		RingPlanarityRMSD2: planarity2,
	}

	res.PassDorg = cfg.MinDorg <= dorg && dorg <= cfg.MaxDorg
	res.PassDv = cfg.MinDv <= math.Abs(dv) && math.Abs(dv) <= cfg.MaxDv
	res.PassPlaneAngle = cfg.MinPlaneAngle <= planeAngle && planeAngle <= cfg.MaxPlaneAngle
	res.PassDNN = dNN >= cfg.MinDNN
	res.PassOverlapArea = overlap >= cfg.OverlapThreshold
	res.PassHBondCount = res.BaseHBondCount >= cfg.MinBaseHBonds

	res.Valid = res.PassDorg && res.PassDv && res.PassPlaneAngle && res.PassDNN && res.PassOverlapArea && res.PassHBondCount
	res.RawQuality = rawQuality(res, cfg)

	return res
}

// overlapArea projects both bases' ring-plus-exocyclic-atom polygons
// onto a plane perpendicular to avgNormal, centered at the pair-origin
// midpoint, and returns their intersection area (spec.md §4.6).
func overlapArea(r1, r2 *model.Residue, f1, f2 model.ReferenceFrame, avgNormal geom.Vector3) float64 {
	mid := geom.Midpoint(f1.Origin, f2.Origin)
	poly1 := ringPolygon(r1, f1, avgNormal, mid)
	poly2 := ringPolygon(r2, f2, avgNormal, mid)
	if len(poly1.Vertices) < 3 || len(poly2.Vertices) < 3 {
		return 0
	}
	return geom.OverlapArea(poly1, poly2)
}

// ringPlanarityRMSD reports how far a base's ring-plus-exocyclic atoms
// deviate from the plane defined by the residue's own fitted frame
// (origin, z-axis), using geom.PlanarityRMSD.
func ringPlanarityRMSD(r *model.Residue, f model.ReferenceFrame) float64 {
	names := classify.RingAtomNames(r.IsPurine())
	names = append(names, exocyclicDecoration[r.Classification.Base]...)

	var points []geom.Vector3
	for _, n := range names {
		if a, ok := r.AtomByName(n); ok {
			points = append(points, a.Position)
		}
	}
	if len(points) < 3 {
		return 0
	}
	return geom.PlanarityRMSD(points, f.Origin, f.Z())
}

func ringPolygon(r *model.Residue, f model.ReferenceFrame, normal, origin geom.Vector3) geom.Polygon2 {
	names := classify.RingAtomNames(r.IsPurine())
	names = append(names, exocyclicDecoration[r.Classification.Base]...)

	var points []geom.Vector3
	for _, n := range names {
		if a, ok := r.AtomByName(n); ok {
			points = append(points, a.Position)
		}
	}
	if len(points) < 3 {
		return geom.Polygon2{}
	}
	return geom.ProjectPlanar(points, origin, normal)
}

// rawQuality computes a linear, minimize-is-better combination of how
// central each continuous observable sits within its acceptable window
// (spec.md §4.6: "a weighted combination summarizing how central each
// observable is within its acceptable window; use the reference's linear
// formulation"). The dorg, |dv| and plane-angle terms are the fractional
// distance from the window's midpoint, 0 at the midpoint and 1 at either
// edge; the overlap term is 1 at the threshold, falling linearly to 0 at
// four times the threshold. Failing predicates contribute a full penalty
// regardless of the raw value.
func rawQuality(res model.ValidationResult, cfg config.Config) float64 {
	term := func(value, lo, hi float64, pass bool) float64 {
		if !pass {
			return 1
		}
		mid := (lo + hi) / 2
		half := (hi - lo) / 2
		if half < 1e-9 {
			return 0
		}
		return math.Abs(value-mid) / half
	}

	dorgTerm := term(res.Dorg, cfg.MinDorg, cfg.MaxDorg, res.PassDorg)
	dvTerm := term(math.Abs(res.Dv), cfg.MinDv, cfg.MaxDv, res.PassDv)
	angleTerm := term(res.PlaneAngle, cfg.MinPlaneAngle, cfg.MaxPlaneAngle, res.PassPlaneAngle)

	overlapTerm := 0.0
	if !res.PassOverlapArea {
		overlapTerm = 1
	} else if res.OverlapArea < cfg.OverlapThreshold*4 {
		overlapTerm = 1 - (res.OverlapArea-cfg.OverlapThreshold)/(cfg.OverlapThreshold*3)
	}

	return 0.3*dorgTerm + 0.25*dvTerm + 0.25*angleTerm + 0.2*overlapTerm
}

// SinglePairStepParameters returns the shear, stretch, and opening values
// spec.md §4.7 derives from the single-pair step between two frames
// (shear = slide, stretch = rise, opening = twist).
func SinglePairStepParameters(f1, f2 model.ReferenceFrame) (shear, stretch, opening float64) {
	p, _ := step.Compute(f1, f2)
	return p.Slide, p.Rise, p.Twist
}

// Classify implements spec.md §4.7: from the two residues' frames and
// base identities, determine the pair type id. It does not check that
// the pair validated; callers classify pairs Validate already accepted.
func Classify(r1, r2 *model.Residue) model.PairTypeID {
	shear, stretch, opening := SinglePairStepParameters(*r1.Frame, *r2.Frame)

	if math.Abs(stretch) > 2.0 || math.Abs(opening) > 60 {
		return model.PairTypeImplausible
	}
	wc := classify.IsWatsonCrickPair(r1.Classification.Base, r2.Classification.Base)
	absShear := math.Abs(shear)
	switch {
	case wc && absShear <= 1.8:
		return model.PairTypeWatsonCrick
	case absShear >= 1.8 && absShear <= 2.8:
		return model.PairTypeWobble
	default:
		return model.PairTypeNonCanonical
	}
}

// AdjustedQuality implements spec.md §4.7's quality adjustment: lower is
// better, same as RawQuality.
func AdjustedQuality(res model.ValidationResult, typeID model.PairTypeID) float64 {
	q := res.RawQuality
	if typeID == model.PairTypeWatsonCrick {
		q -= 2
	}
	numGood := 0
	for _, b := range res.HBonds {
		if b.IsGood() {
			numGood++
		}
	}
	switch {
	case numGood >= 2:
		q -= 3
	case numGood == 1:
		q -= 1
	}
	return q
}
