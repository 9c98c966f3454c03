package model

// ValidationResult is the computed geometric observables and pass flags
// for one ordered residue pair (spec.md §3, §4.6).
type ValidationResult struct {
	Dorg        float64
	Dv          float64
	PlaneAngle  float64
	DNN         float64
	OverlapArea float64

	// RingPlanarityRMSD1 and RingPlanarityRMSD2 are each base's ring (plus
	// exocyclic decoration) RMS deviation from the plane through its
	// fitted frame's origin normal to the frame's z-axis,
	// reported so a caller can flag a pair whose overlap area rests on a
	// warped, non-planar ring (spec.md §4.6's overlap-area projection
	// assumes planarity that this does not itself enforce).
	RingPlanarityRMSD1 float64
	RingPlanarityRMSD2 float64

	DirX, DirY, DirZ float64

	PassDorg        bool
	PassDv          bool
	PassPlaneAngle  bool
	PassDNN         bool
	PassOverlapArea bool
	PassHBondCount  bool

	Valid bool

	HBonds           []HydrogenBond
	BaseHBondCount   int
	SugarHBondCount  int

	RawQuality float64
}
