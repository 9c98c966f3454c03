/*
Package config holds the single explicit Config value threaded through
both protocol entry points (spec.md §6, Design Note §9), replacing the
x3dna reference's process-wide configuration manager singleton.
*/
package config

// HBondStrategy names a hydrogen-bond detection pipeline (spec.md §4.5:
// the slot-based path is "an alternative path, parameterizable"). No
// stage of this module reads the field: the pair validator always runs
// hbond.Detect, and hbond/slot.Optimize is only reached by calling it
// directly.
type HBondStrategy int

const (
	HBondStrategyClassification HBondStrategy = iota
	HBondStrategySlotBased
)

// SelectionStrategyName identifies which pair-selection policy to run
// (spec.md §4.9: mutual-best is the default, but the interface admits
// alternates).
type SelectionStrategyName int

const (
	SelectionMutualBest SelectionStrategyName = iota
	SelectionBestAvailable
	SelectionScoreThreshold
)

// Config is the minimal tunable parameter block of spec.md §6, plus the
// legacy_mode toggle of Design Note §9. NewDefault is the factory
// function call sites use to stay concise, mirroring
// poly/align.NewScoring().
type Config struct {
	// Pair validator bounds (spec.md §4.6).
	MinDorg, MaxDorg float64
	MinDv, MaxDv     float64
	MinPlaneAngle, MaxPlaneAngle float64
	MinDNN           float64
	OverlapThreshold float64
	MinBaseHBonds    int

	// Hydrogen-bond engine bounds (spec.md §4.5).
	HBondLower, HBondUpper float64
	AllowedHBondElements   string
	HBondStrategy          HBondStrategy

	// Helix organizer (spec.md §4.10).
	HelixBreakDistance float64
	StackedWCXAngle    float64
	O3PrimeLinkageCutoff float64

	// Selection (spec.md §4.9).
	SelectionStrategy SelectionStrategyName
	ScoreThreshold    float64 // only used by SelectionScoreThreshold

	// Design Note §9: legacy-compatibility behavior is gated by this
	// single flag. In this module it gates one behavior, C4 exclusion
	// during frame fitting (frame.Fitter); the H-bond engine and the
	// helix organizer do not read it.
	LegacyMode bool

	// HBondDist2 is the legacy secondary H-bond distance cutoff for
	// phase-3 conflict filtering. spec.md §9 flags that production sets
	// this to 0.0, disabling the filter, and that it is unclear whether
	// this is intentional; NewDefault preserves that value rather than
	// guessing a nonzero one. The hbond package does not read this field.
	HBondDist2 float64
}

// NewDefault returns a Config populated with the defaults spec.md §6
// lists.
func NewDefault() Config {
	return Config{
		MinDorg: 0, MaxDorg: 15,
		MinDv: 0, MaxDv: 2.5,
		MinPlaneAngle: 0, MaxPlaneAngle: 65,
		MinDNN:           4.5,
		OverlapThreshold: 0.01,
		MinBaseHBonds:    1,

		HBondLower:           1.8,
		HBondUpper:           4.0,
		AllowedHBondElements: ".N.O",
		HBondStrategy:        HBondStrategyClassification,

		HelixBreakDistance:   7.5,
		StackedWCXAngle:      125.0,
		O3PrimeLinkageCutoff: 2.5,

		SelectionStrategy: SelectionMutualBest,

		LegacyMode: false,
		HBondDist2: 0.0,
	}
}
