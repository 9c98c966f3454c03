package model

// PairTypeID classifies a base pair's geometry (spec.md §4.7): -1 for
// geometrically implausible, 0 for non-canonical, 1 for wobble, 2 for
// Watson-Crick.
type PairTypeID int

const (
	PairTypeImplausible PairTypeID = -1
	PairTypeNonCanonical PairTypeID = 0
	PairTypeWobble       PairTypeID = 1
	PairTypeWatsonCrick  PairTypeID = 2
)

// BasePair is an ordered pair of residues, normalized so the smaller
// legacy index is first (spec.md §3). Both residues must be nucleotides
// and both frames must exist at construction time; BasePair is never
// mutated after creation.
type BasePair struct {
	Residue1 *Residue
	Residue2 *Residue

	Frame1 ReferenceFrame
	Frame2 ReferenceFrame

	// FindingOrderReversed records whether the original (i, j) discovery
	// order had to be swapped to put the smaller legacy index first.
	FindingOrderReversed bool

	TypeID  PairTypeID
	Quality float64
}

// NewBasePair constructs a BasePair from two residues that must both
// already carry frames, normalizing index order.
func NewBasePair(r1, r2 *Residue, typeID PairTypeID, quality float64) BasePair {
	reversed := false
	a, b := r1, r2
	if a.LegacyIdx > b.LegacyIdx {
		a, b = b, a
		reversed = true
	}
	return BasePair{
		Residue1:             a,
		Residue2:             b,
		Frame1:               *a.Frame,
		Frame2:               *b.Frame,
		FindingOrderReversed: reversed,
		TypeID:               typeID,
		Quality:              quality,
	}
}

// LegacyIndices returns the normalized (smaller, larger) legacy index
// pair.
func (bp BasePair) LegacyIndices() (LegacyIndex, LegacyIndex) {
	return bp.Residue1.LegacyIdx, bp.Residue2.LegacyIdx
}
