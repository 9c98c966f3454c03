package helix

import (
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

// LinkDirection is the outcome of an O3'-P backbone linkage check
// between two residues (spec.md §4.10).
type LinkDirection int

const (
	LinkNone LinkDirection = iota
	LinkForward
	LinkReverse
)

// backboneAtoms caches a residue's phosphate and 3'-oxygen positions.
type backboneAtoms struct {
	P, O3Prime       geom.Vector3
	HasP, HasO3Prime bool
}

// BackboneMap is the `residue-index → {P, O3'}` input spec.md §4.10
// requires the helix organizer to be given.
type BackboneMap map[model.LegacyIndex]backboneAtoms

// BuildBackboneMap extracts P and O3' positions for every residue that
// carries them.
func BuildBackboneMap(residues []*model.Residue) BackboneMap {
	bb := make(BackboneMap, len(residues))
	for _, r := range residues {
		var entry backboneAtoms
		if a, ok := r.AtomByName("P"); ok {
			entry.P, entry.HasP = a.Position, true
		}
		if a, ok := r.AtomByName("O3'"); ok {
			entry.O3Prime, entry.HasO3Prime = a.Position, true
		}
		if entry.HasP || entry.HasO3Prime {
			bb[r.LegacyIdx] = entry
		}
	}
	return bb
}

// checkLinkage implements the reference's backbone_linkage_checker:
// O3'[i]→P[j] within the cutoff is Forward (5'→3' from i to j), the
// reverse distance within cutoff is Reverse, otherwise None.
func checkLinkage(i, j model.LegacyIndex, bb BackboneMap, o3pUpper float64) LinkDirection {
	ai, oki := bb[i]
	aj, okj := bb[j]
	if !oki || !okj {
		return LinkNone
	}
	if ai.HasO3Prime && aj.HasP {
		if ai.O3Prime.Sub(aj.P).Norm() <= o3pUpper {
			return LinkForward
		}
	}
	if aj.HasO3Prime && ai.HasP {
		if aj.O3Prime.Sub(ai.P).Norm() <= o3pUpper {
			return LinkReverse
		}
	}
	return LinkNone
}

// o3Distance returns the O3'-O3' distance between two residues, or
// ok=false if either lacks the atom.
func o3Distance(i, j model.LegacyIndex, bb BackboneMap) (dist float64, ok bool) {
	ai, oki := bb[i]
	aj, okj := bb[j]
	if !oki || !okj || !ai.HasO3Prime || !aj.HasO3Prime {
		return 0, false
	}
	return ai.O3Prime.Sub(aj.O3Prime).Norm(), true
}

func updateDirectionCount(link LinkDirection, forward, reverse, none *int) {
	switch link {
	case LinkForward:
		*forward++
	case LinkReverse:
		*reverse++
	default:
		*none++
	}
}

// pairsConnected reports whether any of the four residue-pair
// combinations between p1 and p2 have a backbone linkage, matching the
// reference's are_pairs_connected used for break detection.
func pairsConnected(p1, p2 model.BasePair, bb BackboneMap, cfg config.Config) bool {
	if len(bb) == 0 {
		return true
	}
	i1, j1 := p1.Residue1.LegacyIdx, p1.Residue2.LegacyIdx
	i2, j2 := p2.Residue1.LegacyIdx, p2.Residue2.LegacyIdx
	cutoff := cfg.O3PrimeLinkageCutoff
	return checkLinkage(i1, i2, bb, cutoff) != LinkNone ||
		checkLinkage(j1, j2, bb, cutoff) != LinkNone ||
		checkLinkage(i1, j2, bb, cutoff) != LinkNone ||
		checkLinkage(j1, i2, bb, cutoff) != LinkNone
}
