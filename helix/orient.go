package helix

import (
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

// strand1Residue returns whichever residue of p is currently assigned
// to strand 1 under swapped.
func strand1Residue(p model.BasePair, swapped bool) *model.Residue {
	if swapped {
		return p.Residue2
	}
	return p.Residue1
}

func strand2Residue(p model.BasePair, swapped bool) *model.Residue {
	if swapped {
		return p.Residue1
	}
	return p.Residue2
}

func strand1Frame(p model.BasePair, swapped bool) model.ReferenceFrame {
	if swapped {
		return p.Frame2
	}
	return p.Frame1
}

// vote is one sub-check's verdict on whether pair n's strand assignment
// should be swapped to stay consistent with pair m's.
type vote struct {
	swap  bool
	valid bool
}

// wcBPOrien implements spec.md §4.10's wc_bporien sub-check: the sign of
// the dot product of the two pairs' strand-1 z-axes indicates whether a
// swap is needed, but the signal is distrusted (marked invalid) when
// both pairs are Watson-Crick-like and the inter-pair x-axis angle
// exceeds the stacked-WC threshold, since a sharply bent stack makes the
// z-alignment heuristic unreliable.
func wcBPOrien(pm, pn model.BasePair, swapM bool, cfg config.Config) vote {
	fm := strand1Frame(pm, swapM)
	fn := strand1Frame(pn, false)
	bothWC := pm.TypeID == model.PairTypeWatsonCrick && pn.TypeID == model.PairTypeWatsonCrick
	xAngle := geom.AngleBetween(fm.X(), fn.X())
	if bothWC && xAngle > cfg.StackedWCXAngle {
		return vote{valid: false}
	}
	return vote{swap: fm.Z().Dot(fn.Z()) < 0, valid: true}
}

// checkO3Dist implements check_o3dist: compare the O3'-O3' distance
// between the candidate strand-1 residues against the cross-strand
// distance; the closer one indicates the true pairing.
func checkO3Dist(pm, pn model.BasePair, swapM bool, bb BackboneMap) vote {
	m1 := strand1Residue(pm, swapM).LegacyIdx
	n1 := strand1Residue(pn, false).LegacyIdx
	n2 := strand2Residue(pn, false).LegacyIdx

	dSame, okSame := o3Distance(m1, n1, bb)
	dCross, okCross := o3Distance(m1, n2, bb)
	if !okSame || !okCross {
		return vote{valid: false}
	}
	return vote{swap: dCross < dSame, valid: true}
}

// checkSChain implements check_schain: same-chain continuity between
// the candidate strand-1 residues outranks a match against the
// candidate's strand-2 residue.
func checkSChain(pm, pn model.BasePair, swapM bool) vote {
	m1 := strand1Residue(pm, swapM)
	n1 := strand1Residue(pn, false)
	n2 := strand2Residue(pn, false)
	switch {
	case m1.ChainID == n1.ChainID:
		return vote{swap: false, valid: true}
	case m1.ChainID == n2.ChainID:
		return vote{swap: true, valid: true}
	default:
		return vote{valid: false}
	}
}

// checkOthers implements check_others: whichever hypothesis puts the
// two strand-1 frame z-axes closer in angle is preferred.
func checkOthers(pm, pn model.BasePair, swapM bool) vote {
	fm := strand1Frame(pm, swapM)
	fn1 := strand1Frame(pn, false)
	fn2 := strand1Frame(pn, true)
	angleSame := geom.AngleBetween(fm.Z(), fn1.Z())
	angleCross := geom.AngleBetween(fm.Z(), fn2.Z())
	return vote{swap: angleCross < angleSame, valid: true}
}

// decideSwap combines the four sub-check votes by majority, with ties
// broken by a fixed precedence order. The reference's exact precedence
// for two-to-two disagreements was not available to inspect (its
// strand_direction_checker.cpp body is not present in the retrieved
// source); this order — wc_bporien, then check_o3dist, then
// check_schain, then check_others, matching the vote slice built by
// propagate below — is a recorded decision, not a transcription (see
// DESIGN.md).
func decideSwap(votes [4]vote) bool {
	swapCount, stayCount := 0, 0
	for _, v := range votes {
		if !v.valid {
			continue
		}
		if v.swap {
			swapCount++
		} else {
			stayCount++
		}
	}
	if swapCount != stayCount {
		return swapCount > stayCount
	}
	for _, v := range votes {
		if v.valid {
			return v.swap
		}
	}
	return false
}

// propagate decides pair n's swap flag relative to already-decided pair
// m (spec.md §4.10's propagation step).
func propagate(pm, pn model.BasePair, swapM bool, bb BackboneMap, cfg config.Config) bool {
	votes := [4]vote{
		wcBPOrien(pm, pn, swapM, cfg),
		checkO3Dist(pm, pn, swapM, bb),
		checkSChain(pm, pn, swapM),
		checkOthers(pm, pn, swapM),
	}
	return decideSwap(votes)
}

// firstStep implements spec.md §4.10's first-step rule: the first pair
// in a helix assigns strand 1 to whichever of its residues has a
// forward O3'→P linkage toward the second pair.
func firstStep(p0, p1 model.BasePair, bb BackboneMap, cfg config.Config) bool {
	r1, r2 := p0.Residue1.LegacyIdx, p0.Residue2.LegacyIdx
	o1, o2 := p1.Residue1.LegacyIdx, p1.Residue2.LegacyIdx
	cutoff := cfg.O3PrimeLinkageCutoff

	if checkLinkage(r1, o1, bb, cutoff) == LinkForward || checkLinkage(r1, o2, bb, cutoff) == LinkForward {
		return false
	}
	if checkLinkage(r2, o1, bb, cutoff) == LinkForward || checkLinkage(r2, o2, bb, cutoff) == LinkForward {
		return true
	}
	return false
}

// EnsureFiveToThree implements spec.md §4.10 step 3 for a single helix
// segment given in pair-walk order: first-step strand assignment,
// propagation, whole-helix direction-count flipping, and a localized
// second-strand correction pass. Returns the swap flag for each pair in
// the segment (parallel to pairIdx) and whether the segment's order had
// to be reversed.
func EnsureFiveToThree(pairs []model.BasePair, pairIdx []int, bb BackboneMap, cfg config.Config) (swapped []bool, reversed bool) {
	n := len(pairIdx)
	swapped = make([]bool, n)
	if n == 0 {
		return swapped, false
	}
	if n == 1 {
		return swapped, false
	}

	swapped[0] = firstStep(pairs[pairIdx[0]], pairs[pairIdx[1]], bb, cfg)
	for i := 1; i < n; i++ {
		swapped[i] = propagate(pairs[pairIdx[i-1]], pairs[pairIdx[i]], swapped[i-1], bb, cfg)
	}

	forward, reverse, none := 0, 0, 0
	for i := 0; i+1 < n; i++ {
		a := strand1Residue(pairs[pairIdx[i]], swapped[i]).LegacyIdx
		b := strand1Residue(pairs[pairIdx[i+1]], swapped[i+1]).LegacyIdx
		link := checkLinkage(a, b, bb, cfg.O3PrimeLinkageCutoff)
		updateDirectionCount(link, &forward, &reverse, &none)
	}
	if reverse > forward {
		reversed = true
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			swapped[i], swapped[j] = swapped[j], swapped[i]
		}
	}

	// Second-strand correction: flip any single pair whose strand-2
	// backbone linkage to its neighbors disagrees with the majority
	// direction established on strand 1 above.
	majorityForward := forward >= reverse
	for i := 1; i+1 < n; i++ {
		prevIdx, curIdx, nextIdx := pairIdx[i-1], pairIdx[i], pairIdx[i+1]
		a := strand2Residue(pairs[prevIdx], swapped[i-1]).LegacyIdx
		b := strand2Residue(pairs[curIdx], swapped[i]).LegacyIdx
		c := strand2Residue(pairs[nextIdx], swapped[i+1]).LegacyIdx
		linkIn := checkLinkage(b, a, bb, cfg.O3PrimeLinkageCutoff)
		linkOut := checkLinkage(c, b, bb, cfg.O3PrimeLinkageCutoff)
		disagrees := func(l LinkDirection) bool {
			if l == LinkNone {
				return false
			}
			isForward := l == LinkForward
			return isForward != majorityForward
		}
		if disagrees(linkIn) && disagrees(linkOut) {
			swapped[i] = !swapped[i]
		}
	}

	return swapped, reversed
}
