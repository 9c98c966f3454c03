package helix

import (
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/model"
)

// Result is the full output of spec.md §4.10: a reordered pair index
// list, the helix segments carving it up, and a strand-swap flag
// parallel to Order.
type Result struct {
	Order    []int
	Segments []model.HelixSegment
	Swapped  []bool
}

// Organize runs the full helix organizer: pair-context segmentation
// followed by per-helix 5'→3' canonicalization and break detection.
func Organize(pairs []model.BasePair, residues []*model.Residue, cfg config.Config) Result {
	order, segments := Segment(pairs, cfg)
	bb := BuildBackboneMap(residues)
	swapped := make([]bool, len(order))

	for segIdx, seg := range segments {
		pairIdx := order[seg.Start:seg.End]
		segSwapped, reversed := EnsureFiveToThree(pairs, pairIdx, bb, cfg)
		if reversed {
			for i, j := 0, len(pairIdx)-1; i < j; i, j = i+1, j-1 {
				pairIdx[i], pairIdx[j] = pairIdx[j], pairIdx[i]
			}
		}
		copy(swapped[seg.Start:seg.End], segSwapped)

		hasBreak := false
		for i := seg.Start; i+1 < seg.End; i++ {
			if !pairsConnected(pairs[order[i]], pairs[order[i+1]], bb, cfg) {
				hasBreak = true
				break
			}
		}
		if seg.IsCircular && len(pairIdx) > 1 {
			if !pairsConnected(pairs[order[seg.End-1]], pairs[order[seg.Start]], bb, cfg) {
				hasBreak = true
			}
		}
		segments[segIdx].HasBreak = hasBreak
	}

	return Result{Order: order, Segments: segments, Swapped: swapped}
}
