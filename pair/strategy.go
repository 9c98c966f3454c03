package pair

import (
	"sort"

	"github.com/jyesselm/x3dna/event"
	"github.com/jyesselm/x3dna/model"
)

// Strategy selects a final, non-overlapping set of pairs from a
// candidate cache (spec.md §4.9: "The strategy interface admits alternate
// policies").
type Strategy interface {
	Select(c *Cache, sink event.Sink) [][2]model.LegacyIndex
}

// MutualBest is the default selection strategy of spec.md §4.9.
type MutualBest struct{}

// bestPartner finds the best (minimum adjusted quality) unmatched valid
// partner of i, returning its index and score, or ok=false if none
// remain.
func bestPartner(c *Cache, i model.LegacyIndex, matched map[model.LegacyIndex]bool) (best model.LegacyIndex, score float64, candidates []event.PartnerCandidate, ok bool) {
	partners := c.ValidPartners(i)
	first := true
	for _, j := range partners {
		if matched[j] {
			continue
		}
		info, found := c.Lookup(i, j)
		if !found {
			continue
		}
		candidates = append(candidates, event.PartnerCandidate{
			Partner: j, Score: info.AdjustedQuality, TypeID: info.TypeID, IsValid: info.Result.Valid,
		})
		if first || info.AdjustedQuality < score {
			best = j
			score = info.AdjustedQuality
			ok = true
			first = false
		}
	}
	return best, score, candidates, ok
}

// Select implements Strategy via spec.md §4.9's mutual-best fixed point:
// repeat passes until no new pair is accepted; within a pass, for each
// unmatched residue (ascending legacy index) find its best partner and
// accept the pair only if the relationship is mutual.
func (MutualBest) Select(c *Cache, sink event.Sink) [][2]model.LegacyIndex {
	if sink == nil {
		sink = event.Discard
	}
	matched := make(map[model.LegacyIndex]bool)
	var selected [][2]model.LegacyIndex

	iteration := 0
	for {
		pairsThisPass := 0
		for _, i := range c.Residues() {
			if matched[i] {
				continue
			}
			bestOfI, scoreI, candidatesI, okI := bestPartner(c, i, matched)
			sink.Emit(event.Record{Kind: event.KindBestPartnerCandidates, BestPartnerCandidates: &event.BestPartnerCandidates{
				I: i, Candidates: candidatesI, ChosenPartner: bestOfI, ChosenScore: scoreI, HasChosen: okI,
			}})
			if !okI {
				continue
			}

			bestOfJ, _, _, okJ := bestPartner(c, bestOfI, matched)
			isMutual := okJ && bestOfJ == i
			sink.Emit(event.Record{Kind: event.KindMutualBestCheck, MutualBestCheck: &event.MutualBestCheck{
				I: i, J: bestOfI, BestOfI: bestOfI, BestOfJ: bestOfJ, IsMutual: isMutual, WasSelected: isMutual,
			}})
			if !isMutual {
				continue
			}

			a, b := i, bestOfI
			if a > b {
				a, b = b, a
			}
			selected = append(selected, [2]model.LegacyIndex{a, b})
			matched[i] = true
			matched[bestOfI] = true
			pairsThisPass++
		}

		iteration++
		sink.Emit(event.Record{Kind: event.KindIterationComplete, IterationComplete: &event.IterationComplete{
			IterationNum: iteration, PairsThisPass: pairsThisPass, MatchedMask: matchedMask(c.Residues(), matched), TotalMatched: len(matched),
		}})
		if pairsThisPass == 0 {
			break
		}
	}

	sort.Slice(selected, func(a, b int) bool {
		if selected[a][0] != selected[b][0] {
			return selected[a][0] < selected[b][0]
		}
		return selected[a][1] < selected[b][1]
	})
	sink.Emit(event.Record{Kind: event.KindSelectionComplete, SelectionComplete: &event.SelectionComplete{SelectedPairs: selected}})
	return selected
}

func matchedMask(order []model.LegacyIndex, matched map[model.LegacyIndex]bool) []bool {
	out := make([]bool, len(order))
	for i, idx := range order {
		out[i] = matched[idx]
	}
	return out
}

// BestAvailable is a simpler alternate strategy (spec.md §4.9): greedily
// accept each unmatched residue's best remaining valid partner without
// requiring mutuality, in ascending legacy-index order.
type BestAvailable struct{}

// Select implements Strategy.
func (BestAvailable) Select(c *Cache, sink event.Sink) [][2]model.LegacyIndex {
	if sink == nil {
		sink = event.Discard
	}
	matched := make(map[model.LegacyIndex]bool)
	var selected [][2]model.LegacyIndex
	for _, i := range c.Residues() {
		if matched[i] {
			continue
		}
		best, _, _, ok := bestPartner(c, i, matched)
		if !ok {
			continue
		}
		a, b := i, best
		if a > b {
			a, b = b, a
		}
		selected = append(selected, [2]model.LegacyIndex{a, b})
		matched[i] = true
		matched[best] = true
	}
	sink.Emit(event.Record{Kind: event.KindSelectionComplete, SelectionComplete: &event.SelectionComplete{SelectedPairs: selected}})
	return selected
}

// ScoreThreshold accepts every valid pair whose adjusted quality is at or
// below a fixed cutoff, independent of mutuality or matching (spec.md
// §4.9's "score threshold" alternate policy); a residue may end up
// claimed by more than one accepted pair, so this strategy is intended
// for diagnostic use, not as a drop-in replacement for MutualBest's
// matching guarantee.
type ScoreThreshold struct {
	Threshold float64
}

// Select implements Strategy.
func (s ScoreThreshold) Select(c *Cache, sink event.Sink) [][2]model.LegacyIndex {
	if sink == nil {
		sink = event.Discard
	}
	var selected [][2]model.LegacyIndex
	for _, i := range c.Residues() {
		for _, j := range c.ValidPartners(i) {
			if j <= i {
				continue
			}
			info, _ := c.Lookup(i, j)
			if info.AdjustedQuality <= s.Threshold {
				selected = append(selected, [2]model.LegacyIndex{i, j})
			}
		}
	}
	sink.Emit(event.Record{Kind: event.KindSelectionComplete, SelectionComplete: &event.SelectionComplete{SelectedPairs: selected}})
	return selected
}
