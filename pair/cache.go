package pair

import (
	"sort"

	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/model"
)

// CandidateInfo is the cached per-pair verdict of spec.md §4.8.
type CandidateInfo struct {
	I, J             model.LegacyIndex
	Result           model.ValidationResult
	TypeID           model.PairTypeID
	AdjustedQuality  float64
}

// Cache precomputes every ordered-by-index candidate pair among a set of
// nucleotide residues (spec.md §4.8), keyed by the normalized (i, j) with
// i < j, and exposes the two inverted indices the selection strategy and
// diagnostics need.
type Cache struct {
	byPair       map[[2]model.LegacyIndex]CandidateInfo
	validPartners map[model.LegacyIndex][]model.LegacyIndex
	allPartners   map[model.LegacyIndex][]model.LegacyIndex
	order         []model.LegacyIndex
}

// Build constructs the candidate cache over residues (already filtered to
// nucleotides with assigned frames), iterating in ascending legacy-index
// order so diagnostic emission is deterministic (spec.md §4.8, §5).
func Build(residues []*model.Residue, cfg config.Config) *Cache {
	sorted := make([]*model.Residue, len(residues))
	copy(sorted, residues)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].LegacyIdx < sorted[b].LegacyIdx })

	c := &Cache{
		byPair:        make(map[[2]model.LegacyIndex]CandidateInfo),
		validPartners: make(map[model.LegacyIndex][]model.LegacyIndex),
		allPartners:   make(map[model.LegacyIndex][]model.LegacyIndex),
	}
	for _, r := range sorted {
		c.order = append(c.order, r.LegacyIdx)
	}

	for a := 0; a < len(sorted); a++ {
		ri := sorted[a]
		if !ri.HasFrame() {
			continue
		}
		for b := a + 1; b < len(sorted); b++ {
			rj := sorted[b]
			if !rj.HasFrame() {
				continue
			}
			res := Validate(ri, rj, cfg)
			typeID := model.PairTypeNonCanonical
			if res.Valid {
				typeID = Classify(ri, rj)
			}
			adj := AdjustedQuality(res, typeID)

			key := [2]model.LegacyIndex{ri.LegacyIdx, rj.LegacyIdx}
			c.byPair[key] = CandidateInfo{I: ri.LegacyIdx, J: rj.LegacyIdx, Result: res, TypeID: typeID, AdjustedQuality: adj}

			c.allPartners[ri.LegacyIdx] = append(c.allPartners[ri.LegacyIdx], rj.LegacyIdx)
			c.allPartners[rj.LegacyIdx] = append(c.allPartners[rj.LegacyIdx], ri.LegacyIdx)
			if res.Valid {
				c.validPartners[ri.LegacyIdx] = append(c.validPartners[ri.LegacyIdx], rj.LegacyIdx)
				c.validPartners[rj.LegacyIdx] = append(c.validPartners[rj.LegacyIdx], ri.LegacyIdx)
			}
		}
	}
	return c
}

func normalizeKey(i, j model.LegacyIndex) [2]model.LegacyIndex {
	if i > j {
		i, j = j, i
	}
	return [2]model.LegacyIndex{i, j}
}

// Lookup returns the cached CandidateInfo for (i, j) in either order.
func (c *Cache) Lookup(i, j model.LegacyIndex) (CandidateInfo, bool) {
	info, ok := c.byPair[normalizeKey(i, j)]
	return info, ok
}

// ValidPartners returns the residues i has a valid pair with, in cache
// construction order.
func (c *Cache) ValidPartners(i model.LegacyIndex) []model.LegacyIndex {
	return c.validPartners[i]
}

// AllPartners returns every residue i was evaluated against, valid or
// not.
func (c *Cache) AllPartners(i model.LegacyIndex) []model.LegacyIndex {
	return c.allPartners[i]
}

// ValidCount returns the total number of valid pairs in the cache.
func (c *Cache) ValidCount() int {
	count := 0
	for _, info := range c.byPair {
		if info.Result.Valid {
			count++
		}
	}
	return count
}

// Residues returns the legacy indices considered, in iteration order.
func (c *Cache) Residues() []model.LegacyIndex {
	return c.order
}
