package pair

import (
	"math"
	"testing"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/event"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

func mkAtom(resName, chain string, seq int, name string, x, y, z float64) model.Atom {
	return model.NewAtom(name, resName, chain, seq, ' ', string(classify.GetElement(name)), geom.Vector3{X: x, Y: y, Z: z}, 1, 20, model.RecordATOM)
}

// designedPair builds a synthetic, hand-verified purine/pyrimidine pair
// whose geometry is engineered to clear every §4.6 gate: two offset 2x2
// squares standing in for the ring polygons (overlap area 2.25), origins
// 0.707 apart with zero vertical displacement, parallel planes, a
// glycosidic-nitrogen separation of ~5.05, and two N...N distances
// (3.54 and 2.12 Å) that fall inside the hydrogen-bond window.
func designedPair() (*model.Residue, *model.Residue) {
	g := &model.Residue{
		Name:           "DG",
		LegacyIdx:      1,
		Classification: model.ResidueClassification{Kind: classify.MoleculeDNA, Base: classify.BaseG},
		Atoms: []model.Atom{
			mkAtom("DG", "A", 1, "N1", -1, -1, 0),
			mkAtom("DG", "A", 1, "C2", 1, -1, 0),
			mkAtom("DG", "A", 1, "N3", 1, 1, 0),
			mkAtom("DG", "A", 1, "C4", -1, 1, 0),
			mkAtom("DG", "A", 1, "N9", -1, -1, 5),
		},
		Frame: &model.ReferenceFrame{Rotation: geom.Identity3(), Origin: geom.Vector3{}},
	}
	c := &model.Residue{
		Name:           "DC",
		LegacyIdx:      2,
		Classification: model.ResidueClassification{Kind: classify.MoleculeDNA, Base: classify.BaseC},
		Atoms: []model.Atom{
			mkAtom("DC", "A", 2, "N1", -0.5, -0.5, 0),
			mkAtom("DC", "A", 2, "C2", 1.5, -0.5, 0),
			mkAtom("DC", "A", 2, "N3", 1.5, 1.5, 0),
			mkAtom("DC", "A", 2, "C4", -0.5, 1.5, 0),
		},
		Frame: &model.ReferenceFrame{Rotation: geom.Identity3(), Origin: geom.Vector3{X: 0.5, Y: 0.5, Z: 0}},
	}
	return g, c
}

func TestValidateDesignedPairPassesEveryGate(t *testing.T) {
	g, c := designedPair()
	cfg := config.NewDefault()

	res := Validate(g, c, cfg)
	if !res.Valid {
		t.Fatalf("expected designed pair to be valid: %+v", res)
	}
	if math.Abs(res.Dorg-math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("Dorg = %v, want sqrt(0.5)", res.Dorg)
	}
	if math.Abs(res.OverlapArea-2.25) > 1e-6 {
		t.Errorf("OverlapArea = %v, want 2.25", res.OverlapArea)
	}
	if !res.PassDNN {
		t.Errorf("expected PassDNN, got DNN=%v", res.DNN)
	}
	if res.BaseHBondCount < 1 {
		t.Errorf("BaseHBondCount = %d, want >= 1", res.BaseHBondCount)
	}
}

func TestValidateSymmetricObservables(t *testing.T) {
	g, c := designedPair()
	cfg := config.NewDefault()

	forward := Validate(g, c, cfg)
	backward := Validate(c, g, cfg)

	if forward.Valid != backward.Valid {
		t.Errorf("validity differs under argument swap: %v vs %v", forward.Valid, backward.Valid)
	}
	if math.Abs(forward.Dorg-backward.Dorg) > 1e-9 {
		t.Errorf("Dorg not symmetric: %v vs %v", forward.Dorg, backward.Dorg)
	}
	if math.Abs(forward.OverlapArea-backward.OverlapArea) > 1e-6 {
		t.Errorf("OverlapArea not symmetric: %v vs %v", forward.OverlapArea, backward.OverlapArea)
	}
	if math.Abs(forward.PlaneAngle-backward.PlaneAngle) > 1e-9 {
		t.Errorf("PlaneAngle not symmetric: %v vs %v", forward.PlaneAngle, backward.PlaneAngle)
	}
	// dir_x/dir_y/dir_z are dot products of corresponding axes, so they
	// are exactly invariant (not just equal in magnitude) under swap.
	if forward.DirX != backward.DirX || forward.DirY != backward.DirY || forward.DirZ != backward.DirZ {
		t.Errorf("dir_x/dir_y/dir_z not invariant under swap: forward (%v,%v,%v) backward (%v,%v,%v)",
			forward.DirX, forward.DirY, forward.DirZ, backward.DirX, backward.DirY, backward.DirZ)
	}
}

func TestClassifyIdentifiesWatsonCrick(t *testing.T) {
	g, c := designedPair()
	typeID := Classify(g, c)
	if typeID != model.PairTypeWatsonCrick {
		t.Errorf("Classify = %v, want PairTypeWatsonCrick", typeID)
	}
}

func TestAdjustedQualityNeverExceedsRawQuality(t *testing.T) {
	g, c := designedPair()
	cfg := config.NewDefault()
	res := Validate(g, c, cfg)
	typeID := Classify(g, c)
	adj := AdjustedQuality(res, typeID)
	if adj > res.RawQuality {
		t.Errorf("AdjustedQuality = %v, want <= RawQuality = %v", adj, res.RawQuality)
	}
}

func threeResidueChain() []*model.Residue {
	g, c := designedPair()
	// A third residue far away from both: no valid partners, exercises
	// Cache/selection with an always-unmatched residue present.
	isolated := &model.Residue{
		Name:           "DA",
		LegacyIdx:      3,
		Classification: model.ResidueClassification{Kind: classify.MoleculeDNA, Base: classify.BaseA},
		Atoms: []model.Atom{
			mkAtom("DA", "B", 3, "N1", 500, 500, 500),
		},
		Frame: &model.ReferenceFrame{Rotation: geom.Identity3(), Origin: geom.Vector3{X: 500, Y: 500, Z: 500}},
	}
	return []*model.Residue{g, c, isolated}
}

func TestCacheBuildPopulatesPartnerIndices(t *testing.T) {
	residues := threeResidueChain()
	cache := Build(residues, config.NewDefault())

	if len(cache.ValidPartners(1)) != 1 || cache.ValidPartners(1)[0] != 2 {
		t.Errorf("ValidPartners(1) = %v, want [2]", cache.ValidPartners(1))
	}
	if len(cache.ValidPartners(3)) != 0 {
		t.Errorf("ValidPartners(3) = %v, want none (isolated residue)", cache.ValidPartners(3))
	}
	if len(cache.AllPartners(3)) != 2 {
		t.Errorf("AllPartners(3) = %v, want 2 (evaluated against both other residues)", cache.AllPartners(3))
	}
	info, ok := cache.Lookup(2, 1)
	if !ok || info.I != 1 || info.J != 2 {
		t.Errorf("Lookup(2,1) = %+v, ok=%v, want normalized (1,2)", info, ok)
	}
}

func TestMutualBestSelectsTheOnlyValidPairAndLeavesIsolatedUnmatched(t *testing.T) {
	residues := threeResidueChain()
	cache := Build(residues, config.NewDefault())

	sink := &event.SliceSink{}
	selected := MutualBest{}.Select(cache, sink)

	if len(selected) != 1 {
		t.Fatalf("got %d selected pairs, want 1: %v", len(selected), selected)
	}
	if selected[0] != [2]model.LegacyIndex{1, 2} {
		t.Errorf("selected pair = %v, want (1,2)", selected[0])
	}

	seen := make(map[model.LegacyIndex]int)
	for _, p := range selected {
		seen[p[0]]++
		seen[p[1]]++
	}
	for idx, count := range seen {
		if count > 1 {
			t.Errorf("residue %d appears in %d selected pairs, want at most 1", idx, count)
		}
	}

	sawComplete := false
	for _, r := range sink.Records {
		if r.Kind == event.KindSelectionComplete {
			sawComplete = true
		}
	}
	if !sawComplete {
		t.Errorf("expected a KindSelectionComplete event on the sink")
	}
}

func TestMutualBestIsIdempotentOnItsOwnOutput(t *testing.T) {
	// Re-running selection over the same cache must reproduce the same
	// fixed point (spec.md §8).
	residues := threeResidueChain()
	cache := Build(residues, config.NewDefault())

	first := MutualBest{}.Select(cache, nil)
	second := MutualBest{}.Select(cache, nil)

	if len(first) != len(second) {
		t.Fatalf("selection not deterministic: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("selection not deterministic at %d: %v vs %v", i, first[i], second[i])
		}
	}
}
