package classify

import "testing"

func TestGetElement(t *testing.T) {
	cases := map[string]Element{
		" P  ": ElementP,
		" N1 ": ElementN,
		" C1'": ElementC,
		" O2'": ElementO,
		"1H5'": ElementH,
	}
	for name, want := range cases {
		if got := GetElement(name); got != want {
			t.Errorf("GetElement(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsRingAtom(t *testing.T) {
	if !IsRingAtom(" N9 ") {
		t.Errorf("N9 should be a ring atom")
	}
	if IsRingAtom(" P  ") {
		t.Errorf("P should not be a ring atom")
	}
}

func TestModifiedNucleotideRegistry(t *testing.T) {
	r := NewModifiedNucleotideRegistry()
	id, modified, ok := r.Resolve("PSU")
	if !ok || !modified || id != BasePseudoU {
		t.Errorf("Resolve(PSU) = (%v, %v, %v), want (P, true, true)", id, modified, ok)
	}
	id, modified, ok = r.Resolve("DG")
	if !ok || modified || id != BaseG {
		t.Errorf("Resolve(DG) = (%v, %v, %v), want (G, false, true)", id, modified, ok)
	}
	_, _, ok = r.Resolve("HOH")
	if ok {
		t.Errorf("Resolve(HOH) should not resolve as a nucleotide")
	}
}

func TestIsWatsonCrickPair(t *testing.T) {
	pairs := [][2]BaseIdentity{{BaseA, BaseT}, {BaseG, BaseC}, {BaseA, BaseU}}
	for _, p := range pairs {
		if !IsWatsonCrickPair(p[0], p[1]) {
			t.Errorf("IsWatsonCrickPair(%v, %v) = false, want true", p[0], p[1])
		}
	}
	if IsWatsonCrickPair(BaseG, BaseA) {
		t.Errorf("IsWatsonCrickPair(G, A) = true, want false")
	}
}

func TestBaseComposition(t *testing.T) {
	bases := []BaseIdentity{BaseA, BaseA, BaseG, BaseC, BaseT}
	frac, counts := BaseComposition(bases)
	if frac != 0.6 {
		t.Errorf("purine fraction = %v, want 0.6", frac)
	}
	if counts[BaseA] != 2 {
		t.Errorf("counts[A] = %d, want 2", counts[BaseA])
	}
}
