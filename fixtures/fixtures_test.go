package fixtures

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/frame"
	"github.com/jyesselm/x3dna/helix"
	"github.com/jyesselm/x3dna/model"
	"github.com/jyesselm/x3dna/pair"
	"github.com/jyesselm/x3dna/step"
	"github.com/jyesselm/x3dna/template"
)

// pairsFromLadder walks a two-chain ladder structure and returns the
// model.BasePair for each rung in strand order, using the frames each
// residue already carries.
func pairsFromLadder(t *testing.T, s *model.Structure, n int) []model.BasePair {
	t.Helper()
	if len(s.Chains) < 2 {
		t.Fatalf("expected at least 2 chains, got %d", len(s.Chains))
	}
	a, b := s.Chains[0], s.Chains[1]
	if len(a.Residues) != n || len(b.Residues) != n {
		t.Fatalf("expected %d residues per chain, got %d and %d", n, len(a.Residues), len(b.Residues))
	}
	pairs := make([]model.BasePair, n)
	for i := 0; i < n; i++ {
		r1 := a.Residues[i]
		r2 := b.Residues[n-1-i]
		pairs[i] = model.NewBasePair(r1, r2, model.PairTypeWatsonCrick, 0)
	}
	return pairs
}

func TestIdealBDNADecamerHasExactStepParameters(t *testing.T) {
	s := IdealBDNADecamer()
	pairs := pairsFromLadder(t, s, 10)

	for i := 0; i+1 < len(pairs); i++ {
		params, swapped := step.Compute(pairs[i].Frame1, pairs[i+1].Frame1)
		if swapped {
			t.Fatalf("step %d: unexpected z-axis flip for a pure Z-rotation ladder", i)
		}
		if math.Abs(params.Twist-36.0) > 0.5 {
			t.Errorf("step %d: Twist = %v, want ~36.0", i, params.Twist)
		}
		if math.Abs(params.Rise-3.38) > 0.02 {
			t.Errorf("step %d: Rise = %v, want ~3.38", i, params.Rise)
		}
		for name, v := range map[string]float64{"Shift": params.Shift, "Slide": params.Slide, "Tilt": params.Tilt, "Roll": params.Roll} {
			if math.Abs(v) > 1e-6 {
				t.Errorf("step %d: %s = %v, want ~0", i, name, v)
			}
		}
	}
}

func TestIdealBDNADecamerPairsValidateEveryGate(t *testing.T) {
	s := IdealBDNADecamer()
	cfg := config.NewDefault()
	a, b := s.Chains[0], s.Chains[1]
	for i := range a.Residues {
		res := pair.Validate(a.Residues[i], b.Residues[len(b.Residues)-1-i], cfg)
		if !res.Valid {
			t.Errorf("rung %d: expected a valid Watson-Crick pair, got %+v", i, res)
		}
	}
}

func TestAFormRNAHexamerStepParametersAreInAFormRange(t *testing.T) {
	s := AFormRNAHexamer()
	pairs := pairsFromLadder(t, s, 6)

	for i := 0; i+1 < len(pairs); i++ {
		params, _ := step.Compute(pairs[i].Frame1, pairs[i+1].Frame1)
		hel := step.Helical(pairs[i].Frame1, pairs[i+1].Frame1, params)
		if hel.HTwist < 25 || hel.HTwist > 40 {
			t.Errorf("step %d: HTwist = %v, want roughly A-form (25-40 deg)", i, hel.HTwist)
		}
		if hel.HRise < 2.0 || hel.HRise > 3.5 {
			t.Errorf("step %d: HRise = %v, want roughly A-form (2.0-3.5 A)", i, hel.HRise)
		}
		if hel.Inclination < 5 {
			t.Errorf("step %d: Inclination = %v, want a pronounced positive tilt typical of A-form", i, hel.Inclination)
		}
		if hel.XDisplacement >= 0 {
			t.Errorf("step %d: XDisplacement = %v, want negative (A-form places the axis off the base pairs)", i, hel.XDisplacement)
		}
	}
}

func TestCircularClosureFormsOneCircularSegment(t *testing.T) {
	s := CircularClosure()
	pairs := pairsFromLadder(t, s, 6)
	_, segments := helix.Segment(pairs, config.NewDefault())
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1: %+v", len(segments), segments)
	}
	if !segments[0].IsCircular {
		t.Errorf("expected the ring to be detected as a circular segment")
	}
	if segments[0].Len() != 6 {
		t.Errorf("segment length = %d, want 6", segments[0].Len())
	}
}

func TestModifiedBasePairIsFlaggedAndValidates(t *testing.T) {
	s := ModifiedBasePair()
	a, b := s.Chains[0], s.Chains[1]
	if !b.Residues[0].Classification.Modified {
		t.Fatalf("expected the pseudouridine residue to be flagged Modified")
	}
	res := pair.Validate(a.Residues[0], b.Residues[0], config.NewDefault())
	if !res.Valid {
		t.Errorf("expected the G-pseudouridine pair to validate, got %+v", res)
	}
}

func TestIsolatedNucleotideHasNoPartnerCandidate(t *testing.T) {
	s := IsolatedNucleotide()
	chain := s.Chains[0]
	if len(chain.Residues) != 2 {
		t.Fatalf("expected 2 residues (nucleotide + ion), got %d", len(chain.Residues))
	}
	nt, ion := chain.Residues[0], chain.Residues[1]
	res := pair.Validate(nt, ion, config.NewDefault())
	if res.Valid {
		t.Errorf("expected the isolated nucleotide and the distant ion not to validate as a pair")
	}
}

func TestThreeWayJunctionFormsThreeIndependentHelicesPlusUnpairedLoop(t *testing.T) {
	s := ThreeWayJunction()
	if len(s.Chains) != 7 {
		t.Fatalf("got %d chains, want 7 (3 arms x 2 strands + 1 loop chain)", len(s.Chains))
	}
	var pairs []model.BasePair
	for arm := 0; arm < 3; arm++ {
		a, b := s.Chains[2*arm], s.Chains[2*arm+1]
		for i := range a.Residues {
			pairs = append(pairs, model.NewBasePair(a.Residues[i], b.Residues[len(b.Residues)-1-i], model.PairTypeWatsonCrick, 0))
		}
	}
	_, segments := helix.Segment(pairs, config.NewDefault())
	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3 independent arms: %+v", len(segments), segments)
	}
	for _, seg := range segments {
		if seg.Len() != 3 {
			t.Errorf("arm segment length = %d, want 3", seg.Len())
		}
		if seg.IsCircular {
			t.Errorf("expected each arm to be a linear segment")
		}
	}

	loop := s.Chains[6]
	if loop.ID != "J" || len(loop.Residues) != 2 {
		t.Fatalf("expected a 2-residue loop chain J, got %+v", loop)
	}
}

func TestJitterPreservesAtomCountAndPerturbsPositions(t *testing.T) {
	s := IdealBDNADecamer()
	jittered := Jitter(s, 0.05, 42)

	require.Len(t, jittered.Chains, len(s.Chains))
	moved := false
	for ci, chain := range s.Chains {
		jChain := jittered.Chains[ci]
		require.Len(t, jChain.Residues, len(chain.Residues), "chain %d", ci)
		for ri, r := range chain.Residues {
			jr := jChain.Residues[ri]
			require.Len(t, jr.Atoms, len(r.Atoms), "residue %d", ri)
			for ai, a := range r.Atoms {
				d := jr.Atoms[ai].Position.Sub(a.Position).Norm()
				assert.LessOrEqual(t, d, 0.05*math.Sqrt(3)+1e-9, "atom %d moved too far", ai)
				if d > 1e-9 {
					moved = true
				}
			}
			assert.Nil(t, jr.Frame, "Jitter must clear the copied residue's frame so the fitter actually reruns")
		}
	}
	assert.True(t, moved, "expected at least one atom to move under jitter")
}

func TestJitteredDecamerStillValidatesAsWatsonCrickAfterRefitting(t *testing.T) {
	s := Jitter(IdealBDNADecamer(), 0.03, 7)
	lib := template.NewLibrary(template.InMemoryLoader{})
	registry := classify.NewModifiedNucleotideRegistry()
	fitter := frame.NewFitter(lib, registry, config.NewDefault(), false, nil)
	for _, chain := range s.Chains {
		for _, r := range chain.Residues {
			fitter.Fit(r)
		}
	}

	a, b := s.Chains[0], s.Chains[1]
	for i := range a.Residues {
		r1, r2 := a.Residues[i], b.Residues[len(b.Residues)-1-i]
		res := pair.Validate(r1, r2, config.NewDefault())
		assert.True(t, res.Valid, "rung %d: expected a small coordinate jitter to still validate, got %+v", i, res)
	}
}
