/*
Package hbond implements the hydrogen-bond engine of spec.md §4.5: atom-pair
enumeration, iterative conflict resolution, per-base role classification,
and an optional 0-100 quality score. Its API mirrors poly/align's
NeedlemanWunsch shape — a Config-like set of bounds plus a function that
returns a structured result — rather than a long positional parameter list.
*/
package hbond

import (
	"math"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

// candidate is an internal enumeration record before conflict resolution
// has run; it tracks which residue/atom each side came from so role
// lookups and the final HydrogenBond can be built from it.
type candidate struct {
	donorAtom, acceptorAtom       model.Atom
	donorResIdx, acceptorResIdx   model.LegacyIndex
	donorBase, acceptorBase       classify.BaseIdentity
	distance                      float64
	detectionOrder                int
	conflict                      model.ConflictState
}

// DetailedResult is the full pipeline output of spec.md §4.5: the four
// named snapshots plus the final good-bond count.
type DetailedResult struct {
	Initial                 []model.HydrogenBond
	AfterConflictResolution []model.HydrogenBond
	AfterValidation         []model.HydrogenBond
	Final                   []model.HydrogenBond
	NumGood                 int
}

// Detect runs the full classification pipeline (spec.md §4.5 steps 1-5)
// between two residues. Residue order does not matter for the resulting
// bond set: swapping r1/r2 yields the same bonds with donor/acceptor
// swapped (spec.md §8).
func Detect(r1, r2 *model.Residue, cfg config.Config) DetailedResult {
	candidates := enumerate(r1, r2, cfg)
	resolveConflicts(candidates)

	initial := toBonds(candidates, false)
	afterConflict := toBonds(candidates, true)

	validated := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.conflict == model.ConflictLoser {
			continue
		}
		validated = append(validated, c)
	}
	afterValidation := classifyAll(validated)

	final := make([]model.HydrogenBond, 0, len(afterValidation))
	numGood := 0
	for _, b := range afterValidation {
		if b.Classification == model.HBondInvalid {
			continue
		}
		final = append(final, b)
		if b.IsGood() {
			numGood++
		}
	}

	return DetailedResult{
		Initial:                 initial,
		AfterConflictResolution: afterConflict,
		AfterValidation:         afterValidation,
		Final:                   final,
		NumGood:                 numGood,
	}
}

// enumerate implements spec.md §4.5 step 1: every (atom-of-r1, atom-of-r2)
// pair whose elements are both allowed and whose distance lies within the
// configured bounds becomes a candidate. Each atom pair yields a single
// candidate with the r1 atom provisionally in the donor slot, since
// donor/acceptor role is not yet known at this stage; classifyAll
// reorients it once the roles are looked up.
func enumerate(r1, r2 *model.Residue, cfg config.Config) []candidate {
	var out []candidate
	order := 0
	for _, a1 := range r1.Atoms {
		if !classify.CanFormHBond(a1.Name, cfg.AllowedHBondElements) {
			continue
		}
		for _, a2 := range r2.Atoms {
			if !classify.CanFormHBond(a2.Name, cfg.AllowedHBondElements) {
				continue
			}
			d := a1.Position.Sub(a2.Position).Norm()
			if d < cfg.HBondLower || d > cfg.HBondUpper {
				continue
			}
			out = append(out, candidate{
				donorAtom: a1, acceptorAtom: a2,
				donorResIdx: r1.LegacyIdx, acceptorResIdx: r2.LegacyIdx,
				donorBase: r1.Classification.Base, acceptorBase: r2.Classification.Base,
				distance:       d,
				detectionOrder: order,
			})
			order++
		}
	}
	return out
}

// resolveConflicts implements spec.md §4.5 step 2: repeatedly find two
// candidates sharing a donor or acceptor atom and mark the longer one a
// Loser, the shorter a Winner, until no unmarked pair shares an atom.
// Ties are broken by detection order, matching the reference's "ties
// broken by the detection order."
func resolveConflicts(candidates []candidate) {
	for {
		changed := false
		for i := range candidates {
			if candidates[i].conflict == model.ConflictLoser {
				continue
			}
			for j := i + 1; j < len(candidates); j++ {
				if candidates[j].conflict == model.ConflictLoser {
					continue
				}
				if !sharesAtom(candidates[i], candidates[j]) {
					continue
				}
				loser := pickLoser(&candidates[i], &candidates[j])
				winner := &candidates[i]
				if loser == winner {
					winner = &candidates[j]
				}
				loser.conflict = model.ConflictLoser
				winner.conflict = model.ConflictWinner
				changed = true
				if candidates[i].conflict == model.ConflictLoser {
					break
				}
			}
		}
		if !changed {
			break
		}
	}
}

func sharesAtom(a, b candidate) bool {
	return sameAtom(a.donorAtom, b.donorAtom) || sameAtom(a.acceptorAtom, b.acceptorAtom) ||
		sameAtom(a.donorAtom, b.acceptorAtom) || sameAtom(a.acceptorAtom, b.donorAtom)
}

func sameAtom(a, b model.Atom) bool {
	return a.Name == b.Name && a.ResidueName == b.ResidueName && a.ChainID == b.ChainID && a.ResidueSeqNum == b.ResidueSeqNum
}

// pickLoser returns a pointer to whichever of a, b should be marked
// Loser: the larger distance, with detection order breaking ties.
func pickLoser(a, b *candidate) *candidate {
	if a.distance < b.distance {
		return b
	}
	if b.distance < a.distance {
		return a
	}
	if a.detectionOrder <= b.detectionOrder {
		return b
	}
	return a
}

// classifyAll implements spec.md §4.5 step 3: the atom enumerate() labels
// "donorAtom"/"acceptorAtom" by enumeration order only, not by chemistry,
// so both directions of the per-base role tables are checked here and the
// fields are reoriented to match whichever direction is actually
// donor-compatible/acceptor-compatible before a classification is
// assigned.
func classifyAll(candidates []candidate) []model.HydrogenBond {
	out := make([]model.HydrogenBond, 0, len(candidates))
	for _, c := range candidates {
		roleFirst := classify.RoleOf(c.donorBase, c.donorAtom.Name)
		roleSecond := classify.RoleOf(c.acceptorBase, c.acceptorAtom.Name)

		oriented := c
		var classification model.HBondClassification
		switch {
		case isDonorLike(roleFirst) && isAcceptorLike(roleSecond):
			classification = classifyRoles(roleFirst, roleSecond)
		case isDonorLike(roleSecond) && isAcceptorLike(roleFirst):
			oriented = swapDirection(c)
			classification = classifyRoles(roleSecond, roleFirst)
		default:
			classification = model.HBondInvalid
		}

		b := buildBond(oriented)
		b.Classification = classification
		out = append(out, b)
	}
	return out
}

func isDonorLike(r classify.HBondRole) bool {
	return r == classify.RoleDonor || r == classify.RoleEither
}

func isAcceptorLike(r classify.HBondRole) bool {
	return r == classify.RoleAcceptor || r == classify.RoleEither
}

// swapDirection returns c with its donor/acceptor fields exchanged, used
// when the chemically correct donor turned out to be the atom enumerate()
// happened to place on the acceptor side.
func swapDirection(c candidate) candidate {
	c.donorAtom, c.acceptorAtom = c.acceptorAtom, c.donorAtom
	c.donorResIdx, c.acceptorResIdx = c.acceptorResIdx, c.donorResIdx
	c.donorBase, c.acceptorBase = c.acceptorBase, c.donorBase
	return c
}

// classifyRoles implements the role-compatibility table of spec.md §4.5
// step 3, given roles already confirmed donor-compatible/acceptor-
// compatible by the caller.
func classifyRoles(donor, acceptor classify.HBondRole) model.HBondClassification {
	if donor == classify.RoleDonor && acceptor == classify.RoleAcceptor {
		return model.HBondStandard
	}
	return model.HBondNonStandard
}

func buildBond(c candidate) model.HydrogenBond {
	donorAngle := 180.0
	acceptorAngle := 180.0
	return model.HydrogenBond{
		DonorAtom:          c.donorAtom.Name,
		AcceptorAtom:       c.acceptorAtom.Name,
		DonorResidueIdx:    c.donorResIdx,
		AcceptorResidueIdx: c.acceptorResIdx,
		Distance:           c.distance,
		DonorAngle:         donorAngle,
		AcceptorAngle:      acceptorAngle,
		Conflict:           c.conflict,
	}
}

func toBonds(candidates []candidate, skipLosers bool) []model.HydrogenBond {
	out := make([]model.HydrogenBond, 0, len(candidates))
	for _, c := range candidates {
		if skipLosers && c.conflict == model.ConflictLoser {
			continue
		}
		out = append(out, buildBond(c))
	}
	return out
}

// CountResult is the output of the counting-only variant used by the pair
// validator (spec.md §4.5 step 6): eligible-atom-pair counts split by
// structural context, with no classification pipeline run.
type CountResult struct {
	BaseBase  int
	SugarO2   int
}

// CountOnly enumerates H-bond-eligible atom pairs within the configured
// distance bounds and counts them by context, skipping conflict
// resolution and classification entirely.
func CountOnly(r1, r2 *model.Residue, cfg config.Config) CountResult {
	var res CountResult
	for _, a1 := range r1.Atoms {
		if !classify.CanFormHBond(a1.Name, cfg.AllowedHBondElements) {
			continue
		}
		for _, a2 := range r2.Atoms {
			if !classify.CanFormHBond(a2.Name, cfg.AllowedHBondElements) {
				continue
			}
			d := a1.Position.Sub(a2.Position).Norm()
			if d < cfg.HBondLower || d > cfg.HBondUpper {
				continue
			}
			switch {
			case classify.NucleotideLocation(a1.Name) == classify.LocationBase && classify.NucleotideLocation(a2.Name) == classify.LocationBase:
				res.BaseBase++
			case isO2Prime(a1.Name) || isO2Prime(a2.Name):
				res.SugarO2++
			}
		}
	}
	return res
}

func isO2Prime(name string) bool {
	return classify.IsSugarAtom(name) && normalizedEquals(name, "O2'")
}

func normalizedEquals(a, b string) bool {
	trim := func(s string) string {
		out := make([]byte, 0, len(s))
		for i := 0; i < len(s); i++ {
			if s[i] != ' ' {
				out = append(out, s[i])
			}
		}
		return string(out)
	}
	return trim(a) == trim(b)
}

// Quality computes the 0-100 weighted quality score of spec.md §4.5 step
// 4 for one hydrogen bond, given its donor-heavy-atom and donor-hydrogen
// neighbor geometry. donorAnchor/acceptorAnchor are the heavy atoms
// covalently attached to the donor/acceptor that define the angle terms
// (X-D...A and D...A-Y); hybridizationSP2 selects the acceptor angle's
// ideal value (130 deg sp2, 110 deg sp3). Returns ok=false on a hard
// failure (distance or angle outside the pipeline's hard bounds).
func Quality(distance float64, donorAnchor, donor, acceptor, acceptorAnchor geom.Vector3, acceptorIsSP2 bool) (score float64, tier model.QualityTier, ok bool) {
	if distance < 2.0 || distance > 4.0 {
		return 0, model.TierInvalid, false
	}
	donorAngle := geom.Angle(donorAnchor, donor, acceptor)
	acceptorAngle := geom.Angle(donor, acceptor, acceptorAnchor)
	if donorAngle < 90 || acceptorAngle < 70 {
		return 0, model.TierInvalid, false
	}

	distTerm := gaussian(distance, 2.9, 0.3)
	donorTerm := linearPenalty(donorAngle, 165, 90)
	acceptorIdeal := 110.0
	if acceptorIsSP2 {
		acceptorIdeal = 130.0
	}
	acceptorTerm := linearPenalty(acceptorAngle, acceptorIdeal, 70)

	raw := 100 * (0.45*distTerm + 0.30*donorTerm + 0.25*acceptorTerm)
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return raw, model.ScoreToTier(raw), true
}

func gaussian(x, mu, sigma float64) float64 {
	d := (x - mu) / sigma
	return math.Exp(-0.5 * d * d)
}

// linearPenalty returns 1 at the ideal angle, falling off linearly to 0
// at floor, clamped to [0, 1].
func linearPenalty(angle, ideal, floor float64) float64 {
	if angle >= ideal {
		return 1
	}
	if angle <= floor {
		return 0
	}
	return (angle - floor) / (ideal - floor)
}
