/*
Package slot implements the slot-based hydrogen-bond optimizer of spec.md
§4.5's alternative path: instead of classifying every geometrically
eligible candidate, it predicts where each donor's hydrogens and each
acceptor's lone pairs actually point and greedily assigns bonds to the
best-aligned slots, with capacity limits and bifurcation support.

Optimize plays the same role hbond.Detect does, producing a set of
hydrogen bonds for two residues, and is called directly: no stage of
this module dispatches to it from config.HBondStrategy, and the pair
validator always uses hbond.Detect.
*/
package slot

import (
	"math"
	"sort"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

// donorCapacity gives the number of hydrogen-atom slots a donor's
// functional group carries: 2 for an exocyclic amino group (N2, N4, N6),
// 1 for a ring N-H (N1, N3).
var donorCapacity = map[string]int{
	"N2": 2, "N4": 2, "N6": 2,
	"N1": 1, "N3": 1,
}

// acceptorCapacity gives the number of lone-pair slots an acceptor
// carries: 2 for a carbonyl oxygen, 1 for a ring nitrogen.
var acceptorCapacity = map[string]int{
	"O2": 2, "O4": 2, "O6": 2,
	"N1": 1, "N3": 1, "N7": 1,
}

// bifurcationThreshold is the minimum angular separation (degrees) spec.md
// §4.5 requires between two bond directions assigned to the same slot-
// bearing atom before the second is accepted as a bifurcated bond rather
// than rejected as a duplicate claim on the same slot.
const bifurcationThreshold = 60.0

func capacityOf(table map[string]int, atomName string) int {
	if c, ok := table[normalize(atomName)]; ok {
		return c
	}
	return 1
}

func normalize(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == ' ' {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// candidate is one geometrically eligible donor-acceptor pairing before
// slot assignment.
type candidate struct {
	donor, acceptor           model.Atom
	donorResIdx, acceptorIdx  model.LegacyIndex
	bondVec                   geom.Vector3 // donor -> acceptor, unit length
	distance                  float64
	alignment                 float64 // degrees; lower is better
}

// slotUsage tracks, per slot-bearing atom, the bond directions already
// assigned to it.
type slotUsage struct {
	capacity   int
	directions []geom.Vector3
}

func (u *slotUsage) accepts(dir geom.Vector3) bool {
	if len(u.directions) >= u.capacity {
		return false
	}
	for _, existing := range u.directions {
		if geom.AngleBetween(existing, dir) < bifurcationThreshold {
			return false
		}
	}
	return true
}

// Assignment is one hydrogen bond selected by the slot optimizer.
type Assignment struct {
	DonorAtom, AcceptorAtom string
	DonorResidueIdx         model.LegacyIndex
	AcceptorResidueIdx      model.LegacyIndex
	Distance                float64
	Alignment               float64
	Bifurcated              bool
}

// Optimize runs the slot-based alternative of spec.md §4.5 between two
// residues and returns the greedily assigned bonds, ordered by
// decreasing confidence (best alignment first).
func Optimize(r1, r2 *model.Residue, cfg config.Config) []Assignment {
	candidates := enumerate(r1, r2, cfg)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].alignment != candidates[j].alignment {
			return candidates[i].alignment < candidates[j].alignment
		}
		return candidates[i].distance < candidates[j].distance
	})

	donorUsage := map[string]*slotUsage{}
	acceptorUsage := map[string]*slotUsage{}

	var out []Assignment
	for _, c := range candidates {
		dKey := slotKey(c.donorResIdx, c.donor.Name)
		aKey := slotKey(c.acceptorIdx, c.acceptor.Name)

		dUsage := donorUsage[dKey]
		if dUsage == nil {
			dUsage = &slotUsage{capacity: capacityOf(donorCapacity, c.donor.Name)}
			donorUsage[dKey] = dUsage
		}
		aUsage := acceptorUsage[aKey]
		if aUsage == nil {
			aUsage = &slotUsage{capacity: capacityOf(acceptorCapacity, c.acceptor.Name)}
			acceptorUsage[aKey] = aUsage
		}

		if !dUsage.accepts(c.bondVec) || !aUsage.accepts(c.bondVec.Scale(-1)) {
			continue
		}

		bifurcated := len(dUsage.directions) > 0 || len(aUsage.directions) > 0
		dUsage.directions = append(dUsage.directions, c.bondVec)
		aUsage.directions = append(aUsage.directions, c.bondVec.Scale(-1))

		out = append(out, Assignment{
			DonorAtom: c.donor.Name, AcceptorAtom: c.acceptor.Name,
			DonorResidueIdx: c.donorResIdx, AcceptorResidueIdx: c.acceptorIdx,
			Distance: c.distance, Alignment: c.alignment, Bifurcated: bifurcated,
		})
	}
	return out
}

func slotKey(idx model.LegacyIndex, atomName string) string {
	return normalize(atomName) + "@" + itoa(int(idx))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func enumerate(r1, r2 *model.Residue, cfg config.Config) []candidate {
	var out []candidate
	for _, a1 := range r1.Atoms {
		role1 := classify.RoleOf(r1.Classification.Base, a1.Name)
		for _, a2 := range r2.Atoms {
			role2 := classify.RoleOf(r2.Classification.Base, a2.Name)

			if isDonorLike(role1) && isAcceptorLike(role2) {
				if c, ok := buildCandidate(r1, a1, r2, a2, cfg); ok {
					out = append(out, c)
				}
			}
			if isDonorLike(role2) && isAcceptorLike(role1) {
				if c, ok := buildCandidate(r2, a2, r1, a1, cfg); ok {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func isDonorLike(r classify.HBondRole) bool {
	return r == classify.RoleDonor || r == classify.RoleEither
}

func isAcceptorLike(r classify.HBondRole) bool {
	return r == classify.RoleAcceptor || r == classify.RoleEither
}

func buildCandidate(donorRes *model.Residue, donorAtom model.Atom, acceptorRes *model.Residue, acceptorAtom model.Atom, cfg config.Config) (candidate, bool) {
	d := donorAtom.Position.Sub(acceptorAtom.Position).Norm()
	if d < cfg.HBondLower || d > cfg.HBondUpper {
		return candidate{}, false
	}
	bondVec := acceptorAtom.Position.Sub(donorAtom.Position).Normalize()

	donorDir, donorOK := predictOutwardDirection(donorRes, donorAtom.Name)
	acceptorDir, acceptorOK := predictOutwardDirection(acceptorRes, acceptorAtom.Name)

	alignment := 0.0
	n := 0.0
	if donorOK {
		alignment += geom.AngleBetween(donorDir, bondVec)
		n++
	}
	if acceptorOK {
		alignment += geom.AngleBetween(acceptorDir, bondVec.Scale(-1))
		n++
	}
	if n > 0 {
		alignment /= n
	}

	return candidate{
		donor: donorAtom, acceptor: acceptorAtom,
		donorResIdx: donorRes.LegacyIdx, acceptorIdx: acceptorRes.LegacyIdx,
		bondVec: bondVec, distance: d, alignment: alignment,
	}, true
}

// predictOutwardDirection approximates the direction a donor's hydrogen
// or an acceptor's lone pair points, as the direction from the nearest
// other base atom to the atom in question (i.e. pointing away from the
// ring). This is a planar-geometry simplification of full sp2/sp3
// lone-pair prediction, sufficient to rank candidate bond directions
// against each other.
func predictOutwardDirection(r *model.Residue, atomName string) (geom.Vector3, bool) {
	atomPos, ok := r.AtomByName(atomName)
	if !ok {
		return geom.Vector3{}, false
	}
	var nearest model.Atom
	nearestDist := math.Inf(1)
	found := false
	for _, a := range r.Atoms {
		if normalize(a.Name) == normalize(atomName) {
			continue
		}
		if classify.NucleotideLocation(a.Name) != classify.LocationBase {
			continue
		}
		d := a.Position.Sub(atomPos.Position).Norm()
		if d < nearestDist {
			nearestDist = d
			nearest = a
			found = true
		}
	}
	if !found {
		return geom.Vector3{}, false
	}
	return atomPos.Position.Sub(nearest.Position).Normalize(), true
}
