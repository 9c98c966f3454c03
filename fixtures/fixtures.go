/*
Package fixtures builds the programmatic structures spec.md §8 asks the
test suite to ship: an ideal B-form decamer, an A-form hexamer, a
circular-closure helix, a modified-base pair, an isolated nucleotide next
to a distant ion, and a three-way junction. Each one is grounded on the
same shape of setup used by the x3dna reference's own
tests/unit/algorithms/test_base_pair_finder.cpp and
test_base_pair_validator.cpp: a Structure built directly in memory,
frames assigned by construction rather than read from a coordinate file,
so the geometry pipeline can be exercised without a PDB/mmCIF parser.

Every scenario is built by rigidly transforming one hand-verified
Watson-Crick pair "unit" (same atom layout the pair package's own tests
verify against every validator gate) through a per-scenario sequence of
rotations and translations. Because a common rigid motion applied to an
entire base pair carries its validator observables (dorg, overlap area,
plane angle, dNN, H-bond geometry) and its derived mid-frame along
unchanged in relative terms, every placed copy of the unit is exactly as
valid as the original, and the step parameters between consecutive
copies are exactly the values the transform was built to realize. See
DESIGN.md for the full argument.

Frames are assigned directly on the constructed residues rather than
recovered by the frame fitter: x3dna.FindPair and x3dna.Analyze only fit
a frame for a residue that does not already carry one, so these fixtures
exercise every later pipeline stage (H-bond enumeration, pair validation
and selection, helix organization, step parameters) while deliberately
not exercising the Kabsch fit itself, which already has direct coverage
in frame/fitter_test.go.
*/
package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
)

var (
	ex = geom.Vector3{X: 1}
	ey = geom.Vector3{Y: 1}
	ez = geom.Vector3{Z: 1}
)

// rigid is a rotation-then-translate rigid motion of all of 3-space.
type rigid struct {
	Rot geom.Matrix3
	T   geom.Vector3
}

func identityRigid() rigid { return rigid{Rot: geom.Identity3()} }

func (r rigid) point(p geom.Vector3) geom.Vector3 {
	return r.Rot.MulVec(p).Add(r.T)
}

func (r rigid) frame(f model.ReferenceFrame) model.ReferenceFrame {
	return model.ReferenceFrame{Rotation: r.Rot.Mul(f.Rotation), Origin: r.point(f.Origin)}
}

// then returns the rigid motion "apply r, then apply s".
func (r rigid) then(s rigid) rigid {
	return rigid{Rot: s.Rot.Mul(r.Rot), T: s.Rot.MulVec(r.T).Add(s.T)}
}

func rotationAbout(axis geom.Vector3, angleDeg float64) geom.Matrix3 {
	return geom.NewMatrix3FromColumns(
		geom.RotateAroundAxis(ex, axis, angleDeg),
		geom.RotateAroundAxis(ey, axis, angleDeg),
		geom.RotateAroundAxis(ez, axis, angleDeg),
	)
}

func rotateRigid(axis geom.Vector3, angleDeg float64) rigid {
	return rigid{Rot: rotationAbout(axis, angleDeg)}
}

func translateRigid(t geom.Vector3) rigid {
	return rigid{Rot: geom.Identity3(), T: t}
}

// bpUnit is a single hand-verified Watson-Crick-geometry pair, recentered
// so that its own pair mid-frame (the step package's degenerate-branch
// construction between res1Frame and res2Frame) sits at the origin with
// identity rotation. This is the same G-C layout pair/pair_test.go's
// designedPair() verifies against every validator gate in §4.6, shifted
// by (-0.25, -0.25, 0) so the pair's own midpoint lands on the origin.
type bpUnit struct {
	base1, base2   classify.BaseIdentity
	name1, name2   string
	atoms1, atoms2 []model.Atom
	frame1, frame2 model.ReferenceFrame
}

func wcGCUnit() bpUnit {
	mkFrame := func(ox, oy float64) model.ReferenceFrame {
		return model.ReferenceFrame{Rotation: geom.Identity3(), Origin: geom.Vector3{X: ox, Y: oy}}
	}
	atom := func(name, resName string, x, y, z float64) model.Atom {
		return model.NewAtom(name, resName, "", 0, ' ', firstLetter(name), geom.Vector3{X: x, Y: y, Z: z}, 1, 20, model.RecordATOM)
	}
	g := []model.Atom{
		atom("N1", "DG", -1.25, -1.25, 0),
		atom("C2", "DG", 0.75, -1.25, 0),
		atom("N3", "DG", 0.75, 0.75, 0),
		atom("C4", "DG", -1.25, 0.75, 0),
		atom("N9", "DG", -1.25, -1.25, 5),
	}
	c := []model.Atom{
		atom("N1", "DC", -0.75, -0.75, 0),
		atom("C2", "DC", 1.25, -0.75, 0),
		atom("N3", "DC", 1.25, 1.25, 0),
		atom("C4", "DC", -0.75, 1.25, 0),
	}
	return bpUnit{
		base1: classify.BaseG, base2: classify.BaseC,
		name1: "DG", name2: "DC",
		atoms1: g, atoms2: c,
		frame1: mkFrame(-0.25, -0.25),
		frame2: mkFrame(0.25, 0.25),
	}
}

func firstLetter(atomName string) string {
	if len(atomName) == 0 {
		return ""
	}
	return string(atomName[0])
}

// seqCounter hands out cosmetic, per-structure-build sequence numbers;
// it carries no semantic weight (LegacyIndex, assigned fresh by
// Structure.AssignLegacyIndices, is the identifier every other package
// actually uses).
type seqCounter struct{ n int }

func (c *seqCounter) next() int {
	c.n++
	return c.n
}

// place builds the two residues of unit under the rigid motion t,
// assigning them to chainA/chainB.
func place(unit bpUnit, t rigid, chainA, chainB string, rna bool) (*model.Residue, *model.Residue) {
	kind := classify.MoleculeDNA
	if rna {
		kind = classify.MoleculeRNA
	}
	transformAtoms := func(atoms []model.Atom, chain string) []model.Atom {
		out := make([]model.Atom, len(atoms))
		for i, a := range atoms {
			a.ChainID = chain
			a.Position = t.point(a.Position)
			out[i] = a
		}
		return out
	}
	r1 := &model.Residue{
		Name:    unit.name1,
		ChainID: chainA,
		Atoms:   transformAtoms(unit.atoms1, chainA),
		Classification: model.ResidueClassification{
			Kind: kind, Base: unit.base1,
		},
		Frame: refPtr(t.frame(unit.frame1)),
	}
	r2 := &model.Residue{
		Name:    unit.name2,
		ChainID: chainB,
		Atoms:   transformAtoms(unit.atoms2, chainB),
		Classification: model.ResidueClassification{
			Kind: kind, Base: unit.base2,
		},
		Frame: refPtr(t.frame(unit.frame2)),
	}
	return r1, r2
}

func refPtr(f model.ReferenceFrame) *model.ReferenceFrame { return &f }

// IdealBDNADecamer builds a 10-bp ideal B-form double helix: standard
// twist of 36 degrees and rise of 3.38 Angstroms between every
// consecutive pair, realized by applying a pure rotation-about-Z plus
// Z-translation to the same pair unit at each rung (spec.md §8 scenario
// 1).
func IdealBDNADecamer() *model.Structure {
	return idealLadder(10, "DNAF", "DNAR", 36.0, 3.38, false)
}

// AFormRNAHexamer builds a 6-bp A-form duplex: per-step twist near 32.7
// degrees, inclination near 15 degrees, and negative x-displacement
// (spec.md §8 scenario 2), realized as a regular screw motion (a
// rotation about a fixed, Z-tilted axis combined with translation along
// that axis) applied repeatedly to the same pair unit — the standard
// construction of a regular helical array, whose helical parameters are
// exactly the screw motion's own angle/translation/axis-tilt/offset by
// definition.
func AFormRNAHexamer() *model.Structure {
	const (
		n           = 6
		twist       = 32.7
		rise        = 2.81
		inclination = 15.0
		xOffset     = -4.0
	)
	unit := wcGCUnit()
	axis := geom.RotateAroundAxis(ez, ex, inclination)
	incline := rotateRigid(ex, inclination)
	// M0: tilt the unit's own pair frame by `inclination`, then offset
	// its origin perpendicular to the screw axis by xOffset along global
	// X (the axis has zero X-component for any tilt about X, so this
	// offset is exactly perpendicular to it).
	m0 := incline.then(translateRigid(geom.Vector3{X: xOffset}))
	step := screwRigid(axis, twist, rise)

	s := model.NewStructure("a-form-rna-hexamer")
	chainA := &model.Chain{ID: "A"}
	chainB := &model.Chain{ID: "B"}
	seq := &seqCounter{}
	t := m0
	for k := 0; k < n; k++ {
		r1, r2 := place(unit, t, "A", "B", true)
		r1.SeqNum, r2.SeqNum = seq.next(), seq.next()
		chainA.Residues = append(chainA.Residues, r1)
		chainB.Residues = append([]*model.Residue{r2}, chainB.Residues...)
		t = t.then(step)
	}
	s.AddChain(chainA)
	s.AddChain(chainB)
	s.AssignLegacyIndices()
	return s
}

// screwRigid returns the rigid motion that rotates by angleDeg about
// axis (through the origin) and translates by rise along axis: the
// canonical screw motion a regular helical array repeats at every step.
func screwRigid(axis geom.Vector3, angleDeg, rise float64) rigid {
	unitAxis := axis.Normalize()
	return rigid{Rot: rotationAbout(unitAxis, angleDeg), T: unitAxis.Scale(rise)}
}

func idealLadder(n int, chainAID, chainBID string, twistDeg, rise float64, rna bool) *model.Structure {
	unit := wcGCUnit()
	step := rigid{Rot: rotationAbout(ez, twistDeg), T: geom.Vector3{Z: rise}}

	s := model.NewStructure(fmt.Sprintf("ideal-ladder-%d", n))
	chainA := &model.Chain{ID: chainAID}
	chainB := &model.Chain{ID: chainBID}
	seq := &seqCounter{}
	t := identityRigid()
	for k := 0; k < n; k++ {
		r1, r2 := place(unit, t, chainAID, chainBID, rna)
		r1.SeqNum, r2.SeqNum = seq.next(), seq.next()
		chainA.Residues = append(chainA.Residues, r1)
		chainB.Residues = append([]*model.Residue{r2}, chainB.Residues...)
		t = t.then(step)
	}
	s.AddChain(chainA)
	s.AddChain(chainB)
	s.AssignLegacyIndices()
	return s
}

// CircularClosure builds a small closed ring of base pairs: n pairs
// arranged on a circle so that each pair's z-axis follows the ring's
// local tangent direction, placing the first and last pairs' origins
// within helix-break distance of one another (spec.md §8 scenario 3).
func CircularClosure() *model.Structure {
	const (
		n      = 6
		radius = 5.0
	)
	unit := wcGCUnit()
	// R0 aligns the unit's own "up" axis (local Z) to the ring's tangent
	// direction at angle 0 (global Y) while leaving the unit's local X
	// (radial direction) unchanged, so sweeping by Rz(theta) afterward
	// carries both the tangent and the radial offset around the ring
	// together.
	r0 := rotateRigid(ex, -90)
	base := r0.then(translateRigid(geom.Vector3{X: radius}))

	s := model.NewStructure("circular-closure-hexamer")
	chainA := &model.Chain{ID: "A"}
	chainB := &model.Chain{ID: "B"}
	seq := &seqCounter{}
	for k := 0; k < n; k++ {
		theta := float64(k) * 360.0 / float64(n)
		t := base.then(rotateRigid(ez, theta))
		r1, r2 := place(unit, t, "A", "B", false)
		r1.SeqNum, r2.SeqNum = seq.next(), seq.next()
		chainA.Residues = append(chainA.Residues, r1)
		chainB.Residues = append([]*model.Residue{r2}, chainB.Residues...)
	}
	s.AddChain(chainA)
	s.AddChain(chainB)
	s.AssignLegacyIndices()
	return s
}

// ModifiedBasePair builds a single G-pseudouridine pair: a valid
// non-Watson-Crick pair between a standard purine and a modified
// pyrimidine (spec.md §8 scenario 4). The pseudouridine residue reuses
// uridine's ring geometry (pseudouridine differs from uridine only in
// the glycosidic linkage atom, C5 instead of N1, which this template
// does not model), flagged Modified so the template and role lookups
// resolve through the modified-nucleotide path.
func ModifiedBasePair() *model.Structure {
	unit := wcGCUnit()
	unit.base2 = classify.BasePseudoU
	unit.name2 = "PSU"
	for i := range unit.atoms2 {
		unit.atoms2[i].ResidueName = "PSU"
	}

	s := model.NewStructure("g-pseudou-pair")
	chainA := &model.Chain{ID: "A"}
	chainB := &model.Chain{ID: "B"}
	seq := &seqCounter{}
	r1, r2 := place(unit, identityRigid(), "A", "B", true)
	r2.Classification.Modified = true
	r1.SeqNum, r2.SeqNum = seq.next(), seq.next()
	chainA.Residues = append(chainA.Residues, r1)
	chainB.Residues = append(chainB.Residues, r2)
	s.AddChain(chainA)
	s.AddChain(chainB)
	s.AssignLegacyIndices()
	return s
}

// IsolatedNucleotide builds one standalone nucleotide and one distant
// HETATM ion, neither of which can pair with anything (spec.md §8
// scenario 5).
func IsolatedNucleotide() *model.Structure {
	unit := wcGCUnit()
	s := model.NewStructure("isolated-nucleotide")
	chain := &model.Chain{ID: "A"}
	seq := &seqCounter{}

	r1, _ := place(unit, identityRigid(), "A", "A", false)
	r1.SeqNum = seq.next()
	chain.Residues = append(chain.Residues, r1)

	ion := &model.Residue{
		Name:    "MG",
		ChainID: "A",
		SeqNum:  seq.next(),
		Atoms: []model.Atom{
			model.NewAtom("MG", "MG", "A", 0, ' ', "MG", geom.Vector3{X: 200, Y: 200, Z: 200}, 1, 30, model.RecordHETATM),
		},
		Classification: model.ResidueClassification{Kind: classify.MoleculeIon},
	}
	chain.Residues = append(chain.Residues, ion)

	s.AddChain(chain)
	s.AssignLegacyIndices()
	return s
}

// ThreeWayJunction builds three short helical arms radiating from a
// shared region, plus two single-stranded junction residues that cannot
// pair with anything (spec.md §8 scenario 6). The arms are placed far
// enough apart (well beyond the helix-break distance) that each forms
// its own helix segment independently, which is the property the
// scenario exercises; this does not model the arms' backbone actually
// meeting at a real 3D loop, a simplification recorded in DESIGN.md.
func ThreeWayJunction() *model.Structure {
	unit := wcGCUnit()
	step := rigid{Rot: rotationAbout(ez, 36.0), T: geom.Vector3{Z: 3.38}}
	armOffsets := []geom.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 100, Y: 0, Z: 0},
		{X: 0, Y: 100, Z: 0},
	}

	s := model.NewStructure("three-way-junction")
	seq := &seqCounter{}
	for armIdx, offset := range armOffsets {
		chainA := &model.Chain{ID: fmt.Sprintf("%c", 'A'+2*armIdx)}
		chainB := &model.Chain{ID: fmt.Sprintf("%c", 'A'+2*armIdx+1)}
		t := translateRigid(offset)
		for k := 0; k < 3; k++ {
			r1, r2 := place(unit, t, chainA.ID, chainB.ID, false)
			r1.SeqNum, r2.SeqNum = seq.next(), seq.next()
			chainA.Residues = append(chainA.Residues, r1)
			chainB.Residues = append([]*model.Residue{r2}, chainB.Residues...)
			t = t.then(step)
		}
		s.AddChain(chainA)
		s.AddChain(chainB)
	}

	loop := &model.Chain{ID: "J"}
	for i := 0; i < 2; i++ {
		r, _ := place(unit, translateRigid(geom.Vector3{X: 300, Y: 300, Z: float64(i) * 10}), "J", "J", false)
		r.SeqNum = seq.next()
		loop.Residues = append(loop.Residues, r)
	}
	s.AddChain(loop)

	s.AssignLegacyIndices()
	return s
}

// Jitter returns a deep copy of s with every atom displaced by
// independent uniform noise in [-sigma, sigma] on each axis, seeded for
// reproducibility. It is grounded on poly's random.DNASequence/
// RandomProteinSequence, which seed math/rand the same way to generate a
// reproducible random string; here the "random sequence" being generated
// is a perturbation field over a structure's atom coordinates rather than
// a string over an alphabet, used to check that the frame fitter and
// validator gates degrade gracefully under realistic coordinate noise
// rather than only ever seeing hand-placed, exact geometry.
func Jitter(s *model.Structure, sigma float64, seed int64) *model.Structure {
	rng := rand.New(rand.NewSource(seed))
	noise := func() float64 { return (rng.Float64()*2 - 1) * sigma }

	out := model.NewStructure(s.ID)
	for _, chain := range s.Chains {
		newChain := &model.Chain{ID: chain.ID}
		for _, r := range chain.Residues {
			newResidue := *r
			newResidue.Atoms = make([]model.Atom, len(r.Atoms))
			for i, a := range r.Atoms {
				newResidue.Atoms[i] = a
				newResidue.Atoms[i].Position = geom.Vector3{
					X: a.Position.X + noise(),
					Y: a.Position.Y + noise(),
					Z: a.Position.Z + noise(),
				}
			}
			newResidue.Frame = nil
			newChain.Residues = append(newChain.Residues, &newResidue)
		}
		out.AddChain(newChain)
	}
	out.AssignLegacyIndices()
	return out
}
