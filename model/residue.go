package model

import "github.com/jyesselm/x3dna/classify"

// ResidueClassification is the molecule-kind and, for nucleotides, base
// identity bundle assigned to a residue by the classify package
// (spec.md §3).
type ResidueClassification struct {
	Kind     classify.MoleculeKind
	Base     classify.BaseIdentity
	Modified bool
}

// Residue owns an ordered list of Atoms and carries an optional
// ReferenceFrame once the frame fitter has run (spec.md §3). Residues
// are owned by exactly one Chain.
type Residue struct {
	Name          string
	SeqNum        int
	ChainID       string
	InsertionCode byte

	Atoms          []Atom
	Classification ResidueClassification

	Frame      *ReferenceFrame
	LegacyIdx  LegacyIndex
}

// AtomByName returns the first atom in the residue whose trimmed,
// upper-cased name matches, and true, or the zero Atom and false.
func (r *Residue) AtomByName(name string) (Atom, bool) {
	for _, a := range r.Atoms {
		if sameAtomName(a.Name, name) {
			return a, true
		}
	}
	return Atom{}, false
}

func sameAtomName(a, b string) bool {
	return normalizeAtomName(a) == normalizeAtomName(b)
}

func normalizeAtomName(name string) string {
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

// IsNucleotide reports whether this residue is classified as DNA or RNA.
func (r *Residue) IsNucleotide() bool {
	return r.Classification.Kind.IsNucleicAcid()
}

// IsPurine reports whether the residue's resolved base identity is a
// purine. Meaningless (returns false) for non-nucleotides.
func (r *Residue) IsPurine() bool {
	return r.Classification.Base.IsPurine()
}

// HasFrame reports whether a frame has been recorded on this residue;
// the frame fitter records one only for a successful fit.
func (r *Residue) HasFrame() bool {
	return r.Frame != nil
}
