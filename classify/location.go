package classify

import "strings"

// Location is where, structurally, an atom sits within its residue.
type Location int

const (
	LocationUnknown Location = iota
	LocationBackbone
	LocationSugar
	LocationBase
	LocationProteinMainchain
	LocationProteinSidechain
	LocationHeteroatom
)

func (l Location) String() string {
	switch l {
	case LocationBackbone:
		return "backbone"
	case LocationSugar:
		return "sugar"
	case LocationBase:
		return "base"
	case LocationProteinMainchain:
		return "protein-mainchain"
	case LocationProteinSidechain:
		return "protein-sidechain"
	case LocationHeteroatom:
		return "heteroatom"
	default:
		return "unknown"
	}
}

// backboneAtoms are the nucleotide phosphate/sugar-linkage atoms.
var backboneAtoms = map[string]bool{
	"P": true, "OP1": true, "OP2": true, "O1P": true, "O2P": true,
	"O5'": true, "O3'": true,
}

// sugarAtoms are the ribose-ring atoms excluding those already counted
// as backbone (O3', O5').
var sugarAtoms = map[string]bool{
	"C1'": true, "C2'": true, "C3'": true, "C4'": true, "C5'": true,
	"O4'": true, "O2'": true,
}

// mainchainAtoms are the protein backbone atoms.
var mainchainAtoms = map[string]bool{
	"N": true, "CA": true, "C": true, "O": true, "OXT": true,
}

func trimmedUpper(atomName string) string {
	return strings.ToUpper(strings.TrimSpace(atomName))
}

// IsBackboneAtom reports whether a nucleotide atom name belongs to the
// phosphate/sugar-linkage backbone.
func IsBackboneAtom(atomName string) bool {
	return backboneAtoms[trimmedUpper(atomName)]
}

// IsSugarAtom reports whether a nucleotide atom name belongs to the
// ribose ring (excluding the two atoms already classed as backbone).
func IsSugarAtom(atomName string) bool {
	return sugarAtoms[trimmedUpper(atomName)]
}

// IsMainchainAtom reports whether a protein atom name is part of the
// backbone {N, CA, C, O, OXT}.
func IsMainchainAtom(atomName string) bool {
	return mainchainAtoms[trimmedUpper(atomName)]
}

// NucleotideLocation classifies a nucleotide atom as backbone, sugar, or
// base (anything left over).
func NucleotideLocation(atomName string) Location {
	name := trimmedUpper(atomName)
	switch {
	case backboneAtoms[name]:
		return LocationBackbone
	case sugarAtoms[name]:
		return LocationSugar
	default:
		return LocationBase
	}
}

// ProteinLocation classifies a protein atom as mainchain or sidechain.
func ProteinLocation(atomName string) Location {
	if IsMainchainAtom(atomName) {
		return LocationProteinMainchain
	}
	return LocationProteinSidechain
}
