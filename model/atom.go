/*
Package model holds the data types of spec.md §3: Atom, Residue, Chain,
Structure, ReferenceFrame, BasePair, HelixSegment, HydrogenBond, and
ValidationResult. A Structure exclusively owns its Chains, which
exclusively own their Residues, which exclusively own their Atoms;
cross-references elsewhere in this module go through the stable index
types defined here (LegacyIndex, ChainID) rather than back-pointers, per
Design Note §9.
*/
package model

import (
	"strings"

	"github.com/jyesselm/x3dna/geom"
)

// RecordKind distinguishes standard polymer atoms from heteroatoms, as
// recorded in a PDB/mmCIF ATOM vs. HETATM record.
type RecordKind int

const (
	RecordATOM RecordKind = iota
	RecordHETATM
)

// LegacyIndex is a 1-based, monotone index assigned to a residue in the
// order it appears in the coordinate file (spec.md §3, §9: "Legacy
// 1-based indices ... thread the index through as an opaque newtype").
// It is the only identifier the core uses for cross-referencing and
// diagnostic emission.
type LegacyIndex int

// Atom is immutable once parsed: identity, position, and the derived
// classification bundle assigned by the classify package.
type Atom struct {
	Name          string // trimmed
	ResidueName   string
	ChainID       string
	ResidueSeqNum int
	InsertionCode byte // default ' '
	Element       string
	Record        RecordKind

	Position    geom.Vector3
	Occupancy   float64
	BFactor     float64
}

// NewAtom constructs an Atom, defaulting InsertionCode to a space and
// trimming Name, matching the PDB convention spec.md §3/§6 describes.
func NewAtom(name, residueName, chainID string, seqNum int, insertion byte, element string, pos geom.Vector3, occupancy, bfactor float64, record RecordKind) Atom {
	if insertion == 0 {
		insertion = ' '
	}
	return Atom{
		Name:          strings.TrimSpace(name),
		ResidueName:   residueName,
		ChainID:       chainID,
		ResidueSeqNum: seqNum,
		InsertionCode: insertion,
		Element:       element,
		Record:        record,
		Position:      pos,
		Occupancy:     occupancy,
		BFactor:       bfactor,
	}
}
