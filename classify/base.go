package classify

import "strings"

// BaseIdentity is a canonical nucleobase identity.
type BaseIdentity string

const (
	BaseA             BaseIdentity = "A"
	BaseC             BaseIdentity = "C"
	BaseG             BaseIdentity = "G"
	BaseT             BaseIdentity = "T"
	BaseU             BaseIdentity = "U"
	BaseI             BaseIdentity = "I" // inosine
	BasePseudoU       BaseIdentity = "P" // pseudouridine
	BaseUnknown       BaseIdentity = ""
)

// IsPurine reports whether a base identity is a purine (A, G, or I).
func (b BaseIdentity) IsPurine() bool {
	switch b {
	case BaseA, BaseG, BaseI:
		return true
	default:
		return false
	}
}

// standardResidueNames maps unmodified residue names directly to a base
// identity.
var standardResidueNames = map[string]BaseIdentity{
	"A": BaseA, "DA": BaseA, "ADE": BaseA,
	"C": BaseC, "DC": BaseC, "CYT": BaseC,
	"G": BaseG, "DG": BaseG, "GUA": BaseG,
	"T": BaseT, "DT": BaseT, "THY": BaseT,
	"U": BaseU, "URA": BaseU, "URI": BaseU,
	"I": BaseI, "DI": BaseI, "INO": BaseI,
}

// ModifiedNucleotideRegistry maps modified-nucleotide residue names (as
// they appear in a coordinate file) to the parent base identity they
// should inherit both the H-bond donor/acceptor role table (spec.md
// §4.5) and the template variant (spec.md §4.3, the lowercase
// "Atomic.x" template) from.
//
// This mirrors x3dna's modified_nucleotide_registry: a small table
// loaded once at initialization, not derived from the residue's atoms.
type ModifiedNucleotideRegistry struct {
	parent map[string]BaseIdentity
}

// NewModifiedNucleotideRegistry returns a registry pre-populated with a
// representative set of common PDB modified-nucleotide codes. Callers
// may add further entries with Register.
func NewModifiedNucleotideRegistry() *ModifiedNucleotideRegistry {
	r := &ModifiedNucleotideRegistry{parent: make(map[string]BaseIdentity)}
	defaults := map[string]BaseIdentity{
		"1MA": BaseA, "2MA": BaseA, "6MA": BaseA, "MA6": BaseA,
		"OMA": BaseA,
		"5MC": BaseC, "OMC": BaseC, "CCC": BaseC, "C2L": BaseC,
		"1MG": BaseG, "2MG": BaseG, "7MG": BaseG, "OMG": BaseG,
		"M2G": BaseG, "YG": BaseG, "YYG": BaseG, "G2L": BaseG,
		"5MU": BaseU, "H2U": BaseU, "PSU": BasePseudoU, "OMU": BaseU,
		"4SU": BaseU, "UR3": BaseU,
		"5IU": BaseU, "5BU": BaseU,
	}
	for k, v := range defaults {
		r.parent[k] = v
	}
	return r
}

// Register adds or overrides a modified-residue-name -> parent-base
// mapping.
func (r *ModifiedNucleotideRegistry) Register(residueName string, parent BaseIdentity) {
	r.parent[strings.ToUpper(strings.TrimSpace(residueName))] = parent
}

// Resolve returns the base identity for a residue name, first checking
// the standard table, then the modified-nucleotide registry. ok is false
// if the residue name is not recognized as any nucleotide at all.
func (r *ModifiedNucleotideRegistry) Resolve(residueName string) (identity BaseIdentity, isModified bool, ok bool) {
	name := strings.ToUpper(strings.TrimSpace(residueName))
	if id, found := standardResidueNames[name]; found {
		return id, false, true
	}
	if id, found := r.parent[name]; found {
		return id, true, true
	}
	return BaseUnknown, false, false
}
