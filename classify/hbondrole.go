package classify

import "strings"

// HBondRole is the donor/acceptor capability of an atom.
type HBondRole int

const (
	RoleNone HBondRole = iota
	RoleDonor
	RoleAcceptor
	RoleEither
)

func (r HBondRole) String() string {
	switch r {
	case RoleDonor:
		return "donor"
	case RoleAcceptor:
		return "acceptor"
	case RoleEither:
		return "either"
	default:
		return "none"
	}
}

// baseRoleTables gives, for each standard base identity, the donor-or-
// acceptor role of each named base atom capable of hydrogen bonding.
// Exocyclic amino/imino nitrogens are donors, ring/carbonyl nitrogens
// and oxygens not carrying a hydrogen in the standard tautomer are
// acceptors, and the purine C2/C8 ring carbons are entered as able to
// act as either. This mirrors the per-base
// donor/acceptor role tables x3dna's role_classifier.hpp uses for
// hydrogen-bond validation (spec.md §4.5 step 3).
var baseRoleTables = map[BaseIdentity]map[string]HBondRole{
	BaseA: {
		"N1": RoleAcceptor, "N3": RoleAcceptor, "N6": RoleDonor,
		"N7": RoleAcceptor, "C2": RoleEither, "C8": RoleEither,
	},
	BaseG: {
		"N1": RoleDonor, "N2": RoleDonor, "O6": RoleAcceptor,
		"N3": RoleAcceptor, "N7": RoleAcceptor, "C8": RoleEither,
	},
	BaseC: {
		"N3": RoleAcceptor, "N4": RoleDonor, "O2": RoleAcceptor,
	},
	BaseT: {
		"N3": RoleDonor, "O2": RoleAcceptor, "O4": RoleAcceptor,
	},
	BaseU: {
		"N3": RoleDonor, "O2": RoleAcceptor, "O4": RoleAcceptor,
	},
	BaseI: {
		"N1": RoleDonor, "O6": RoleAcceptor, "N3": RoleAcceptor, "N7": RoleAcceptor,
	},
	BasePseudoU: {
		"N1": RoleDonor, "N3": RoleDonor, "O2": RoleAcceptor, "O4": RoleAcceptor,
	},
}

// RoleOf returns the hydrogen-bond role of a named atom belonging to a
// residue of the given base identity. Sugar O2' and backbone oxygens are
// always acceptors; this function only covers base-ring/exocyclic atoms
// and falls back to RoleNone for anything else (callers handle sugar and
// backbone atoms via Location instead).
func RoleOf(base BaseIdentity, atomName string) HBondRole {
	name := strings.ToUpper(strings.TrimSpace(atomName))
	table, ok := baseRoleTables[base]
	if !ok {
		return RoleNone
	}
	if role, ok := table[name]; ok {
		return role
	}
	return RoleNone
}

// CanFormHBond reports whether an atom's element is in the allowed set
// (a string such as ".N.O" listing allowed element letters separated by
// '.', matching the x3dna config convention) for hydrogen bonding.
func CanFormHBond(atomName string, allowedElements string) bool {
	el := GetElement(atomName)
	if el == ElementUnknown {
		return false
	}
	return strings.Contains(allowedElements, string(el))
}
