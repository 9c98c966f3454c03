/*
Package classify derives, from an atom name and residue name alone, the
element symbol, structural location, hydrogen-bond role, ring membership,
and (for nucleotides) base identity described in spec.md §4.2.

Nothing here touches coordinates: this is a pure lookup-table layer, the
same role poly/checks plays for sequence-level questions like GcContent
and IsPalindromic, just one level lower (atom names instead of bases).
*/
package classify

import "strings"

// Element is a chemical element symbol relevant to nucleic-acid and
// protein structures.
type Element string

const (
	ElementC       Element = "C"
	ElementN       Element = "N"
	ElementO       Element = "O"
	ElementP       Element = "P"
	ElementS       Element = "S"
	ElementH       Element = "H"
	ElementUnknown Element = "unknown"
)

// padName returns atomName padded/truncated to 4 characters, matching
// the PDB fixed-width atom-name convention used by the classification
// tables (spec.md §4.2).
func padName(atomName string) string {
	name := strings.ToUpper(strings.TrimSpace(atomName))
	if len(name) > 4 {
		name = name[:4]
	}
	for len(name) < 4 {
		name = name + " "
	}
	return name
}

// elementPattern maps a 4-character atom name, with every non-alphabetic
// position replaced by '.', to its element. Patterns are checked in
// table order; the first match wins, so more specific (fully literal)
// patterns are listed before generic ones.
var elementPatterns = []struct {
	pattern string
	element Element
}{
	{"1H..", ElementH}, {"2H..", ElementH}, {"3H..", ElementH},
	{" H..", ElementH},
	{" N..", ElementN},
	{" C..", ElementC},
	{" O..", ElementO},
	{" P..", ElementP},
	{" S..", ElementS},
	{"NA..", Element("Na")},
	{"MG..", Element("Mg")},
	{"CL..", Element("Cl")},
	{" K..", Element("K")},
	{"ZN..", Element("Zn")},
	{"CA..", Element("Ca")},
}

// patternOf replaces every non-alphabetic rune in a padded atom name with
// '.', producing the lookup key used by elementPatterns.
func patternOf(padded string) string {
	b := []byte(padded)
	for i, c := range b {
		if !(c >= 'A' && c <= 'Z') {
			b[i] = '.'
		}
	}
	return string(b)
}

// GetElement returns the element symbol of an atom from its (possibly
// space-padded) PDB-format name, via the ordered pattern table, falling
// back to the first alphabetic character when no pattern matches
// (spec.md §4.2).
func GetElement(atomName string) Element {
	padded := padName(atomName)
	key := patternOf(padded)
	for _, p := range elementPatterns {
		if matchPattern(key, p.pattern) {
			return p.element
		}
	}
	for _, r := range padded {
		if r >= 'A' && r <= 'Z' {
			switch r {
			case 'C':
				return ElementC
			case 'N':
				return ElementN
			case 'O':
				return ElementO
			case 'P':
				return ElementP
			case 'S':
				return ElementS
			case 'H':
				return ElementH
			}
			return ElementUnknown
		}
	}
	return ElementUnknown
}

// matchPattern compares a '.'-substituted key against a pattern that may
// itself contain literal letters and '.' wildcards.
func matchPattern(key, pattern string) bool {
	if len(key) != len(pattern) {
		return false
	}
	for i := range key {
		if pattern[i] == '.' {
			continue
		}
		if key[i] != pattern[i] {
			return false
		}
	}
	return true
}

// LegacyElementIndex maps an element to the 0-6 index the x3dna
// reference used for backwards-compatible diagnostic output: 0=unknown,
// 1=C, 2=O, 3=H, 4=N, 5=S, 6=P.
func LegacyElementIndex(e Element) int {
	switch e {
	case ElementC:
		return 1
	case ElementO:
		return 2
	case ElementH:
		return 3
	case ElementN:
		return 4
	case ElementS:
		return 5
	case ElementP:
		return 6
	default:
		return 0
	}
}
