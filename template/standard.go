package template

import (
	"fmt"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/geom"
)

// standardRingGeometry gives idealized, planar ring-atom coordinates
// (Angstroms, in an arbitrary base-local frame) for each canonical base,
// derived from standard nucleic-acid bond-length/bond-angle tables
// (Saenger, "Principles of Nucleic Acid Structure"). These are the
// "standard" template coordinates the frame fitter aligns experimental
// ring atoms against (spec.md §4.3, §4.4); a modified-nucleotide variant
// reuses its parent base's geometry, since role and ring layout are
// inherited from the parent (spec.md §4.2).
var standardRingGeometry = map[classify.BaseIdentity]map[string]geom.Vector3{
	classify.BaseA: {
		"N9": {X: 0.000, Y: 0.000, Z: 0}, "C8": {X: 0.238, Y: 1.348, Z: 0},
		"N7": {X: -0.930, Y: 2.175, Z: 0}, "C5": {X: -2.037, Y: 1.354, Z: 0},
		"C6": {X: -3.353, Y: 1.631, Z: 0}, "N1": {X: -4.212, Y: 0.588, Z: 0},
		"C2": {X: -3.733, Y: -0.656, Z: 0}, "N3": {X: -2.491, Y: -1.017, Z: 0},
		"C4": {X: -1.695, Y: 0.044, Z: 0}, "N6": {X: -3.908, Y: 2.841, Z: 0},
		"C1'": {X: 1.387, Y: -0.282, Z: 0},
	},
	classify.BaseG: {
		"N9": {X: 0.000, Y: 0.000, Z: 0}, "C8": {X: 0.246, Y: 1.348, Z: 0},
		"N7": {X: -0.886, Y: 2.169, Z: 0}, "C5": {X: -2.005, Y: 1.340, Z: 0},
		"C6": {X: -3.383, Y: 1.551, Z: 0}, "N1": {X: -4.172, Y: 0.421, Z: 0},
		"C2": {X: -3.644, Y: -0.838, Z: 0}, "N3": {X: -2.391, Y: -1.115, Z: 0},
		"C4": {X: -1.644, Y: 0.023, Z: 0}, "O6": {X: -3.951, Y: 2.630, Z: 0},
		"N2": {X: -4.333, Y: -1.951, Z: 0}, "C1'": {X: 1.421, Y: -0.287, Z: 0},
	},
	classify.BaseC: {
		"N1": {X: 0.000, Y: 0.000, Z: 0}, "C2": {X: 0.001, Y: 1.386, Z: 0},
		"O2": {X: -0.989, Y: 2.093, Z: 0}, "N3": {X: 1.216, Y: 1.966, Z: 0},
		"C4": {X: 2.401, Y: 1.294, Z: 0}, "N4": {X: 3.575, Y: 1.923, Z: 0},
		"C5": {X: 2.414, Y: -0.135, Z: 0}, "C6": {X: 1.222, Y: -0.717, Z: 0},
		"C1'": {X: -1.271, Y: -0.757, Z: 0},
	},
	classify.BaseU: {
		"N1": {X: 0.000, Y: 0.000, Z: 0}, "C2": {X: 0.000, Y: 1.391, Z: 0},
		"O2": {X: -0.970, Y: 2.114, Z: 0}, "N3": {X: 1.247, Y: 1.955, Z: 0},
		"C4": {X: 2.464, Y: 1.293, Z: 0}, "O4": {X: 3.491, Y: 1.934, Z: 0},
		"C5": {X: 2.408, Y: -0.144, Z: 0}, "C6": {X: 1.201, Y: -0.723, Z: 0},
		"C1'": {X: -1.273, Y: -0.759, Z: 0},
	},
	classify.BaseT: {
		"N1": {X: 0.000, Y: 0.000, Z: 0}, "C2": {X: 0.000, Y: 1.397, Z: 0},
		"O2": {X: -0.972, Y: 2.117, Z: 0}, "N3": {X: 1.240, Y: 1.955, Z: 0},
		"C4": {X: 2.469, Y: 1.303, Z: 0}, "O4": {X: 3.504, Y: 1.945, Z: 0},
		"C5": {X: 2.400, Y: -0.154, Z: 0}, "C7": {X: 3.621, Y: -0.903, Z: 0},
		"C6": {X: 1.184, Y: -0.727, Z: 0}, "C1'": {X: -1.284, Y: -0.762, Z: 0},
	},
	classify.BaseI: {
		"N9": {X: 0.000, Y: 0.000, Z: 0}, "C8": {X: 0.238, Y: 1.348, Z: 0},
		"N7": {X: -0.930, Y: 2.175, Z: 0}, "C5": {X: -2.037, Y: 1.354, Z: 0},
		"C6": {X: -3.353, Y: 1.631, Z: 0}, "N1": {X: -4.212, Y: 0.588, Z: 0},
		"C2": {X: -3.733, Y: -0.656, Z: 0}, "N3": {X: -2.491, Y: -1.017, Z: 0},
		"C4": {X: -1.695, Y: 0.044, Z: 0}, "O6": {X: -3.908, Y: 2.841, Z: 0},
		"C1'": {X: 1.387, Y: -0.282, Z: 0},
	},
	classify.BasePseudoU: {
		"N1": {X: 0.000, Y: 0.000, Z: 0}, "C2": {X: 0.000, Y: 1.391, Z: 0},
		"O2": {X: -0.970, Y: 2.114, Z: 0}, "N3": {X: 1.247, Y: 1.955, Z: 0},
		"C4": {X: 2.464, Y: 1.293, Z: 0}, "O4": {X: 3.491, Y: 1.934, Z: 0},
		"C5": {X: 2.408, Y: -0.144, Z: 0}, "C6": {X: 1.201, Y: -0.723, Z: 0},
		"C1'": {X: -1.273, Y: -0.759, Z: 0},
	},
}

// MixedPurineTemplate returns a canonical purine ring template
// (spec.md §4.4 step 1): it is geometrically identical to the adenine
// ring since all purines share ring bond lengths/angles to a close
// approximation. frame.Fitter does not call it; its fallback for an
// unknown base picks the adenine or cytosine template from which ring
// atoms are present.
func MixedPurineTemplate() map[string]geom.Vector3 {
	out := make(map[string]geom.Vector3, len(standardRingGeometry[classify.BaseA]))
	for k, v := range standardRingGeometry[classify.BaseA] {
		out[k] = v
	}
	return out
}

// InMemoryLoader is a self-contained Loader backed by the idealized
// geometry tables above. It never touches disk, so it has no opinion on
// the "on-disk resource layout" spec.md §1 excludes from core scope; it
// exists so this module's fixtures and tests can exercise the frame
// fitter without an injected file-backed Loader.
type InMemoryLoader struct{}

// Load implements Loader.
func (InMemoryLoader) Load(key Key) (Template, error) {
	geometry, ok := standardRingGeometry[key.Base]
	if !ok {
		return Template{}, fmt.Errorf("template: no standard geometry for base %q", key.Base)
	}
	id := fmt.Sprintf("Atomic_%s", key.Base)
	if key.Variant == VariantModified {
		id = fmt.Sprintf("Atomic.%s", key.Base)
	}
	atoms := make(map[string]geom.Vector3, len(geometry))
	for k, v := range geometry {
		atoms[k] = v
	}
	return Template{ID: id, Base: key.Base, Atoms: atoms}, nil
}
