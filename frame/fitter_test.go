package frame

import (
	"testing"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/event"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
	"github.com/jyesselm/x3dna/template"
)

func residueFromTemplate(t *testing.T, base classify.BaseIdentity, name string) *model.Residue {
	t.Helper()
	geometry, err := template.InMemoryLoader{}.Load(template.Key{Base: base, Variant: template.VariantStandard})
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	r := &model.Residue{
		Name:   name,
		LegacyIdx: 1,
		Classification: model.ResidueClassification{Kind: classify.MoleculeDNA, Base: base},
	}
	for atomName, pos := range geometry.Atoms {
		r.Atoms = append(r.Atoms, model.NewAtom(atomName, name, "A", 1, ' ', string(classify.GetElement(atomName)), pos, 1.0, 20.0, model.RecordATOM))
	}
	return r
}

func newFitter(sink event.Sink) *Fitter {
	lib := template.NewLibrary(template.InMemoryLoader{})
	registry := classify.NewModifiedNucleotideRegistry()
	return NewFitter(lib, registry, config.NewDefault(), false, sink)
}

func TestFitExactTemplateGivesIdentityLikeFrame(t *testing.T) {
	r := residueFromTemplate(t, classify.BaseG, "DG")
	f := newFitter(nil)
	result := f.Fit(r)
	if !result.Valid {
		t.Fatalf("expected a valid fit")
	}
	if result.RMSD > 1e-6 {
		t.Errorf("RMSD = %v, want ~0 when experimental == template", result.RMSD)
	}
	if r.Frame == nil {
		t.Fatalf("residue frame was not stored")
	}
	if !r.Frame.IsOrthonormal(1e-6) {
		t.Errorf("fitted frame is not orthonormal")
	}
}

func TestFitRotationEquivariant(t *testing.T) {
	r := residueFromTemplate(t, classify.BaseC, "DC")
	rot := geom.NewMatrix3FromColumns(geom.Vector3{X: 0, Y: 1, Z: 0}, geom.Vector3{X: -1, Y: 0, Z: 0}, geom.Vector3{X: 0, Y: 0, Z: 1})
	shift := geom.Vector3{X: 10, Y: -5, Z: 2}
	for i, a := range r.Atoms {
		r.Atoms[i].Position = rot.MulVec(a.Position).Add(shift)
	}

	f := newFitter(nil)
	result := f.Fit(r)
	if !result.Valid {
		t.Fatalf("expected a valid fit")
	}
	if result.RMSD > 1e-6 {
		t.Errorf("RMSD = %v, want ~0 under an exact rigid transform", result.RMSD)
	}
}

func TestFitDegenerateWithTooFewRingAtoms(t *testing.T) {
	r := &model.Residue{
		Name: "DA",
		Classification: model.ResidueClassification{Kind: classify.MoleculeDNA, Base: classify.BaseA},
		Atoms: []model.Atom{
			model.NewAtom("N9", "DA", "A", 1, ' ', "N", geom.Vector3{}, 1, 20, model.RecordATOM),
		},
	}
	sink := &event.SliceSink{}
	f := newFitter(sink)
	result := f.Fit(r)
	if result.Valid {
		t.Errorf("expected an invalid fit with only one matched atom")
	}
	if r.Frame != nil {
		t.Errorf("degenerate fit must not write a frame onto the residue")
	}
	if len(sink.Records) != 1 || sink.Records[0].FrameCalc == nil || sink.Records[0].FrameCalc.Valid {
		t.Errorf("expected one degenerate frame_calc event, got %+v", sink.Records)
	}
}

func TestFitUnknownBaseFallsBackToPurinePyrimidine(t *testing.T) {
	r := residueFromTemplate(t, classify.BaseG, "XYZ") // unregistered residue name
	f := newFitter(nil)
	result := f.Fit(r)
	if !result.Valid {
		t.Fatalf("expected the purine fallback to still produce a valid fit")
	}
}
