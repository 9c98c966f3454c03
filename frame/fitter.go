/*
Package frame implements the per-residue reference-frame fitter of
spec.md §4.4: match a nucleotide's ring atoms to a canonical template and
run a least-squares rigid alignment to produce a ReferenceFrame.
*/
package frame

import (
	"sort"

	"github.com/jyesselm/x3dna/classify"
	"github.com/jyesselm/x3dna/config"
	"github.com/jyesselm/x3dna/event"
	"github.com/jyesselm/x3dna/geom"
	"github.com/jyesselm/x3dna/model"
	"github.com/jyesselm/x3dna/template"
)

// Result carries the full detail of one frame-fitting attempt (spec.md
// §4.4 step 6), whether or not it succeeded.
type Result struct {
	Frame model.ReferenceFrame
	RMSD  float64

	MatchedAtoms          []string
	MatchedStandardCoords []geom.Vector3
	MatchedExperimental   []geom.Vector3

	TemplateID string
	Valid      bool
}

// Fitter produces ReferenceFrames for nucleotide residues.
type Fitter struct {
	Library  *template.Library
	Registry *classify.ModifiedNucleotideRegistry
	Config   config.Config
	IsRNA    bool
	Sink     event.Sink
}

// NewFitter constructs a Fitter. sink may be event.Discard.
func NewFitter(lib *template.Library, registry *classify.ModifiedNucleotideRegistry, cfg config.Config, isRNA bool, sink event.Sink) *Fitter {
	if sink == nil {
		sink = event.Discard
	}
	return &Fitter{Library: lib, Registry: registry, Config: cfg, IsRNA: isRNA, Sink: sink}
}

// Fit runs the per-residue frame-fitting algorithm of spec.md §4.4 on
// one residue, storing the resulting frame on the residue (only when
// valid) and returning the full Result.
func (f *Fitter) Fit(r *model.Residue) Result {
	base, isModified, ok := f.Registry.Resolve(r.Name)
	if !ok {
		// Unknown base identity: fall back to the purine/pyrimidine
		// presence check of spec.md §4.4 step 1.
		purine := hasAny(r, "N7", "C8", "N9")
		if purine {
			base = classify.BaseA
		} else {
			base = classify.BaseC
		}
		isModified = false
	}

	tpl, err := f.Library.Get(template.Key{Base: base, Variant: template.VariantFor(isModified)})
	if err != nil {
		return f.degenerate(r, string(base))
	}

	ringNames := classify.RingAtomNames(base.IsPurine())
	matchNames := make([]string, 0, len(ringNames)+1)
	matchNames = append(matchNames, ringNames...)
	if f.IsRNA {
		matchNames = append(matchNames, "C1'")
	}
	if f.Config.LegacyMode {
		matchNames = removeName(matchNames, "C4")
	}
	sort.Strings(matchNames)

	ring := tpl.RingAtoms()
	if f.IsRNA {
		if c1, ok := tpl.Atoms["C1'"]; ok {
			ring["C1'"] = c1
		}
	}

	var experimental, standard []geom.Vector3
	var matched []string
	for _, name := range matchNames {
		tplPos, tplOK := ring[name]
		expAtom, expOK := r.AtomByName(name)
		if !tplOK || !expOK {
			continue
		}
		experimental = append(experimental, expAtom.Position)
		standard = append(standard, tplPos)
		matched = append(matched, name)
	}

	if len(matched) < 3 {
		return f.degenerate(r, tpl.ID)
	}

	fit, err := geom.Fit(experimental, standard)
	if err != nil {
		return f.degenerate(r, tpl.ID)
	}

	rf := model.ReferenceFrame{Rotation: fit.Rotation, Origin: fit.Translation}
	r.Frame = &rf

	result := Result{
		Frame:                 rf,
		RMSD:                  fit.RMSD,
		MatchedAtoms:          matched,
		MatchedStandardCoords: standard,
		MatchedExperimental:   experimental,
		TemplateID:            tpl.ID,
		Valid:                 true,
	}
	f.emit(r, string(base), matched, fit.RMSD, true)
	return result
}

func (f *Fitter) degenerate(r *model.Residue, baseType string) Result {
	f.emit(r, baseType, nil, 0, false)
	return Result{Valid: false, TemplateID: baseType}
}

func (f *Fitter) emit(r *model.Residue, baseType string, matched []string, rmsd float64, valid bool) {
	f.Sink.Emit(event.Record{
		Kind: event.KindFrameCalc,
		FrameCalc: &event.FrameCalc{
			ResidueLegacyIndex: r.LegacyIdx,
			BaseType:           baseType,
			MatchedAtoms:       matched,
			RMSD:               rmsd,
			Valid:              valid,
		},
	})
}

func hasAny(r *model.Residue, names ...string) bool {
	for _, n := range names {
		if _, ok := r.AtomByName(n); ok {
			return true
		}
	}
	return false
}

func removeName(names []string, target string) []string {
	out := names[:0]
	for _, n := range names {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

// FitAll runs Fit over every residue in residues, in the order given
// (callers pass legacy-index order to satisfy spec.md §5's ordering
// guarantee).
func (f *Fitter) FitAll(residues []*model.Residue) map[model.LegacyIndex]Result {
	out := make(map[model.LegacyIndex]Result, len(residues))
	for _, r := range residues {
		if !r.IsNucleotide() {
			continue
		}
		out[r.LegacyIdx] = f.Fit(r)
	}
	return out
}
