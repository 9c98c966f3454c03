/*
Package event defines the typed output-event stream of spec.md §6 and
Design Note §9's replacement for the x3dna reference's virtual-dispatch
observer hierarchy: a closed set of event record types plus a single
Sink interface with an Emit method, instead of one virtual method per
event kind.
*/
package event

import "github.com/jyesselm/x3dna/model"

// Kind tags which event a Record carries.
type Kind int

const (
	KindPairValidated Kind = iota
	KindBestPartnerCandidates
	KindMutualBestCheck
	KindIterationComplete
	KindSelectionComplete
	KindPairsFinalized
	KindFrameCalc
)

// PartnerCandidate is one entry in a BestPartnerCandidates event.
type PartnerCandidate struct {
	Partner model.LegacyIndex
	Score   float64
	TypeID  model.PairTypeID
	IsValid bool
}

// PairValidated describes one ordered candidate pair the pair validator
// evaluated. No stage of this module emits it: pair.Build validates
// pairs without an event sink.
type PairValidated struct {
	I, J   model.LegacyIndex
	Result model.ValidationResult
	TypeID model.PairTypeID
}

// BestPartnerCandidates is emitted once per residue considered during a
// selection pass, listing every valid, unmatched partner it was scored
// against.
type BestPartnerCandidates struct {
	I              model.LegacyIndex
	Candidates     []PartnerCandidate
	ChosenPartner  model.LegacyIndex
	ChosenScore    float64
	HasChosen      bool
}

// MutualBestCheck is emitted for every (i, best-of-i) check the mutual-
// best selection strategy performs.
type MutualBestCheck struct {
	I, J             model.LegacyIndex
	BestOfI, BestOfJ model.LegacyIndex
	IsMutual         bool
	WasSelected      bool
}

// IterationComplete is emitted once per pass of the selection fixed
// point.
type IterationComplete struct {
	IterationNum  int
	PairsThisPass int
	MatchedMask   []bool
	TotalMatched  int
}

// SelectionComplete is emitted once, when the selection fixed point is
// reached.
type SelectionComplete struct {
	SelectedPairs [][2]model.LegacyIndex
}

// PairsFinalized is emitted once the full BasePair list has been built.
type PairsFinalized struct {
	Pairs []model.BasePair
}

// FrameCalc is emitted once per residue the frame fitter processes,
// whether or not the fit was valid (spec.md §7: "a frame_calc event is
// still emitted with the degenerate flag").
type FrameCalc struct {
	ResidueLegacyIndex model.LegacyIndex
	BaseType           string
	MatchedAtoms       []string
	RMSD               float64
	Valid              bool
}

// Record is an immutable, typed event. Exactly one of the payload
// fields is populated, selected by Kind.
type Record struct {
	Kind Kind

	PairValidated           *PairValidated
	BestPartnerCandidates   *BestPartnerCandidates
	MutualBestCheck         *MutualBestCheck
	IterationComplete       *IterationComplete
	SelectionComplete       *SelectionComplete
	PairsFinalized          *PairsFinalized
	FrameCalc               *FrameCalc
}

// Sink receives the event stream. A null Sink (see Discard) is a valid
// default per spec.md §6.
type Sink interface {
	Emit(Record)
}

// discardSink implements Sink by dropping every record.
type discardSink struct{}

func (discardSink) Emit(Record) {}

// Discard is the null Sink: "a null observer is a valid default"
// (spec.md §6).
var Discard Sink = discardSink{}

// SliceSink is a Sink that appends every record to an in-memory slice,
// useful for tests and for the diagnostic harnesses spec.md §1 excludes
// from core scope but that need somewhere to plug in.
type SliceSink struct {
	Records []Record
}

// Emit implements Sink.
func (s *SliceSink) Emit(r Record) {
	s.Records = append(s.Records, r)
}
