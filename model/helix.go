package model

// HelixSegment is a contiguous half-open index range [Start, End) into
// an ordered pair list, plus flags describing its topology (spec.md
// §3).
type HelixSegment struct {
	Start, End int

	ZForm      bool
	HasBreak   bool
	IsCircular bool
}

// Len returns the number of pairs in the segment.
func (h HelixSegment) Len() int {
	return h.End - h.Start
}
