package geom

// ReverseFrames returns the frames of an antiparallel strand re-expressed
// in the same walking direction as its partner strand: the frame order is
// reversed and each frame's y and z columns are negated, the same
// reverse-then-complement-each-element shape as reverse-complementing a
// DNA sequence (poly's transform.ReverseComplement reverses the string and
// maps every base to its complement in one pass). Here the "complement" of
// a frame is WithNegatedYZ, since two antiparallel strands' base frames
// point their z-axes in opposite directions at every step (spec.md §4.11).
func ReverseFrames(frames []Matrix3) []Matrix3 {
	n := len(frames)
	out := make([]Matrix3, n)
	for i, f := range frames {
		out[n-1-i] = f.WithNegatedYZ()
	}
	return out
}

// ReverseVectors returns v with its order reversed, with no per-element
// transform; used where only the walking direction needs flipping, e.g.
// building the 3'->5' reading of a pre-computed origin list.
func ReverseVectors(v []Vector3) []Vector3 {
	n := len(v)
	out := make([]Vector3, n)
	for i, p := range v {
		out[n-1-i] = p
	}
	return out
}
