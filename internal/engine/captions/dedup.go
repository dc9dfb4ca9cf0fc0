package captions

import "github.com/anatolykoptev/go_transcript/internal/engine"

// Dedup drops segments whose text is byte-identical to the immediately
// preceding retained segment. Auto-generated tracks repeat rolling lines
// across overlapping events; only adjacency matters, not global uniqueness.
// Idempotent.
func Dedup(segs []engine.Segment) []engine.Segment {
	if len(segs) == 0 {
		return segs
	}
	out := make([]engine.Segment, 0, len(segs))
	out = append(out, segs[0])
	for _, s := range segs[1:] {
		if s.Text != out[len(out)-1].Text {
			out = append(out, s)
		}
	}
	return out
}
