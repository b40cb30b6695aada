package selector

// KeySegment is a selected, non-overlapping span of the source audio judged
// worth narrating. Never mutated after selection.
type KeySegment struct {
	ID      string
	Start   float64
	End     float64
	Rank    int
	Score   float64
	Summary string
	Style   string
}

// Duration returns the source-time length of the segment in seconds
func (s KeySegment) Duration() float64 {
	return s.End - s.Start
}

// Overlaps reports whether two source spans overlap within the given gap
func (s KeySegment) Overlaps(other KeySegment, minGap float64) bool {
	return s.Start < other.End+minGap && other.Start < s.End+minGap
}
