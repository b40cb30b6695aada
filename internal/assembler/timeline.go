package assembler

import (
	"sort"

	"github.com/dharshini66/podcast-generator/internal/selector"
	"github.com/dharshini66/podcast-generator/internal/synthesis"
)

// BuildTimeline lays out segments by rank so the most important content
// leads. Each segment contributes an optional short original-audio excerpt
// for color followed by its narration clip; a segment whose narration failed
// falls back to an extended original excerpt covering its full source span.
// Consecutive entries overlap by the crossfade duration. If musicRef is set,
// a single music-bed entry spans the entire output.
func (a *implAssembler) BuildTimeline(segments []selector.KeySegment, clips map[string]*synthesis.Clip, musicRef string, opts Options) ([]TimelineEntry, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyTimeline
	}

	byRank := make([]selector.KeySegment, len(segments))
	copy(byRank, segments)
	sort.SliceStable(byRank, func(i, j int) bool { return byRank[i].Rank < byRank[j].Rank })

	var timeline []TimelineEntry
	cursor := 0.0

	place := func(e TimelineEntry) {
		if len(timeline) > 0 {
			cursor -= opts.CrossfadeSec
			if cursor < 0 {
				cursor = 0
			}
		}
		e.Offset = cursor
		cursor += e.Duration
		timeline = append(timeline, e)
	}

	for _, seg := range byRank {
		if opts.ExcerptSec > 0 {
			dur := opts.ExcerptSec
			if dur > seg.Duration() {
				dur = seg.Duration()
			}
			place(TimelineEntry{
				Kind:        KindOriginalExcerpt,
				Ref:         seg.ID,
				SourceStart: seg.Start,
				SourceEnd:   seg.Start + dur,
				Duration:    dur,
			})
		}

		if clip, ok := clips[seg.ID]; ok && clip != nil {
			place(TimelineEntry{
				Kind:     KindNarration,
				Ref:      seg.ID,
				Duration: clip.Duration,
			})
		} else {
			// Degraded slot: extended original excerpt in place of narration.
			place(TimelineEntry{
				Kind:        KindOriginalExcerpt,
				Ref:         seg.ID,
				SourceStart: seg.Start,
				SourceEnd:   seg.End,
				Duration:    seg.Duration(),
			})
		}
	}

	if musicRef != "" {
		timeline = append(timeline, TimelineEntry{
			Kind:     KindMusicBed,
			Ref:      musicRef,
			Offset:   0,
			Duration: cursor,
		})
	}

	return timeline, nil
}

// TotalDuration returns the output length in seconds implied by a timeline
func TotalDuration(timeline []TimelineEntry) float64 {
	var total float64
	for _, e := range timeline {
		if end := e.Offset + e.Duration; end > total {
			total = end
		}
	}
	return total
}
