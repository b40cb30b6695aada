package assembler

import (
	"errors"
	"math"
	"testing"

	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/selector"
	"github.com/dharshini66/podcast-generator/internal/synthesis"
)

func threeSegments() []selector.KeySegment {
	return []selector.KeySegment{
		{ID: "seg-01", Start: 40, End: 52, Rank: 1, Score: 0.9, Summary: "decision"},
		{ID: "seg-02", Start: 10, End: 20, Rank: 2, Score: 0.8, Summary: "context"},
		{ID: "seg-03", Start: 70, End: 85, Rank: 3, Score: 0.7, Summary: "followup"},
	}
}

func clipsFor(durations map[string]float64) map[string]*synthesis.Clip {
	clips := make(map[string]*synthesis.Clip)
	for id, d := range durations {
		clips[id] = &synthesis.Clip{SegmentID: id, Duration: d, Voice: "default"}
	}
	return clips
}

func TestBuildTimelineDurationMath(t *testing.T) {
	a := New(logger.New("error"))

	clips := clipsFor(map[string]float64{"seg-01": 10, "seg-02": 8, "seg-03": 12})
	timeline, err := a.BuildTimeline(threeSegments(), clips, "", Options{CrossfadeSec: 0.3})
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}

	if len(timeline) != 3 {
		t.Fatalf("timeline has %d entries, want 3 narration entries", len(timeline))
	}

	// Two internal junctions overlap by the crossfade each.
	want := 10.0 + 8 + 12 - 2*0.3
	if got := TotalDuration(timeline); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalDuration() = %v, want %v", got, want)
	}
}

func TestBuildTimelineOrdersByRank(t *testing.T) {
	a := New(logger.New("error"))

	// Pass segments in source-time order; output must lead with rank 1.
	segs := threeSegments()
	segs[0], segs[1] = segs[1], segs[0]

	clips := clipsFor(map[string]float64{"seg-01": 5, "seg-02": 5, "seg-03": 5})
	timeline, err := a.BuildTimeline(segs, clips, "", Options{CrossfadeSec: 0.3, ExcerptSec: 2})
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}

	wantRefs := []string{"seg-01", "seg-01", "seg-02", "seg-02", "seg-03", "seg-03"}
	wantKinds := []EntryKind{KindOriginalExcerpt, KindNarration, KindOriginalExcerpt, KindNarration, KindOriginalExcerpt, KindNarration}
	if len(timeline) != len(wantRefs) {
		t.Fatalf("timeline has %d entries, want %d", len(timeline), len(wantRefs))
	}
	for i := range timeline {
		if timeline[i].Ref != wantRefs[i] || timeline[i].Kind != wantKinds[i] {
			t.Errorf("entry %d = %s/%s, want %s/%s", i, timeline[i].Kind, timeline[i].Ref, wantKinds[i], wantRefs[i])
		}
	}

	for i := 1; i < len(timeline); i++ {
		if timeline[i].Offset >= timeline[i-1].Offset+timeline[i-1].Duration {
			t.Errorf("entries %d and %d do not overlap for the crossfade", i-1, i)
		}
	}
}

func TestBuildTimelineDegradedSlot(t *testing.T) {
	a := New(logger.New("error"))

	// seg-02's narration failed; its slot must fall back to the full excerpt.
	clips := clipsFor(map[string]float64{"seg-01": 10, "seg-03": 12})
	timeline, err := a.BuildTimeline(threeSegments(), clips, "", Options{CrossfadeSec: 0.3})
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}

	var degraded *TimelineEntry
	for i := range timeline {
		if timeline[i].Ref == "seg-02" {
			degraded = &timeline[i]
		}
	}
	if degraded == nil {
		t.Fatal("degraded segment missing from timeline")
	}
	if degraded.Kind != KindOriginalExcerpt {
		t.Errorf("degraded slot kind = %s, want original excerpt", degraded.Kind)
	}
	if degraded.Duration != 10 || degraded.SourceStart != 10 || degraded.SourceEnd != 20 {
		t.Errorf("degraded slot = %+v, want full source span [10,20)", degraded)
	}
}

func TestBuildTimelineMusicSpansOutput(t *testing.T) {
	a := New(logger.New("error"))

	clips := clipsFor(map[string]float64{"seg-01": 10, "seg-02": 8, "seg-03": 12})
	timeline, err := a.BuildTimeline(threeSegments(), clips, "music/bed.wav", Options{CrossfadeSec: 0.3})
	if err != nil {
		t.Fatalf("BuildTimeline() error = %v", err)
	}

	last := timeline[len(timeline)-1]
	if last.Kind != KindMusicBed {
		t.Fatalf("last entry kind = %s, want music bed", last.Kind)
	}
	if last.Offset != 0 {
		t.Errorf("music bed offset = %v, want 0", last.Offset)
	}
	if math.Abs(last.Duration-TotalDuration(timeline)) > 1e-9 {
		t.Errorf("music bed duration = %v, want full output %v", last.Duration, TotalDuration(timeline))
	}
}

func TestBuildTimelineEmpty(t *testing.T) {
	a := New(logger.New("error"))
	if _, err := a.BuildTimeline(nil, nil, "", Options{}); !errors.Is(err, ErrEmptyTimeline) {
		t.Errorf("BuildTimeline(no segments) error = %v, want ErrEmptyTimeline", err)
	}
}
