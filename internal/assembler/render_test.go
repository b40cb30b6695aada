package assembler

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/wav"
)

func tone(sec float64, amplitude int16) []int16 {
	samples := make([]int16, wav.SampleCount(sec))
	for i := range samples {
		samples[i] = amplitude
	}
	return samples
}

func renderFixture() ([]TimelineEntry, Assets) {
	timeline := []TimelineEntry{
		{Kind: KindNarration, Ref: "seg-01", Offset: 0, Duration: 10},
		{Kind: KindNarration, Ref: "seg-02", Offset: 9.75, Duration: 8},
		{Kind: KindNarration, Ref: "seg-03", Offset: 17.5, Duration: 12},
	}
	assets := Assets{
		Source: tone(120, 1000),
		Narration: map[string][]int16{
			"seg-01": tone(10, 8000),
			"seg-02": tone(8, 8000),
			"seg-03": tone(12, 8000),
		},
	}
	return timeline, assets
}

func TestRenderDurationMatchesTimeline(t *testing.T) {
	a := New(logger.New("error"))
	timeline, assets := renderFixture()

	out, err := a.Render(context.Background(), timeline, assets)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	samples, err := wav.Decode(out)
	if err != nil {
		t.Fatalf("rendered output is not valid wav: %v", err)
	}
	want := 10.0 + 8 + 12 - 2*0.25
	if got := wav.Duration(samples); math.Abs(got-want) > 0.001 {
		t.Errorf("rendered duration = %v, want %v", got, want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := New(logger.New("error"))
	timeline, assets := renderFixture()

	first, err := a.Render(context.Background(), timeline, assets)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := a.Render(context.Background(), timeline, assets)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated Render() produced different bytes")
	}
}

func TestRenderCrossfadesJunctions(t *testing.T) {
	a := New(logger.New("error"))
	timeline, assets := renderFixture()

	out, err := a.Render(context.Background(), timeline, assets)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	samples, err := wav.Decode(out)
	if err != nil {
		t.Fatalf("decode rendered output: %v", err)
	}

	// Mid-entry the signal sits at full amplitude; at the midpoint of a
	// junction the outgoing and incoming fades sum back to roughly full level.
	mid := samples[wav.SampleCount(5)]
	if mid != 8000 {
		t.Errorf("mid-entry sample = %d, want 8000", mid)
	}
	junction := samples[wav.SampleCount(9.875)]
	if junction < 7000 || junction > 9000 {
		t.Errorf("junction midpoint sample = %d, want near 8000 (no click, no doubling)", junction)
	}
}

func TestRenderMusicDucking(t *testing.T) {
	a := New(logger.New("error"))

	timeline := []TimelineEntry{
		{Kind: KindNarration, Ref: "seg-01", Offset: 0, Duration: 2},
		{Kind: KindOriginalExcerpt, Ref: "seg-01", SourceStart: 0, SourceEnd: 2, Offset: 2, Duration: 2},
		{Kind: KindMusicBed, Ref: "bed", Offset: 0, Duration: 4},
	}
	assets := Assets{
		Source:    tone(10, 0), // silent source so only music is audible there
		Narration: map[string][]int16{"seg-01": tone(2, 0)},
		Music:     tone(1, 10000), // 1s loop
	}

	out, err := a.Render(context.Background(), timeline, assets)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	samples, err := wav.Decode(out)
	if err != nil {
		t.Fatalf("decode rendered output: %v", err)
	}

	underNarration := samples[wav.SampleCount(1)]
	underExcerpt := samples[wav.SampleCount(3)]

	wantNarration := int16(10000 * duckUnderNarration)
	wantExcerpt := int16(10000 * duckUnderExcerpt)
	if math.Abs(float64(underNarration-wantNarration)) > 2 {
		t.Errorf("music under narration = %d, want ~%d (-12dB)", underNarration, wantNarration)
	}
	if math.Abs(float64(underExcerpt-wantExcerpt)) > 2 {
		t.Errorf("music under excerpt = %d, want ~%d (-6dB)", underExcerpt, wantExcerpt)
	}
}

func TestRenderUnreadableAssets(t *testing.T) {
	a := New(logger.New("error"))

	tests := []struct {
		name     string
		timeline []TimelineEntry
		assets   Assets
	}{
		{
			name:     "missing narration clip",
			timeline: []TimelineEntry{{Kind: KindNarration, Ref: "seg-09", Duration: 2}},
			assets:   Assets{Narration: map[string][]int16{}},
		},
		{
			name:     "excerpt without source audio",
			timeline: []TimelineEntry{{Kind: KindOriginalExcerpt, Ref: "seg-01", SourceEnd: 2, Duration: 2}},
			assets:   Assets{},
		},
		{
			name: "music bed without samples",
			timeline: []TimelineEntry{
				{Kind: KindNarration, Ref: "seg-01", Duration: 2},
				{Kind: KindMusicBed, Ref: "bed", Duration: 2},
			},
			assets: Assets{Narration: map[string][]int16{"seg-01": tone(2, 100)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Render(context.Background(), tt.timeline, tt.assets); !errors.Is(err, ErrAssetUnreadable) {
				t.Errorf("Render() error = %v, want ErrAssetUnreadable", err)
			}
		})
	}
}

func TestDecodeAsset(t *testing.T) {
	if _, err := DecodeAsset([]byte("junk that is long enough to not be wav")); !errors.Is(err, ErrAssetUnreadable) {
		t.Errorf("DecodeAsset(junk) error = %v, want ErrAssetUnreadable", err)
	}
	samples, err := DecodeAsset(wav.Encode(tone(1, 5)))
	if err != nil {
		t.Fatalf("DecodeAsset(valid) error = %v", err)
	}
	if len(samples) != wav.SampleCount(1) {
		t.Errorf("DecodeAsset() len = %d, want %d", len(samples), wav.SampleCount(1))
	}
}
