package assembler

import (
	"context"
	"errors"

	"github.com/dharshini66/podcast-generator/internal/selector"
	"github.com/dharshini66/podcast-generator/internal/synthesis"
)

var (
	// ErrEmptyTimeline is returned when no key segments were produced.
	ErrEmptyTimeline = errors.New("empty timeline")
	// ErrAssetUnreadable is returned when a referenced excerpt, clip, or music
	// asset cannot be decoded. Fatal for the job; no partial file is emitted.
	ErrAssetUnreadable = errors.New("asset unreadable")
)

// EntryKind identifies what a timeline entry plays
type EntryKind string

const (
	KindOriginalExcerpt EntryKind = "original_excerpt"
	KindNarration       EntryKind = "narration"
	KindMusicBed        EntryKind = "music_bed"
)

// TimelineEntry is one piece of the render plan. The ordered sequence of
// entries is the single source of truth for the final mix and is reproducible
// from the key segments, narration clips, and music reference alone.
type TimelineEntry struct {
	Kind EntryKind
	// Ref is the key segment ID for excerpts and narration, or the music
	// reference for the bed.
	Ref string
	// SourceStart/SourceEnd locate excerpt audio in the original recording.
	SourceStart float64
	SourceEnd   float64
	// Offset is where the entry starts in the output, in seconds.
	Offset   float64
	Duration float64
}

// Options controls timeline construction
type Options struct {
	// CrossfadeSec is applied at every junction between consecutive entries.
	CrossfadeSec float64
	// ExcerptSec is the length of the original-audio color excerpt placed
	// before each narration clip. Zero disables color excerpts.
	ExcerptSec float64
}

// Assembler builds the render plan and mixes it into the final artifact
type Assembler interface {
	BuildTimeline(segments []selector.KeySegment, clips map[string]*synthesis.Clip, musicRef string, opts Options) ([]TimelineEntry, error)
	Render(ctx context.Context, timeline []TimelineEntry, assets Assets) ([]byte, error)
}
