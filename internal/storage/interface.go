package storage

import (
	"context"
	"time"
)

// ManifestEntry describes one podcast slot in the final artifact
type ManifestEntry struct {
	SegmentID   string  `json:"segment_id"`
	Rank        int     `json:"rank"`
	SourceStart float64 `json:"source_start"`
	SourceEnd   float64 `json:"source_end"`
	Summary     string  `json:"summary"`
	Degraded    bool    `json:"degraded"`
}

// Manifest describes a rendered podcast artifact
type Manifest struct {
	JobID          string          `json:"job_id"`
	Title          string          `json:"title"`
	CreatedAt      time.Time       `json:"created_at"`
	DurationSec    float64         `json:"duration_sec"`
	Voice          string          `json:"voice"`
	Style          string          `json:"style"`
	AddMusic       bool            `json:"add_music"`
	Entries        []ManifestEntry `json:"entries"`
	FailedSegments []string        `json:"failed_segments"`
	AudioFile      string          `json:"audio_file"`
}

// Store receives the final rendered artifact plus its manifest and returns a
// reference handed back to the caller. Ownership of the audio transfers here.
type Store interface {
	Save(ctx context.Context, audio []byte, manifest Manifest) (string, error)
}
