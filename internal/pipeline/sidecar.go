package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/transcript"
)

// sidecarDocument is the on-disk transcript format: a JSON file next to the
// audio holding time-aligned chunks. Lets the pipeline run end to end without
// a transcription vendor (simulation mode).
type sidecarDocument struct {
	Chunks []sidecarChunk `json:"chunks"`
}

type sidecarChunk struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
	Text    string  `json:"text"`
}

type implSidecarTranscriber struct {
	logger logger.Logger
}

// NewSidecarTranscriber creates a Transcriber that reads a pre-existing
// transcript from a .json sidecar next to the audio file. Upload jobs only;
// live capture streams need a real transcription vendor.
func NewSidecarTranscriber(log logger.Logger) Transcriber {
	return &implSidecarTranscriber{logger: log}
}

func (t *implSidecarTranscriber) Transcribe(ctx context.Context, source AudioSource) (<-chan transcript.Chunk, <-chan error) {
	chunks := make(chan transcript.Chunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)

		doc, err := t.load(source)
		if err != nil {
			errs <- err
			return
		}

		t.logger.Debug(ctx, "Sidecar transcript has %d chunks", len(doc.Chunks))
		for _, c := range doc.Chunks {
			select {
			case chunks <- transcript.Chunk{Start: c.Start, End: c.End, Speaker: c.Speaker, Text: c.Text}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return chunks, errs
}

func (t *implSidecarTranscriber) load(source AudioSource) (*sidecarDocument, error) {
	var doc sidecarDocument

	if source.Path == "" {
		return nil, fmt.Errorf("sidecar transcriber needs a file clip; live streams require a transcription vendor")
	}

	sidecarPath := strings.TrimSuffix(source.Path, filepath.Ext(source.Path)) + ".json"
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return nil, fmt.Errorf("read sidecar transcript %s: %w", sidecarPath, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sidecar transcript %s: %w", sidecarPath, err)
	}
	return &doc, nil
}
