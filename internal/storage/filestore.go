package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

type implFileStore struct {
	dir    string
	logger logger.Logger
}

// NewFileStore creates a Store writing artifacts to a local directory
func NewFileStore(dir string, log logger.Logger) Store {
	if dir == "" {
		dir = "output_podcasts"
	}
	return &implFileStore{dir: dir, logger: log}
}

// Save writes the rendered audio, a JSON manifest, and show-notes docx into
// the output directory and returns the audio path as the artifact reference.
func (s *implFileStore) Save(ctx context.Context, audio []byte, manifest Manifest) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	base := fmt.Sprintf("podcast_%s_%s", safeName(manifest.Title), manifest.JobID)
	audioPath := filepath.Join(s.dir, base+".wav")
	manifestPath := filepath.Join(s.dir, base+".json")
	notesPath := filepath.Join(s.dir, base+".docx")

	manifest.AudioFile = filepath.Base(audioPath)

	if err := os.WriteFile(audioPath, audio, 0644); err != nil {
		return "", fmt.Errorf("write audio artifact: %w", err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}

	// Show notes are a convenience; failure to write them doesn't lose the
	// artifact.
	if err := writeShowNotes(manifest, notesPath); err != nil {
		s.logger.Warn(ctx, "Failed to write show notes %s: %v", notesPath, err)
	}

	s.logger.Info(ctx, "Stored podcast artifact: %s", audioPath)
	return audioPath, nil
}

func safeName(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "meeting"
	}
	return b.String()
}
