package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "missing input path",
			config: Config{
				Paths: PathsConfig{
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing output path",
			config: Config{
				Paths: PathsConfig{
					Input: "data/input",
				},
			},
			wantErr: true,
		},
		{
			name: "segment count out of range",
			config: Config{
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
				Podcast: PodcastConfig{SegmentCount: 12},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Podcast.Voice != "default" {
		t.Errorf("Voice = %v, want default", cfg.Podcast.Voice)
	}
	if cfg.Podcast.Style != "professional" {
		t.Errorf("Style = %v, want professional", cfg.Podcast.Style)
	}
	if cfg.Podcast.SegmentCount != 5 {
		t.Errorf("SegmentCount = %v, want 5", cfg.Podcast.SegmentCount)
	}
	if cfg.Podcast.CrossfadeMs != 300 {
		t.Errorf("CrossfadeMs = %v, want 300", cfg.Podcast.CrossfadeMs)
	}
	if cfg.Performance.MaxConcurrentSynth != 3 {
		t.Errorf("MaxConcurrentSynth = %v, want 3", cfg.Performance.MaxConcurrentSynth)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want gemini-2.5-flash", cfg.Gemini.Model)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
paths:
  input: "data/input"
  output: "data/output"
  music: "assets/bed.wav"

podcast:
  voice: "british"
  style: "casual"
  segment_count: 4
  add_music: true

gemini:
  model: "gemini-2.5-flash"
  api_keys:
    - "key-one"
    - "key-two"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Podcast.Voice != "british" {
		t.Errorf("Voice = %v, want british", cfg.Podcast.Voice)
	}
	if cfg.Podcast.SegmentCount != 4 {
		t.Errorf("SegmentCount = %v, want 4", cfg.Podcast.SegmentCount)
	}
	if len(cfg.Gemini.APIKeys) != 2 {
		t.Errorf("APIKeys length = %v, want 2", len(cfg.Gemini.APIKeys))
	}
	if cfg.Paths.Music != "assets/bed.wav" {
		t.Errorf("Music = %v, want assets/bed.wav", cfg.Paths.Music)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
