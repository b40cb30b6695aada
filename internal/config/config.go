package config

import "fmt"

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Podcast     PodcastConfig     `yaml:"podcast"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Speech      SpeechConfig      `yaml:"speech"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
	Music  string `yaml:"music"`
}

// PodcastConfig holds defaults applied to jobs that don't override them.
type PodcastConfig struct {
	Voice        string  `yaml:"voice"`
	Style        string  `yaml:"style"`
	SegmentCount int     `yaml:"segment_count"`
	AddMusic     bool    `yaml:"add_music"`
	CrossfadeMs  int     `yaml:"crossfade_ms"`
	MinGapSec    float64 `yaml:"min_gap_sec"`
	ExcerptSec   float64 `yaml:"excerpt_sec"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type SpeechConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrentJobs  int `yaml:"max_concurrent_jobs"`
	MaxConcurrentSynth int `yaml:"max_concurrent_synth"`
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Podcast.Voice == "" {
		c.Podcast.Voice = "default"
	}
	if c.Podcast.Style == "" {
		c.Podcast.Style = "professional"
	}
	if c.Podcast.SegmentCount == 0 {
		c.Podcast.SegmentCount = 5
	}
	if c.Podcast.SegmentCount < 3 || c.Podcast.SegmentCount > 10 {
		return fmt.Errorf("podcast.segment_count must be between 3 and 10")
	}
	if c.Podcast.CrossfadeMs == 0 {
		c.Podcast.CrossfadeMs = 300
	}
	if c.Podcast.ExcerptSec == 0 {
		c.Podcast.ExcerptSec = 5
	}
	if c.Performance.MaxConcurrentJobs == 0 {
		c.Performance.MaxConcurrentJobs = 2
	}
	if c.Performance.MaxConcurrentSynth == 0 {
		c.Performance.MaxConcurrentSynth = 3
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
