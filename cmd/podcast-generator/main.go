package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/dharshini66/podcast-generator/internal/assembler"
	"github.com/dharshini66/podcast-generator/internal/config"
	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/pipeline"
	"github.com/dharshini66/podcast-generator/internal/selector"
	"github.com/dharshini66/podcast-generator/internal/storage"
	"github.com/dharshini66/podcast-generator/internal/synthesis"
	"github.com/dharshini66/podcast-generator/internal/watcher"
	"github.com/dharshini66/podcast-generator/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Podcast Generator")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Jobs: %d", cfg.Performance.MaxConcurrentJobs)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Content scoring: Gemini when keys are configured, heuristic otherwise
	var scorer selector.Scorer
	if len(cfg.Gemini.APIKeys) > 0 {
		scorer = selector.NewGeminiScorer(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
		log.Info(ctx, "Content scoring: Gemini %s (%d keys)", cfg.Gemini.Model, len(cfg.Gemini.APIKeys))
	} else {
		log.Warn(ctx, "No Gemini API keys configured; using heuristic scoring")
	}
	sel := selector.New(scorer, log, selector.WithMinGap(cfg.Podcast.MinGapSec))

	// Narration: ElevenLabs when configured, silent simulation otherwise
	var speech synthesis.SpeechClient
	if cfg.Speech.APIKey != "" {
		speech, err = synthesis.NewElevenLabsClient(cfg.Speech.APIKey, cfg.Speech.Endpoint)
		if err != nil {
			log.Error(ctx, "Failed to create speech client: %v", err)
			os.Exit(1)
		}
		log.Info(ctx, "Narration: ElevenLabs")
	} else {
		speech = synthesis.NewSimulatedClient()
		log.Warn(ctx, "No speech API key configured; narration will be simulated")
	}
	synth := synthesis.New(speech, log)

	exec := executor.New()
	exporter := assembler.NewExporter(exec, log)

	manager := pipeline.NewManager(pipeline.Deps{
		Selector:    sel,
		Synthesizer: synth,
		Assembler:   assembler.New(log),
		Store:       storage.NewFileStore(cfg.Paths.Output, log),
		Transcriber: pipeline.NewSidecarTranscriber(log),
		Extractor:   exporter,
		Exporter:    exporter,
		Logger:      log,
	}, pipeline.Options{
		AssembleOpts: assembler.Options{
			CrossfadeSec: float64(cfg.Podcast.CrossfadeMs) / 1000,
			ExcerptSec:   cfg.Podcast.ExcerptSec,
		},
		MaxConcurrentSynth: cfg.Performance.MaxConcurrentSynth,
		MusicPath:          cfg.Paths.Music,
	})

	// Create watcher that turns dropped recordings into upload jobs
	handler := newJobHandler(manager, cfg, log)
	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrentJobs)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start watcher in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Podcast Generator is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "")
	log.Info(ctx, "Defaults:")
	log.Info(ctx, "  - Voice: %s, Style: %s", cfg.Podcast.Voice, cfg.Podcast.Style)
	log.Info(ctx, "  - Key segments per episode: %d", cfg.Podcast.SegmentCount)
	log.Info(ctx, "  - Crossfade: %dms", cfg.Podcast.CrossfadeMs)
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Podcast Generator stopped")
}

// newJobHandler returns the watcher callback: create an upload job with the
// configured defaults, start it, and block until it reaches a terminal state
// so the watcher's concurrency bound holds.
func newJobHandler(manager *pipeline.Manager, cfg *config.Config, log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		title := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

		job, err := manager.CreateJob(pipeline.WorkflowUpload, pipeline.JobConfig{
			Voice:        cfg.Podcast.Voice,
			Style:        cfg.Podcast.Style,
			SegmentCount: cfg.Podcast.SegmentCount,
			AddMusic:     cfg.Podcast.AddMusic,
		}, title, filePath)
		if err != nil {
			return fmt.Errorf("create job: %w", err)
		}

		if err := manager.Start(ctx, job.ID); err != nil {
			return fmt.Errorf("start job: %w", err)
		}

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st, err := manager.Status(job.ID)
				if err != nil {
					return err
				}
				if !st.State.Terminal() {
					continue
				}
				if st.State == pipeline.StateFailed {
					return fmt.Errorf("job %s failed: %+v", job.ID, st.ErrorLog)
				}
				log.Info(ctx, "Job %s finished: %s", job.ID, st.State)
				return nil
			case <-ctx.Done():
				if st, err := manager.Status(job.ID); err == nil && st.State.Terminal() {
					return nil
				}
				return manager.Cancel(job.ID)
			}
		}
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Temp,
		cfg.Paths.Output,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
