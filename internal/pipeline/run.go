package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dharshini66/podcast-generator/internal/assembler"
	"github.com/dharshini66/podcast-generator/internal/selector"
	"github.com/dharshini66/podcast-generator/internal/storage"
	"github.com/dharshini66/podcast-generator/internal/synthesis"
)

// run supervises one job through the state machine. It is the only writer of
// forward state transitions; Cancel may race it into CANCELLED at any point.
func (m *Manager) run(ctx context.Context, job *Job) {
	log := m.deps.Logger

	var source []int16
	var err error

	if job.Workflow == WorkflowLiveMeeting {
		if !job.transitionIfRunning(StateRecording) {
			return
		}
		source, err = m.runRecording(ctx, job)
		if err != nil {
			m.finish(ctx, job, StateRecording, err)
			return
		}
		// Transcription streamed incrementally during recording; the stage is
		// already complete when the buffer closes.
		if !job.transitionIfRunning(StateTranscribing) {
			return
		}
	} else {
		if !job.transitionIfRunning(StateTranscribing) {
			return
		}
		source, err = m.runUploadTranscription(ctx, job)
		if err != nil {
			m.finish(ctx, job, StateTranscribing, err)
			return
		}
	}

	if !job.transitionIfRunning(StateSelecting) {
		return
	}
	segments, err := m.deps.Selector.Select(ctx, job.buffer.Snapshot(), job.Config.SegmentCount, job.Config.Style)
	if err != nil {
		m.finish(ctx, job, StateSelecting, err)
		return
	}
	log.Info(ctx, "Job %s selected %d key segments", job.ID, len(segments))

	if !job.transitionIfRunning(StateSynthesizing) {
		return
	}
	clips := m.runSynthesis(ctx, job, segments)
	if ctx.Err() != nil {
		m.finish(ctx, job, StateSynthesizing, ctx.Err())
		return
	}

	if !job.transitionIfRunning(StateAssembling) {
		return
	}
	ref, err := m.runAssembly(ctx, job, segments, clips, source)
	if err != nil {
		m.finish(ctx, job, StateAssembling, err)
		return
	}

	job.mu.Lock()
	if !job.state.Terminal() {
		job.setStateLocked(StateDone)
		job.artifactRef = ref
	}
	job.mu.Unlock()
	log.Info(ctx, "Job %s done: %s", job.ID, ref)
}

// finish records a terminal outcome. Cancellation is a distinct terminal
// state, not an error.
func (m *Manager) finish(ctx context.Context, job *Job, stage State, err error) {
	if errors.Is(err, context.Canceled) || job.State() == StateCancelled {
		job.mu.Lock()
		if job.state != StateCancelled {
			job.setStateLocked(StateCancelled)
		}
		job.mu.Unlock()
		m.deps.Logger.Info(ctx, "Job %s cancelled during %s", job.ID, stage)
		return
	}

	job.recordError(stage, err.Error())
	job.mu.Lock()
	job.setStateLocked(StateFailed)
	job.mu.Unlock()
	m.deps.Logger.Error(ctx, "Job %s failed during %s: %v", job.ID, stage, err)
}

// runUploadTranscription loads the finished clip and drains the transcription
// collaborator into the job's buffer.
func (m *Manager) runUploadTranscription(ctx context.Context, job *Job) ([]int16, error) {
	audioPath := job.AudioPath
	if m.deps.Extractor != nil && strings.ToLower(filepath.Ext(audioPath)) != ".wav" {
		wavPath, err := m.deps.Extractor.ExtractWAV(ctx, audioPath)
		if err != nil {
			return nil, fmt.Errorf("extract wav: %w", err)
		}
		audioPath = wavPath
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", assembler.ErrAssetUnreadable, err)
	}
	source, err := assembler.DecodeAsset(data)
	if err != nil {
		return nil, fmt.Errorf("decode source audio: %w", err)
	}

	chunks, errs := m.deps.Transcriber.Transcribe(ctx, AudioSource{Path: job.AudioPath})
	defer job.buffer.Close()

	for {
		select {
		case c, ok := <-chunks:
			if !ok {
				return source, nil
			}
			if err := job.buffer.Append(c); err != nil {
				return nil, fmt.Errorf("append transcript chunk: %w", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil // drained; keep waiting for chunks to close
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("transcribe: %w", err)
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// runRecording runs audio capture and incremental transcript ingestion as two
// independent tasks. It only returns once the explicit stop signal has ended
// capture and the transcript stream has drained; meetings can run
// indefinitely.
func (m *Manager) runRecording(ctx context.Context, job *Job) ([]int16, error) {
	stream, err := m.deps.Recorder.StartCapture(ctx)
	if err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}

	pr, pw := io.Pipe()
	chunks, errs := m.deps.Transcriber.Transcribe(ctx, AudioSource{Stream: pr})

	var captured bytes.Buffer
	var captureErr error

	g, gctx := errgroup.WithContext(ctx)

	// Capture task: drain the recorder into memory, teeing to the
	// transcription collaborator. A disconnect is handled after the group
	// finishes; partial audio is still processed.
	g.Go(func() error {
		_, captureErr = io.Copy(io.MultiWriter(&captured, pw), stream)
		pw.Close() // transcriber finalizes on EOF even after a disconnect
		return nil
	})

	// Ingest task: the buffer's single producer.
	g.Go(func() error {
		defer job.buffer.Close()
		errCh := errs
		for {
			select {
			case c, ok := <-chunks:
				if !ok {
					return nil
				}
				if err := job.buffer.Append(c); err != nil {
					return fmt.Errorf("append transcript chunk: %w", err)
				}
			case err, ok := <-errCh:
				if !ok {
					errCh = nil
					continue
				}
				if err != nil {
					return fmt.Errorf("transcribe: %w", err)
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	// Stop watcher: the explicit stop signal ends capture; recording never
	// times out on its own.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-job.stopCh:
			if err := m.deps.Recorder.StopCapture(); err != nil {
				m.deps.Logger.Warn(ctx, "Stop capture for job %s: %v", job.ID, err)
			}
		case <-watchDone:
		case <-gctx.Done():
		}
	}()

	err = g.Wait()
	close(watchDone)
	stream.Close()
	if err != nil {
		return nil, err
	}

	if captureErr != nil {
		if captured.Len() == 0 {
			return nil, fmt.Errorf("recording source disconnected with no audio captured: %w", captureErr)
		}
		// Some audio exists; process what was captured.
		job.recordError(StateRecording, fmt.Sprintf("recording source disconnected mid-meeting: %v", captureErr))
		m.deps.Logger.Warn(ctx, "Job %s: recording disconnected after %d bytes, continuing", job.ID, captured.Len())
	}

	source, err := assembler.DecodeAsset(captured.Bytes())
	if err != nil {
		return nil, fmt.Errorf("decode captured audio: %w", err)
	}
	return source, nil
}

// runSynthesis renders narration for every segment with bounded concurrency.
// Failures degrade the affected segment only; the job carries on.
func (m *Manager) runSynthesis(ctx context.Context, job *Job, segments []selector.KeySegment) map[string]*synthesis.Clip {
	clips := make(map[string]*synthesis.Clip, len(segments))
	if len(segments) == 0 {
		return clips
	}

	sem := newSemaphore(m.opts.MaxConcurrentSynth)
	var (
		wg   sync.WaitGroup
		cmu  sync.Mutex
		done int
	)

	for _, seg := range segments {
		wg.Add(1)
		go func(seg selector.KeySegment) {
			defer wg.Done()

			if err := sem.acquire(ctx); err != nil {
				return
			}
			defer sem.release()

			clip, err := m.deps.Synthesizer.Synthesize(ctx, seg.ID, seg.Summary, job.Config.Voice)

			cmu.Lock()
			defer cmu.Unlock()
			if err != nil {
				if ctx.Err() == nil {
					job.recordError(StateSynthesizing, fmt.Sprintf("narration-failed %s: %v", seg.ID, err))
					job.markDegraded(seg.ID)
				}
			} else {
				clips[seg.ID] = clip
			}
			done++
			job.setProgress(done, len(segments))
		}(seg)
	}

	wg.Wait()
	return clips
}

// runAssembly builds the render plan, mixes the artifact, and hands it to
// storage together with the manifest.
func (m *Manager) runAssembly(ctx context.Context, job *Job, segments []selector.KeySegment, clips map[string]*synthesis.Clip, source []int16) (string, error) {
	assets := assembler.Assets{
		Source:    source,
		Narration: make(map[string][]int16, len(clips)),
	}
	for id, clip := range clips {
		samples, err := assembler.DecodeAsset(clip.Audio)
		if err != nil {
			return "", fmt.Errorf("decode narration clip %s: %w", id, err)
		}
		assets.Narration[id] = samples
	}

	musicRef := ""
	if job.Config.AddMusic {
		if m.opts.MusicPath == "" {
			m.deps.Logger.Warn(ctx, "Job %s requested music but no music bed is configured", job.ID)
		} else {
			data, err := os.ReadFile(m.opts.MusicPath)
			if err != nil {
				return "", fmt.Errorf("%w: music bed: %v", assembler.ErrAssetUnreadable, err)
			}
			music, err := assembler.DecodeAsset(data)
			if err != nil {
				return "", fmt.Errorf("decode music bed: %w", err)
			}
			assets.Music = music
			musicRef = m.opts.MusicPath
		}
	}

	timeline, err := m.deps.Assembler.BuildTimeline(segments, clips, musicRef, m.opts.AssembleOpts)
	if err != nil {
		return "", err
	}

	rendered, err := m.deps.Assembler.Render(ctx, timeline, assets)
	if err != nil {
		return "", err
	}

	// A cancel that lands before the handoff means storage never sees the
	// artifact.
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	manifest := m.buildManifest(job, segments, clips, assembler.TotalDuration(timeline))
	ref, err := m.deps.Store.Save(ctx, rendered, manifest)
	if err != nil {
		return "", fmt.Errorf("store artifact: %w", err)
	}

	if m.deps.Exporter != nil {
		if _, err := m.deps.Exporter.ExportMP3(ctx, ref); err != nil {
			m.deps.Logger.Warn(ctx, "MP3 export failed for job %s: %v", job.ID, err)
		}
	}

	return ref, nil
}

func (m *Manager) buildManifest(job *Job, segments []selector.KeySegment, clips map[string]*synthesis.Clip, duration float64) storage.Manifest {
	entries := make([]storage.ManifestEntry, 0, len(segments))
	var failed []string
	for _, seg := range segments {
		_, ok := clips[seg.ID]
		entries = append(entries, storage.ManifestEntry{
			SegmentID:   seg.ID,
			Rank:        seg.Rank,
			SourceStart: seg.Start,
			SourceEnd:   seg.End,
			Summary:     seg.Summary,
			Degraded:    !ok,
		})
		if !ok {
			failed = append(failed, seg.ID)
		}
	}

	return storage.Manifest{
		JobID:          job.ID,
		Title:          job.Title,
		CreatedAt:      job.CreatedAt,
		DurationSec:    duration,
		Voice:          job.Config.Voice,
		Style:          job.Config.Style,
		AddMusic:       job.Config.AddMusic,
		Entries:        entries,
		FailedSegments: failed,
	}
}

