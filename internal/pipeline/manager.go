package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharshini66/podcast-generator/internal/assembler"
	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/selector"
	"github.com/dharshini66/podcast-generator/internal/storage"
	"github.com/dharshini66/podcast-generator/internal/synthesis"
	"github.com/dharshini66/podcast-generator/internal/transcript"
)

// Deps are the collaborators the orchestrator drives
type Deps struct {
	Selector    selector.Selector
	Synthesizer synthesis.Synthesizer
	Assembler   assembler.Assembler
	Store       storage.Store
	Transcriber Transcriber
	// Recorder may be nil; creating a live job then fails up front.
	Recorder Recorder
	// Extractor and Exporter are optional ffmpeg-backed helpers.
	Extractor AudioExtractor
	Exporter  MP3Exporter
	Logger    logger.Logger
}

// Options tune the pipeline independently of per-job config
type Options struct {
	AssembleOpts       assembler.Options
	MaxConcurrentSynth int
	// MusicPath is the background bed used when a job requests music.
	MusicPath string
}

// Manager owns all pipeline jobs. The registry lock only guards the job map;
// every job guards its own state, so one job's failure can't touch another.
type Manager struct {
	deps Deps
	opts Options

	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewManager creates a job manager
func NewManager(deps Deps, opts Options) *Manager {
	if opts.MaxConcurrentSynth <= 0 {
		opts.MaxConcurrentSynth = 3
	}
	if opts.AssembleOpts.CrossfadeSec == 0 {
		opts.AssembleOpts.CrossfadeSec = 0.3
	}
	return &Manager{
		deps: deps,
		opts: opts,
		jobs: make(map[string]*Job),
	}
}

// CreateJob registers a new job. Config is validated here so bad voices or
// styles never reach the pipeline. For upload jobs audioPath is the finished
// clip; live jobs capture their own audio.
func (m *Manager) CreateJob(workflow Workflow, cfg JobConfig, title, audioPath string) (*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workflow == WorkflowLiveMeeting && m.deps.Recorder == nil {
		return nil, fmt.Errorf("no recorder configured for live meeting jobs")
	}
	if workflow == WorkflowUpload && audioPath == "" {
		return nil, fmt.Errorf("%w: upload job needs an audio path", ErrInvalidConfig)
	}

	job := &Job{
		ID:        uuid.NewString(),
		Workflow:  workflow,
		Config:    cfg,
		Title:     title,
		AudioPath: audioPath,
		CreatedAt: time.Now(),
		buffer:    transcript.NewBuffer(),
		state:     StateCreated,
		stopCh:    make(chan struct{}),
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	m.deps.Logger.Info(context.Background(), "Created %s job %s (%q)", workflow, job.ID, title)
	return job, nil
}

// Start launches the job's supervising goroutine
func (m *Manager) Start(ctx context.Context, jobID string) error {
	job, err := m.job(jobID)
	if err != nil {
		return err
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job.cancel = cancel

	go m.run(jobCtx, job)
	return nil
}

// StopRecording signals a live job to stop capturing. Calling it again on
// the same job is a no-op, not an error.
func (m *Manager) StopRecording(jobID string) error {
	job, err := m.job(jobID)
	if err != nil {
		return err
	}
	if job.Workflow != WorkflowLiveMeeting {
		return ErrNotLiveJob
	}
	job.stopOnce.Do(func() {
		close(job.stopCh)
	})
	return nil
}

// Cancel requests job cancellation. In-flight vendor calls are abandoned
// best-effort and partial artifacts are discarded.
func (m *Manager) Cancel(jobID string) error {
	job, err := m.job(jobID)
	if err != nil {
		return err
	}

	job.mu.Lock()
	if job.state == StateDone {
		job.mu.Unlock()
		return fmt.Errorf("job %s already completed", jobID)
	}
	if job.state != StateCancelled {
		job.setStateLocked(StateCancelled)
	}
	job.mu.Unlock()

	if job.cancel != nil {
		job.cancel()
	}
	m.deps.Logger.Info(context.Background(), "Cancelled job %s", jobID)
	return nil
}

// Status reports the caller-facing view of a job. It never blocks on
// pipeline work.
func (m *Manager) Status(jobID string) (Status, error) {
	job, err := m.job(jobID)
	if err != nil {
		return Status{}, err
	}
	return job.Status(), nil
}

func (m *Manager) job(id string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job, nil
}
