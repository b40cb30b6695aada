package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dharshini66/podcast-generator/internal/synthesis"
	"github.com/dharshini66/podcast-generator/internal/transcript"
)

// State is a pipeline job's position in its lifecycle
type State string

const (
	StateCreated      State = "CREATED"
	StateRecording    State = "RECORDING"
	StateTranscribing State = "TRANSCRIBING"
	StateSelecting    State = "SELECTING"
	StateSynthesizing State = "SYNTHESIZING"
	StateAssembling   State = "ASSEMBLING"
	StateDone         State = "DONE"
	StateFailed       State = "FAILED"
	StateCancelled    State = "CANCELLED"
)

// Terminal reports whether no further transitions can occur
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed || s == StateCancelled
}

// Workflow selects how a job acquires its audio
type Workflow string

const (
	WorkflowUpload      Workflow = "UPLOAD"
	WorkflowLiveMeeting Workflow = "LIVE_MEETING"
)

var validStyles = map[string]bool{
	"professional": true,
	"casual":       true,
	"energetic":    true,
	"calm":         true,
}

var (
	// ErrInvalidConfig is returned for unrecognized job configuration values.
	ErrInvalidConfig = errors.New("invalid job config")
	// ErrNotLiveJob is returned when a recording signal targets an upload job.
	ErrNotLiveJob = errors.New("job has no recording to stop")
	// ErrJobNotFound is returned for unknown job IDs.
	ErrJobNotFound = errors.New("job not found")
)

// JobConfig is the typed configuration for one podcast job. Unrecognized
// values fail at job creation, not mid-pipeline.
type JobConfig struct {
	Voice        string
	Style        string
	SegmentCount int
	AddMusic     bool
}

// Validate rejects unrecognized voices, styles, and segment counts
func (c JobConfig) Validate() error {
	if !synthesis.ValidVoice(c.Voice) {
		return fmt.Errorf("%w: unknown voice %q (have: %s)", ErrInvalidConfig, c.Voice, strings.Join(synthesis.Voices(), ", "))
	}
	if !validStyles[c.Style] {
		return fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, c.Style)
	}
	if c.SegmentCount < 3 || c.SegmentCount > 10 {
		return fmt.Errorf("%w: segment_count %d outside 3-10", ErrInvalidConfig, c.SegmentCount)
	}
	return nil
}

// ErrorEntry records a failure observed by a job, with the stage it hit
type ErrorEntry struct {
	Stage State
	Kind  string
	Time  time.Time
}

// Status is the caller-facing view of a job
type Status struct {
	ID          string
	Workflow    Workflow
	State       State
	Progress    float64
	ErrorLog    []ErrorEntry
	ArtifactRef string
	Degraded    []string
}

// Job owns one podcast production run: its transcript buffer, selection,
// synthesis results, and rendered output. All state is guarded per job; no
// cross-job lock exists.
type Job struct {
	ID        string
	Workflow  Workflow
	Config    JobConfig
	Title     string
	AudioPath string
	CreatedAt time.Time

	buffer *transcript.Buffer

	mu          sync.Mutex
	state       State
	history     []State
	progress    float64
	errorLog    []ErrorEntry
	artifactRef string
	degraded    []string

	cancel   context.CancelFunc
	stopOnce sync.Once
	stopCh   chan struct{}
}

// setStateLocked must be called with j.mu held
func (j *Job) setStateLocked(s State) {
	j.state = s
	j.progress = 0
	j.history = append(j.history, s)
}

// transitionIfRunning moves to s unless the job already reached a terminal
// state (a cancel may have won the race).
func (j *Job) transitionIfRunning(s State) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.state.Terminal() {
		return false
	}
	j.setStateLocked(s)
	return true
}

// History returns the sequence of states the job has passed through
func (j *Job) History() []State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]State(nil), j.history...)
}

func (j *Job) setProgress(done, total int) {
	if total == 0 {
		return
	}
	j.mu.Lock()
	j.progress = float64(done) / float64(total)
	j.mu.Unlock()
}

func (j *Job) recordError(stage State, kind string) {
	j.mu.Lock()
	j.errorLog = append(j.errorLog, ErrorEntry{Stage: stage, Kind: kind, Time: time.Now()})
	j.mu.Unlock()
}

func (j *Job) markDegraded(segmentID string) {
	j.mu.Lock()
	j.degraded = append(j.degraded, segmentID)
	j.mu.Unlock()
}

// State returns the job's current state
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Status returns a copy of the caller-facing job view
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Status{
		ID:          j.ID,
		Workflow:    j.Workflow,
		State:       j.state,
		Progress:    j.progress,
		ErrorLog:    append([]ErrorEntry(nil), j.errorLog...),
		ArtifactRef: j.artifactRef,
		Degraded:    append([]string(nil), j.degraded...),
	}
}
