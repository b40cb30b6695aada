package pipeline

import (
	"context"
	"io"

	"github.com/dharshini66/podcast-generator/internal/transcript"
)

// AudioSource locates the audio a transcriber should work from: a finished
// clip on disk, or a live capture stream.
type AudioSource struct {
	Path   string
	Stream io.Reader
}

// Transcriber is the transcription collaborator. The chunk channel is closed
// when transcription completes; the error channel delivers at most one error.
type Transcriber interface {
	Transcribe(ctx context.Context, source AudioSource) (<-chan transcript.Chunk, <-chan error)
}

// Recorder is the meeting recording collaborator for live jobs
type Recorder interface {
	StartCapture(ctx context.Context) (io.ReadCloser, error)
	StopCapture() error
}

// AudioExtractor converts a non-WAV upload into the pipeline's WAV framing
// (ffmpeg-backed in production). Optional.
type AudioExtractor interface {
	ExtractWAV(ctx context.Context, path string) (string, error)
}

// MP3Exporter writes an MP3 rendition of the stored artifact. Optional;
// export failure never fails a job.
type MP3Exporter interface {
	ExportMP3(ctx context.Context, wavPath string) (string, error)
}
