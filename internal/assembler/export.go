package assembler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/pkg/executor"
)

// Exporter shells out to ffmpeg for the lossy edges of the pipeline:
// normalizing uploaded clips into the canonical WAV format, and transcoding
// the rendered artifact to MP3. Export failure is non-fatal; the WAV remains
// the deliverable.
type Exporter struct {
	executor executor.Executor
	logger   logger.Logger
}

// NewExporter creates an Exporter backed by the ffmpeg binary
func NewExporter(exec executor.Executor, log logger.Logger) *Exporter {
	return &Exporter{executor: exec, logger: log}
}

// ExportMP3 writes an MP3 rendition next to wavPath and returns its path.
// FFmpeg arguments:
// -i: input WAV
// -c:a libmp3lame: MP3 encoder
// -q:a 2: VBR quality ~190kbps
// -y: overwrite output if exists
func (e *Exporter) ExportMP3(ctx context.Context, wavPath string) (string, error) {
	mp3Path := strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + ".mp3"

	args := []string{
		"-i", wavPath,
		"-c:a", "libmp3lame",
		"-q:a", "2",
		"-y",
		mp3Path,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg export mp3: %w", err)
	}

	e.logger.Info(ctx, "Exported MP3 rendition: %s", mp3Path)
	return mp3Path, nil
}

// ExtractWAV converts any uploaded audio or video file into the canonical
// mono 16kHz WAV the mixer consumes, written next to the input.
// FFmpeg arguments:
// -i: input file
// -vn: drop any video stream
// -ar 16000: resample to 16kHz
// -ac 1: downmix to mono
// -c:a pcm_s16le: 16-bit PCM
// -threads 0: auto-detect optimal thread count
// -y: overwrite output if exists
func (e *Exporter) ExtractWAV(ctx context.Context, inputPath string) (string, error) {
	wavPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".wav"

	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract wav: %w", err)
	}

	e.logger.Debug(ctx, "Extracted WAV: %s", wavPath)
	return wavPath, nil
}
