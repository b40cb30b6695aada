package synthesis

import (
	"context"
	"fmt"
	"time"

	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/wav"
)

// Clip is synthesized narration audio for one key segment. The adapter owns
// the byte buffer until the assembler consumes it.
type Clip struct {
	SegmentID string
	Audio     []byte
	Duration  float64
	Voice     string
}

const (
	maxAttempts = 3
	baseBackoff = 1 * time.Second
	maxBackoff  = 8 * time.Second
)

type implSynthesizer struct {
	client SpeechClient
	logger logger.Logger
	// sleep is swapped out in tests so backoff doesn't slow them down
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Synthesizer wrapping the given speech client
func New(client SpeechClient, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		client: client,
		logger: log,
		sleep:  sleepCtx,
	}
}

// Synthesize renders narration for one segment summary. Transient vendor
// failures are retried with exponential backoff; permanent failures and
// unknown voices fail immediately.
func (s *implSynthesizer) Synthesize(ctx context.Context, segmentID, summary, voice string) (*Clip, error) {
	vendorID, ok := voiceCatalog[voice]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVoice, voice)
	}

	var lastErr error
	backoff := baseBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		audio, err := s.client.Synthesize(ctx, summary, vendorID)
		if err == nil {
			samples, decErr := wav.Decode(audio)
			if decErr != nil {
				// Malformed vendor payload is a permanent failure.
				return nil, fmt.Errorf("decode synthesized audio for %s: %w", segmentID, decErr)
			}
			s.logger.Info(ctx, "Synthesis attempt %d/%d for %s succeeded (%.2fs of audio)",
				attempt, maxAttempts, segmentID, wav.Duration(samples))
			return &Clip{
				SegmentID: segmentID,
				Audio:     audio,
				Duration:  wav.Duration(samples),
				Voice:     voice,
			}, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !IsTransient(err) {
			s.logger.Error(ctx, "Synthesis attempt %d/%d for %s failed permanently: %v",
				attempt, maxAttempts, segmentID, err)
			return nil, fmt.Errorf("synthesize %s: %w", segmentID, err)
		}

		s.logger.Warn(ctx, "Synthesis attempt %d/%d for %s failed (transient): %v",
			attempt, maxAttempts, segmentID, err)

		if attempt < maxAttempts {
			if err := s.sleep(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrSynthesisUnavailable, maxAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
