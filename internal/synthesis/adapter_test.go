package synthesis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dharshini66/podcast-generator/internal/logger"
	"github.com/dharshini66/podcast-generator/internal/wav"
)

// flakyClient fails the first failCount calls, then succeeds
type flakyClient struct {
	failCount int
	failWith  error
	calls     int
	audioSec  float64
}

func (f *flakyClient) Synthesize(ctx context.Context, text, vendorVoiceID string) ([]byte, error) {
	f.calls++
	if f.calls <= f.failCount {
		return nil, f.failWith
	}
	sec := f.audioSec
	if sec == 0 {
		sec = 2
	}
	return wav.Encode(make([]int16, wav.SampleCount(sec))), nil
}

func newTestSynthesizer(client SpeechClient) *implSynthesizer {
	s := New(client, logger.New("error")).(*implSynthesizer)
	s.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return s
}

func TestSynthesizeSucceedsOnThirdAttempt(t *testing.T) {
	client := &flakyClient{failCount: 2, failWith: MarkTransient(errors.New("rate limited"))}
	s := newTestSynthesizer(client)

	clip, err := s.Synthesize(context.Background(), "seg-01", "the budget was approved", "default")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if client.calls != 3 {
		t.Errorf("client called %d times, want 3", client.calls)
	}
	if clip.SegmentID != "seg-01" || clip.Voice != "default" {
		t.Errorf("clip = %+v, want seg-01/default", clip)
	}
	if clip.Duration != 2 {
		t.Errorf("clip duration = %v, want 2", clip.Duration)
	}
}

func TestSynthesizeExhaustsRetryBudget(t *testing.T) {
	client := &flakyClient{failCount: 100, failWith: MarkTransient(errors.New("upstream 503"))}
	s := newTestSynthesizer(client)

	_, err := s.Synthesize(context.Background(), "seg-01", "text", "female")
	if !errors.Is(err, ErrSynthesisUnavailable) {
		t.Fatalf("Synthesize() error = %v, want ErrSynthesisUnavailable", err)
	}
	if client.calls != 3 {
		t.Errorf("client called %d times, want exactly 3", client.calls)
	}
}

func TestSynthesizePermanentFailureNotRetried(t *testing.T) {
	client := &flakyClient{failCount: 100, failWith: errors.New("bad request: text too long")}
	s := newTestSynthesizer(client)

	_, err := s.Synthesize(context.Background(), "seg-01", "text", "male")
	if err == nil {
		t.Fatal("Synthesize() error = nil, want permanent failure")
	}
	if errors.Is(err, ErrSynthesisUnavailable) {
		t.Errorf("permanent failure reported as ErrSynthesisUnavailable: %v", err)
	}
	if client.calls != 1 {
		t.Errorf("client called %d times, want 1 (no retry on permanent failure)", client.calls)
	}
}

func TestSynthesizeInvalidVoice(t *testing.T) {
	client := &flakyClient{}
	s := newTestSynthesizer(client)

	_, err := s.Synthesize(context.Background(), "seg-01", "text", "robot")
	if !errors.Is(err, ErrInvalidVoice) {
		t.Fatalf("Synthesize() error = %v, want ErrInvalidVoice", err)
	}
	if client.calls != 0 {
		t.Errorf("client called %d times for invalid voice, want 0", client.calls)
	}
}

func TestSynthesizeRejectsMalformedAudio(t *testing.T) {
	client := garbageClient{}
	s := newTestSynthesizer(client)

	_, err := s.Synthesize(context.Background(), "seg-01", "text", "british")
	if !errors.Is(err, wav.ErrUnsupported) {
		t.Fatalf("Synthesize() error = %v, want wrapped wav.ErrUnsupported", err)
	}
}

type garbageClient struct{}

func (garbageClient) Synthesize(ctx context.Context, text, vendorVoiceID string) ([]byte, error) {
	return []byte("not audio at all"), nil
}

func TestSynthesizeHonorsCancellation(t *testing.T) {
	client := &flakyClient{failCount: 100, failWith: MarkTransient(errors.New("slow"))}
	s := New(client, logger.New("error")).(*implSynthesizer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Synthesize(ctx, "seg-01", "text", "default")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Synthesize() error = %v, want context.Canceled", err)
	}
}
