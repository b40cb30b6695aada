package synthesis

import "context"

// SpeechClient converts text to a rendered speech clip. Concrete
// implementations wrap ElevenLabs, Google TTS, etc.
type SpeechClient interface {
	Synthesize(ctx context.Context, text, vendorVoiceID string) ([]byte, error)
}

// Synthesizer is the retrying adapter consumed by the pipeline
type Synthesizer interface {
	Synthesize(ctx context.Context, segmentID, summary, voice string) (*Clip, error)
}
