package synthesis

import (
	"context"
	"strings"

	"github.com/dharshini66/podcast-generator/internal/wav"
)

type simulatedClient struct{}

// NewSimulatedClient returns a SpeechClient producing silent narration sized
// to the text. Stands in when no speech vendor is configured so the pipeline
// still runs end to end.
func NewSimulatedClient() SpeechClient {
	return simulatedClient{}
}

func (simulatedClient) Synthesize(ctx context.Context, text, vendorVoiceID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Roughly 0.4s per spoken word, never shorter than a second.
	sec := float64(len(strings.Fields(text))) * 0.4
	if sec < 1 {
		sec = 1
	}
	return wav.Encode(make([]int16, wav.SampleCount(sec))), nil
}
