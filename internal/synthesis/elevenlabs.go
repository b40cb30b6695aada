package synthesis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dharshini66/podcast-generator/internal/wav"
)

const defaultSpeechEndpoint = "https://api.elevenlabs.io/v1/text-to-speech"

// ElevenLabsClient implements SpeechClient against the ElevenLabs HTTP API,
// requesting raw 16kHz PCM and wrapping it in the pipeline's WAV framing.
type ElevenLabsClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewElevenLabsClient creates a speech client. endpoint may be empty to use
// the public API URL.
func NewElevenLabsClient(apiKey, endpoint string) (*ElevenLabsClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("elevenlabs api key is required")
	}
	if endpoint == "" {
		endpoint = defaultSpeechEndpoint
	}
	return &ElevenLabsClient{
		apiKey:   apiKey,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		http:     &http.Client{Timeout: 90 * time.Second},
	}, nil
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, vendorVoiceID string) ([]byte, error) {
	payload := map[string]interface{}{
		"text":     text,
		"model_id": "eleven_monolingual_v1",
		"voice_settings": map[string]float64{
			"stability":        0.5,
			"similarity_boost": 0.5,
		},
	}
	body, _ := json.Marshal(payload)

	url := fmt.Sprintf("%s/%s?output_format=pcm_16000", c.endpoint, vendorVoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failures and timeouts are worth retrying.
		return nil, MarkTransient(fmt.Errorf("speech request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := fmt.Errorf("elevenlabs error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, MarkTransient(apiErr)
		}
		return nil, apiErr
	}

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, MarkTransient(fmt.Errorf("read speech response: %w", err))
	}

	return wav.Encode(wav.FromPCM(pcm)), nil
}
