package selector

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

const scorePrompt = `You are rating a span of a meeting transcript for inclusion in a short highlight podcast.

Rate how relevant and self-contained this span is on a scale from 0.0 to 1.0, and write a single-sentence narration summary of it (spoken style, no timestamps, no speaker labels).

Respond with ONLY a JSON object: {"score": <number>, "summary": "<sentence>"}

Full meeting context:
---
%s
---

Span to rate:
---
%s
---`

type geminiScorer struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGeminiScorer creates a Scorer backed by Gemini that rotates through the
// supplied API keys on quota errors.
func NewGeminiScorer(apiKeys []string, model string, log logger.Logger) Scorer {
	return &geminiScorer{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (g *geminiScorer) Score(ctx context.Context, spanText, contextText string) (float64, string, error) {
	if len(g.apiKeys) == 0 {
		return 0, "", fmt.Errorf("no Gemini API keys configured")
	}

	prompt := fmt.Sprintf(scorePrompt, contextText, spanText)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return 0, "", fmt.Errorf("generate content: %w", err)
		}

		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return 0, "", fmt.Errorf("empty response from Gemini")
		}

		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}

		return parseScoreResponse(text)
	}

	return 0, "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiScorer) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

// parseScoreResponse extracts {"score":..., "summary":...} from the model
// output, tolerating markdown code fences around the JSON.
func parseScoreResponse(text string) (float64, string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var resp struct {
		Score   float64 `json:"score"`
		Summary string  `json:"summary"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return 0, "", fmt.Errorf("parse scorer response %q: %w", text, err)
	}
	if resp.Summary == "" {
		return 0, "", fmt.Errorf("scorer response missing summary")
	}
	return resp.Score, resp.Summary, nil
}
