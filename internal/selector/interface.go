package selector

import (
	"context"

	"github.com/dharshini66/podcast-generator/internal/transcript"
)

// Selector picks the key segments worth narrating from a transcript
type Selector interface {
	Select(ctx context.Context, chunks []transcript.Chunk, targetCount int, style string) ([]KeySegment, error)
}

// Scorer rates a span of transcript text for podcast relevance and returns a
// short narration summary. Concrete implementations wrap Gemini or a local
// heuristic.
type Scorer interface {
	Score(ctx context.Context, spanText, contextText string) (float64, string, error)
}
