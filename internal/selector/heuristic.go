package selector

import (
	"context"
	"strings"
)

// heuristicScorer is the local fallback used when the content-analysis
// service is unavailable. It favors longer, information-dense spans: score is
// the word count (saturating at heuristicFullWords) weighted by the ratio of
// distinct words. Fully deterministic.
type heuristicScorer struct{}

const heuristicFullWords = 120

// NewHeuristicScorer creates the local fallback scorer
func NewHeuristicScorer() Scorer {
	return heuristicScorer{}
}

func (heuristicScorer) Score(ctx context.Context, spanText, contextText string) (float64, string, error) {
	words := strings.Fields(spanText)
	if len(words) == 0 {
		return 0, "", nil
	}

	lengthScore := float64(len(words)) / heuristicFullWords
	if lengthScore > 1 {
		lengthScore = 1
	}

	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[strings.ToLower(strings.Trim(w, ".,!?;:\"'"))] = struct{}{}
	}
	density := float64(len(distinct)) / float64(len(words))

	return lengthScore * density, summarize(spanText), nil
}

// summarize takes the first sentence, truncated to a narration-friendly length
func summarize(text string) string {
	text = strings.TrimSpace(text)
	for _, stop := range []string{". ", "! ", "? "} {
		if i := strings.Index(text, stop); i > 0 {
			text = text[:i+1]
			break
		}
	}

	words := strings.Fields(text)
	const maxWords = 30
	if len(words) > maxWords {
		text = strings.Join(words[:maxWords], " ") + "..."
	}
	return text
}
