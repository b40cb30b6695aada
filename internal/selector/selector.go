package selector

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dharshini66/podcast-generator/internal/transcript"
)

// candidate is a contiguous span of transcript chunks under consideration
type candidate struct {
	start float64
	end   float64
	text  string
}

// Select scores candidate spans and greedily picks up to targetCount
// non-overlapping key segments, ordered by rank. It never fails for lack of
// material; thin transcripts just yield fewer segments.
func (s *implSelector) Select(ctx context.Context, chunks []transcript.Chunk, targetCount int, style string) ([]KeySegment, error) {
	if targetCount <= 0 || len(chunks) == 0 {
		return nil, nil
	}

	cands := s.buildCandidates(chunks)
	s.logger.Debug(ctx, "Built %d candidate spans from %d chunks", len(cands), len(chunks))

	contextText := joinChunks(chunks)

	type scored struct {
		candidate
		score   float64
		summary string
	}

	scoredCands := make([]scored, 0, len(cands))
	for _, c := range cands {
		score, summary, err := s.scoreSpan(ctx, c.text, contextText)
		if err != nil {
			return nil, fmt.Errorf("score span: %w", err)
		}
		scoredCands = append(scoredCands, scored{candidate: c, score: score, summary: summary})
	}

	// Descending score; ties broken by earlier start for reproducible output.
	sort.SliceStable(scoredCands, func(i, j int) bool {
		if scoredCands[i].score != scoredCands[j].score {
			return scoredCands[i].score > scoredCands[j].score
		}
		return scoredCands[i].start < scoredCands[j].start
	})

	var selected []KeySegment
	for _, c := range scoredCands {
		if len(selected) >= targetCount {
			break
		}

		seg := KeySegment{
			Start:   c.start,
			End:     c.end,
			Score:   c.score,
			Summary: c.summary,
			Style:   style,
		}

		overlaps := false
		for _, accepted := range selected {
			if seg.Overlaps(accepted, s.minGap) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		seg.Rank = len(selected) + 1
		seg.ID = fmt.Sprintf("seg-%02d", seg.Rank)
		selected = append(selected, seg)
	}

	s.logger.Info(ctx, "Selected %d of %d requested key segments", len(selected), targetCount)
	return selected, nil
}

// scoreSpan delegates to the external scorer and falls back to the local
// heuristic when it is unavailable, so the pipeline never fails on scoring.
func (s *implSelector) scoreSpan(ctx context.Context, spanText, contextText string) (float64, string, error) {
	if s.scorer != nil {
		score, summary, err := s.scorer.Score(ctx, spanText, contextText)
		if err == nil {
			return clampScore(score), summary, nil
		}
		if ctx.Err() != nil {
			return 0, "", ctx.Err()
		}
		s.logger.Warn(ctx, "Content scorer unavailable, using local heuristic: %v", err)
	}
	score, summary, err := s.fallback.Score(ctx, spanText, contextText)
	if err != nil {
		return 0, "", fmt.Errorf("heuristic scorer: %w", err)
	}
	return clampScore(score), summary, nil
}

// buildCandidates groups consecutive chunks by speaker turn and splits any
// turn longer than maxSpanSec so one monologue can't swallow the podcast.
func (s *implSelector) buildCandidates(chunks []transcript.Chunk) []candidate {
	var cands []candidate

	flush := func(group []transcript.Chunk) {
		if len(group) == 0 {
			return
		}
		cands = append(cands, candidate{
			start: group[0].Start,
			end:   group[len(group)-1].End,
			text:  joinChunks(group),
		})
	}

	var group []transcript.Chunk
	for _, c := range chunks {
		if len(group) > 0 {
			sameSpeaker := group[0].Speaker == c.Speaker
			tooLong := c.End-group[0].Start > s.maxSpanSec
			if !sameSpeaker || tooLong {
				flush(group)
				group = group[:0]
			}
		}
		group = append(group, c)
	}
	flush(group)

	return cands
}

func joinChunks(chunks []transcript.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, " ")
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
