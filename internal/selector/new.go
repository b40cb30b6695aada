package selector

import (
	"github.com/dharshini66/podcast-generator/internal/logger"
)

type implSelector struct {
	scorer     Scorer
	fallback   Scorer
	logger     logger.Logger
	minGap     float64
	maxSpanSec float64
}

// Option configures the selector
type Option func(*implSelector)

// WithMinGap sets the minimum gap required between accepted segments
func WithMinGap(sec float64) Option {
	return func(s *implSelector) { s.minGap = sec }
}

// WithMaxSpanLength caps the length of a candidate span before it is split
func WithMaxSpanLength(sec float64) Option {
	return func(s *implSelector) { s.maxSpanSec = sec }
}

// New creates a Selector. scorer may be nil, in which case the local
// heuristic is used for every span (simulation mode).
func New(scorer Scorer, log logger.Logger, opts ...Option) Selector {
	s := &implSelector{
		scorer:     scorer,
		fallback:   NewHeuristicScorer(),
		logger:     log,
		minGap:     0,
		maxSpanSec: 45,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
