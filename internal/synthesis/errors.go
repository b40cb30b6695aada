package synthesis

import (
	"context"
	"errors"
)

var (
	// ErrSynthesisUnavailable is returned once the retry budget is exhausted.
	ErrSynthesisUnavailable = errors.New("speech synthesis unavailable")
	// ErrInvalidVoice is returned for an unrecognized voice name. Never retried.
	ErrInvalidVoice = errors.New("invalid voice")
)

// transientError marks a vendor failure worth retrying (timeout, rate limit,
// 5xx-equivalent).
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }
func (e *transientError) Transient() bool { return true }

// MarkTransient wraps err so the adapter's retry policy applies to it
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err should be retried
func IsTransient(err error) bool {
	var t interface{ Transient() bool }
	if errors.As(err, &t) {
		return t.Transient()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
