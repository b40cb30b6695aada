package transcript

import (
	"errors"
	"sync"
)

var (
	// ErrOutOfOrder is returned when a chunk starts before the previous chunk ended.
	ErrOutOfOrder = errors.New("transcript chunk out of order")
	// ErrOverlap is returned when a chunk starts before the previous chunk started.
	ErrOverlap = errors.New("transcript chunk overlaps previous chunk")
	// ErrBufferClosed is returned when appending after Close.
	ErrBufferClosed = errors.New("transcript buffer closed")
	// ErrInvalidChunk is returned for chunks with negative duration or empty text.
	ErrInvalidChunk = errors.New("invalid transcript chunk")
)

// Chunk is a time-stamped piece of transcript. Times are seconds from the
// start of the recording. Immutable once appended.
type Chunk struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// Buffer is an append-only store of transcript chunks for one job.
// A single producer appends while any number of readers snapshot.
type Buffer struct {
	mu     sync.RWMutex
	chunks []Chunk
	closed bool
}

// NewBuffer creates an empty transcript buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a chunk to the buffer. Chunks must arrive in strictly
// non-overlapping, non-decreasing time order.
func (b *Buffer) Append(c Chunk) error {
	if c.End < c.Start || c.Text == "" {
		return ErrInvalidChunk
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}

	if n := len(b.chunks); n > 0 {
		last := b.chunks[n-1]
		if c.Start < last.Start {
			return ErrOverlap
		}
		if c.Start < last.End {
			return ErrOutOfOrder
		}
	}

	b.chunks = append(b.chunks, c)
	return nil
}

// Snapshot returns a copy of all chunks observed so far, in append order.
// Callers may re-snapshot after more data arrives.
func (b *Buffer) Snapshot() []Chunk {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Chunk, len(b.chunks))
	copy(out, b.chunks)
	return out
}

// Len returns the number of chunks appended so far
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.chunks)
}

// Close marks the buffer complete. Subsequent appends fail with
// ErrBufferClosed. Closing twice is a no-op.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

// Closed reports whether the buffer has been closed
func (b *Buffer) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}
