// Package buffer provides an append-only, dynamically grown byte
// accumulator for streams of unknown total length. It backs subprocess
// output capture and response body capture, which share the same
// growth and ownership semantics.
package buffer

import (
	"errors"

	krerrors "github.com/krowno/krowno/pkg/errors"
)

// DefaultInitialCapacity is the starting allocation when the caller has
// no better estimate of the final size.
const DefaultInitialCapacity = 1024

// Accumulator collects byte chunks into a single contiguous buffer.
// Capacity grows geometrically and never shrinks. Once the contents are
// handed out via Finalize, or dropped via Release, the accumulator is
// consumed and must not be reused.
//
// An Accumulator is not safe for concurrent use; each capture owns its own.
type Accumulator struct {
	buf      []byte // Backing storage; len(buf) is bytes written.
	limit    int    // Maximum capacity, 0 means unbounded.
	consumed bool   // Set by Finalize and Release.
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithMaxCapacity bounds the accumulator's growth. Appends that would
// require more than limit bytes of capacity fail with ErrAllocationLimit,
// leaving prior contents intact. A limit of 0 means unbounded.
func WithMaxCapacity(limit int) Option {
	return func(a *Accumulator) { a.limit = limit }
}

// New creates an empty accumulator with at least initialCapacity bytes
// of backing storage.
func New(initialCapacity int, opts ...Option) (*Accumulator, error) {
	if initialCapacity < 0 {
		return nil, krerrors.NewValidationError(
			"initialCapacity", initialCapacity, errors.New("initial capacity must not be negative"),
		)
	}

	a := &Accumulator{buf: make([]byte, 0, initialCapacity)}
	for _, opt := range opts {
		opt(a)
	}

	if a.limit > 0 && initialCapacity > a.limit {
		return nil, krerrors.NewValidationError(
			"initialCapacity", initialCapacity, errors.New("initial capacity exceeds maximum capacity"),
		)
	}
	return a, nil
}

// Append copies chunk to the end of the current contents, growing the
// backing storage if needed. Zero-length chunks are accepted no-ops.
//
// Growth doubles the current capacity, or jumps straight to the required
// size when a single chunk is larger than that. On failure the prior
// contents remain valid and unchanged; the caller may retry or abandon.
func (a *Accumulator) Append(chunk []byte) error {
	if a.consumed {
		return krerrors.ErrConsumed
	}
	if len(chunk) == 0 {
		return nil
	}

	required := len(a.buf) + len(chunk)
	if a.limit > 0 && required > a.limit {
		return krerrors.ErrAllocationLimit
	}

	if required > cap(a.buf) {
		newCap := cap(a.buf) * 2
		if newCap < required {
			newCap = required
		}
		if a.limit > 0 && newCap > a.limit {
			newCap = a.limit
		}

		// Relocation preserves previously written bytes byte-for-byte.
		grown := make([]byte, len(a.buf), newCap)
		copy(grown, a.buf)
		a.buf = grown
	}

	a.buf = append(a.buf, chunk...)
	return nil
}

// Len returns the number of bytes written so far.
func (a *Accumulator) Len() int { return len(a.buf) }

// Cap returns the current allocated capacity. It is non-decreasing
// across appends.
func (a *Accumulator) Cap() int { return cap(a.buf) }

// Finalize transfers ownership of the accumulated contents to the
// caller. The returned slice holds exactly Len() bytes with no reachable
// slack, so later appends through a stale reference cannot clobber it.
// The accumulator is consumed afterwards.
func (a *Accumulator) Finalize() ([]byte, error) {
	if a.consumed {
		return nil, krerrors.ErrConsumed
	}

	a.consumed = true
	out := a.buf[:len(a.buf):len(a.buf)]
	a.buf = nil
	return out, nil
}

// Release discards the accumulator and its storage without transferring
// ownership. Used on abort paths. Safe to call on an already consumed
// accumulator.
func (a *Accumulator) Release() {
	a.consumed = true
	a.buf = nil
}
