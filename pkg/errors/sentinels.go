package errors

import "errors"

// Sentinel errors shared across the buffer, compression, and transfer
// layers. Callers match them with errors.Is; adapters wrap them with
// operation-specific detail.
var (
	// ErrAllocationLimit is returned when growing a buffer would exceed
	// its configured capacity ceiling. The buffer's prior contents stay
	// valid; the caller may retry with a higher limit or abandon.
	ErrAllocationLimit = errors.New("allocation limit exceeded")

	// ErrConsumed is returned when an accumulator is used after its
	// contents have been handed over or released.
	ErrConsumed = errors.New("accumulator already consumed")

	// ErrCompress is returned when the underlying compression routine
	// reports failure.
	ErrCompress = errors.New("compression failed")

	// ErrDecompress is returned for a malformed or corrupt compressed
	// stream. Growing the output buffer cannot fix this, so it is never
	// retried.
	ErrDecompress = errors.New("corrupt compressed data")

	// ErrCapacityExhausted is returned when the decompressed size exceeds
	// the expansion retry ceiling. Distinct from ErrDecompress: the stream
	// was valid, the expander refused to keep growing.
	ErrCapacityExhausted = errors.New("decompressed size exceeds expansion ceiling")
)
