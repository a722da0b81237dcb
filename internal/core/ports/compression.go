package ports

import "github.com/krowno/krowno/internal/core/domain"

// CompressionPort defines the interface for single-shot compression.
// This allows us to swap compression algorithms without changing core logic.
type CompressionPort interface {
	// Compress compresses data at the given level in one shot.
	// The output allocation is sized up front from Bound, so no retry
	// is needed. Returns the compressed payload and the level used.
	Compress(data []byte, level int) (*domain.CompressionResult, error)

	// Decompress restores original data whose size is unknown up front,
	// growing its capacity guess a bounded number of times.
	// Returns the decompressed bytes and any error that occurred.
	Decompress(data []byte) ([]byte, error)

	// Bound returns the worst-case compressed size for an input of n
	// bytes. Pure function of n.
	Bound(n int) int
}
