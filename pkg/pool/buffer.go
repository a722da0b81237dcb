// Package pool provides reusable fixed-size read buffers for the
// capture paths, so every subprocess or transfer does not allocate its
// own chunk scratch space.
package pool

import (
	"sync"
)

// ChunkPool manages a pool of fixed-size byte slices.
type ChunkPool struct {
	size int       // Size of each chunk buffer.
	pool sync.Pool // Thread-safe pool of chunk buffers.
}

// NewChunkPool creates a pool handing out buffers of exactly size bytes.
func NewChunkPool(size int) *ChunkPool {
	return &ChunkPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Get retrieves a chunk buffer from the pool.
func (cp *ChunkPool) Get() []byte {
	return *cp.pool.Get().(*[]byte)
}

// Put returns a chunk buffer to the pool. Buffers of the wrong size are
// dropped rather than pooled.
func (cp *ChunkPool) Put(buf []byte) {
	if len(buf) != cp.size {
		return
	}
	cp.pool.Put(&buf)
}

// Size returns the size of buffers handed out by this pool.
func (cp *ChunkPool) Size() int {
	return cp.size
}
