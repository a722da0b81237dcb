// Package secret holds sensitive material such as backup passwords in
// memory that is locked against swapping and zeroed on release.
//
// Buffer allocates its storage outside the Go heap via mmap(MAP_ANONYMOUS)
// and pins it with mlock, so the garbage collector never copies or
// relocates the bytes and nothing lingers after Close.
package secret

import (
	"errors"
	"sync"

	"golang.org/x/sys/unix"

	krerrors "github.com/krowno/krowno/pkg/errors"
)

// Buffer is fixed-size protected storage for a secret. It must not be
// copied after creation. Close zeroes and unmaps the memory; any access
// after Close returns an error.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	closed bool
}

// New allocates a zero-filled protected buffer of the given size.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, krerrors.NewValidationError(
			"size", size, errors.New("secret buffer size must be positive"),
		)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, err
	}

	// Pin the pages so the secret never reaches swap.
	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, err
	}

	return &Buffer{data: data}, nil
}

// NewFromBytes copies source into a protected buffer and zeroes the
// caller's slice, so the original allocation no longer holds the secret.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, krerrors.NewValidationError(
			"source", nil, errors.New("secret source must not be empty"),
		)
	}

	b, err := New(len(source))
	if err != nil {
		return nil, err
	}

	copy(b.data, source)
	Zero(source)
	return b, nil
}

// Bytes returns the secret contents. The slice points into the locked
// region; do not retain it past the buffer's lifetime.
func (b *Buffer) Bytes() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, krerrors.ErrConsumed
	}
	return b.data, nil
}

// Len returns the buffer size, or 0 after Close.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}
	return len(b.data)
}

// Close zeroes, unlocks, and unmaps the buffer. Idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)
	unix.Munlock(b.data)
	err := unix.Munmap(b.data)
	b.data = nil
	return err
}

// Zero overwrites buf with zeroes. The loop writes through the slice
// element by element, which the compiler does not elide for escaping
// slices; used for scrubbing transient copies of key material.
func Zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
