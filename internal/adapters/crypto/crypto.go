// Package crypto derives encryption keys from backup passwords using
// Argon2id and supplies cryptographically secure random bytes.
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/krowno/krowno/internal/core/domain"
	krerrors "github.com/krowno/krowno/pkg/errors"
	"github.com/krowno/krowno/pkg/secret"
)

// Default Argon2id parameters.
const (
	DefaultIterations  = 3
	DefaultMemoryKiB   = 64 * 1024
	DefaultParallelism = 4
	DefaultSaltLength  = 16
	DefaultKeyLength   = 32
)

// PasswordHasher derives fixed-length keys from passwords with
// Argon2id. Stateless; safe for concurrent use.
type PasswordHasher struct {
	opts domain.HashOptions
}

// DefaultOptions returns the recommended Argon2id parameters.
func DefaultOptions() *domain.HashOptions {
	return &domain.HashOptions{
		Iterations:  DefaultIterations,
		MemoryKiB:   DefaultMemoryKiB,
		Parallelism: DefaultParallelism,
		SaltLength:  DefaultSaltLength,
		KeyLength:   DefaultKeyLength,
	}
}

// Validate checks the Argon2id parameters.
func Validate(input *domain.HashOptions) error {
	if input.Iterations < 1 {
		return krerrors.NewValidationError(
			"Iterations", input.Iterations, errors.New("iterations must be positive"),
		)
	}
	if input.Parallelism < 1 {
		return krerrors.NewValidationError(
			"Parallelism", input.Parallelism, errors.New("parallelism must be positive"),
		)
	}
	// Argon2 requires at least 8 KiB per lane.
	if input.MemoryKiB < 8*uint32(input.Parallelism) {
		return krerrors.NewValidationError(
			"MemoryKiB", input.MemoryKiB, fmt.Errorf(
				"memory must be at least %d KiB for %d lanes", 8*input.Parallelism, input.Parallelism,
			),
		)
	}
	if input.SaltLength < domain.MinSaltLength {
		return krerrors.NewValidationError(
			"SaltLength", input.SaltLength, fmt.Errorf("salt must be at least %d bytes", domain.MinSaltLength),
		)
	}
	if input.KeyLength < domain.MinKeyLength {
		return krerrors.NewValidationError(
			"KeyLength", input.KeyLength, fmt.Errorf("key must be at least %d bytes", domain.MinKeyLength),
		)
	}
	return nil
}

// NewPasswordHasher creates a hasher. Passing nil uses DefaultOptions.
func NewPasswordHasher(opts *domain.HashOptions) (*PasswordHasher, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := Validate(opts); err != nil {
		return nil, err
	}
	return &PasswordHasher{opts: *opts}, nil
}

// Hash derives a key of the configured length from password and salt.
// The salt must be at least MinSaltLength bytes; short salts are
// rejected, never padded.
func (h *PasswordHasher) Hash(password, salt []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, krerrors.NewValidationError(
			"password", nil, errors.New("password must not be empty"),
		)
	}
	if len(salt) < domain.MinSaltLength {
		return nil, krerrors.NewValidationError(
			"salt", len(salt), fmt.Errorf("salt must be at least %d bytes", domain.MinSaltLength),
		)
	}

	key := argon2.IDKey(
		password, salt, h.opts.Iterations, h.opts.MemoryKiB, h.opts.Parallelism, h.opts.KeyLength,
	)
	return key, nil
}

// DeriveKey derives a key from a password held in protected memory,
// so the plaintext never has to surface in a regular heap allocation.
func (h *PasswordHasher) DeriveKey(password *secret.Buffer, salt []byte) ([]byte, error) {
	plaintext, err := password.Bytes()
	if err != nil {
		return nil, err
	}
	return h.Hash(plaintext, salt)
}

// NewSalt generates a random salt of the configured length.
func (h *PasswordHasher) NewSalt() ([]byte, error) {
	return RandomBytes(int(h.opts.SaltLength))
}

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	if n < 1 {
		return nil, krerrors.NewValidationError(
			"n", n, errors.New("byte count must be positive"),
		)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
