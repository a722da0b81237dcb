// Package checksum provides the digest implementations used for archive
// integrity sidecars.
package checksum

import (
	"fmt"

	"github.com/krowno/krowno/internal/core/domain"
	"github.com/krowno/krowno/internal/core/ports"
)

const (
	// CRC32IEEE uses the IEEE polynomial for CRC32 digests. Fast, catches
	// accidental corruption, no tamper resistance.
	CRC32IEEE domain.ChecksumAlgorithm = "crc32-ieee"

	// SHA256 provides SHA-256 digests (256-bit).
	SHA256 domain.ChecksumAlgorithm = "sha256"
)

// DefaultOptions returns the recommended digest settings.
func DefaultOptions() *domain.ChecksumOptions {
	return &domain.ChecksumOptions{
		Enable:    true,
		Algorithm: SHA256,
	}
}

// Validate checks that the digest options name a supported algorithm.
func Validate(input *domain.ChecksumOptions) error {
	switch input.Algorithm {
	case CRC32IEEE, SHA256:
		return nil
	default:
		return fmt.Errorf("unsupported checksum algorithm: %s", input.Algorithm)
	}
}

// New returns the digest implementation for the named algorithm.
func New(algorithm domain.ChecksumAlgorithm) (ports.ChecksumPort, error) {
	switch algorithm {
	case CRC32IEEE:
		return NewCRC32IEEE(), nil
	case SHA256:
		return NewSHA256(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}
}
