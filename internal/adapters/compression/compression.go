package compression

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/krowno/krowno/internal/core/domain"
	krerrors "github.com/krowno/krowno/pkg/errors"
)

// Default retry policy. The 6-attempt, 4× initial, 2× growth ceiling
// caps expansion at roughly 128× the compressed length; archives with
// more extreme ratios are rejected rather than trusted.
const (
	DefaultLevel             = 6
	DefaultMaxAttempts       = 6
	DefaultInitialMultiplier = 4
	DefaultGrowthFactor      = 2
)

// DefaultOptions returns the codec policy used when the configuration
// does not override it.
func DefaultOptions() *domain.CompressionOptions {
	return &domain.CompressionOptions{
		DefaultLevel:      DefaultLevel,
		MaxAttempts:       DefaultMaxAttempts,
		InitialMultiplier: DefaultInitialMultiplier,
		GrowthFactor:      DefaultGrowthFactor,
	}
}

// Validate checks the codec policy and returns an error if any option
// is outside acceptable bounds. The ceiling must stay finite and
// deterministic: at least one attempt, a positive initial multiplier,
// and a growth factor that actually grows.
func Validate(input *domain.CompressionOptions) error {
	if input.DefaultLevel < zlib.HuffmanOnly || input.DefaultLevel > zlib.BestCompression {
		return krerrors.NewValidationError(
			"DefaultLevel", input.DefaultLevel, fmt.Errorf(
				"compression level must be between %d and %d", zlib.HuffmanOnly, zlib.BestCompression,
			),
		)
	}

	if input.MaxAttempts < 1 {
		return krerrors.NewValidationError(
			"MaxAttempts", input.MaxAttempts, errors.New("at least one expansion attempt is required"),
		)
	}

	if input.InitialMultiplier < 1 {
		return krerrors.NewValidationError(
			"InitialMultiplier", input.InitialMultiplier, errors.New("initial multiplier must be positive"),
		)
	}

	if input.GrowthFactor < 2 {
		return krerrors.NewValidationError(
			"GrowthFactor", input.GrowthFactor, errors.New("growth factor must be at least 2"),
		)
	}

	return nil
}
