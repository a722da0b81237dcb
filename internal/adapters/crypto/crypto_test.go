package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krowno/krowno/internal/core/domain"
	krerrors "github.com/krowno/krowno/pkg/errors"
	"github.com/krowno/krowno/pkg/secret"
)

// fastOptions keeps derivation cheap in tests while staying valid.
func fastOptions() *domain.HashOptions {
	return &domain.HashOptions{
		Iterations:  1,
		MemoryKiB:   64,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestNewPasswordHasher_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.HashOptions)
	}{
		{"zero iterations", func(o *domain.HashOptions) { o.Iterations = 0 }},
		{"zero parallelism", func(o *domain.HashOptions) { o.Parallelism = 0 }},
		{"memory below lane minimum", func(o *domain.HashOptions) { o.MemoryKiB = 4 }},
		{"short salt", func(o *domain.HashOptions) { o.SaltLength = 8 }},
		{"short key", func(o *domain.HashOptions) { o.KeyLength = 16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := fastOptions()
			tt.mutate(opts)
			_, err := NewPasswordHasher(opts)
			require.Error(t, err)
			assert.True(t, krerrors.IsValidationError(err))
		})
	}
}

func TestHash_Deterministic(t *testing.T) {
	hasher, err := NewPasswordHasher(fastOptions())
	require.NoError(t, err)

	salt := bytes.Repeat([]byte{7}, 16)
	first, err := hasher.Hash([]byte("correct horse"), salt)
	require.NoError(t, err)
	require.Len(t, first, 32)

	second, err := hasher.Hash([]byte("correct horse"), salt)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different salt yields a different key.
	otherSalt := bytes.Repeat([]byte{8}, 16)
	third, err := hasher.Hash([]byte("correct horse"), otherSalt)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestHash_InvalidInput(t *testing.T) {
	hasher, err := NewPasswordHasher(fastOptions())
	require.NoError(t, err)

	_, err = hasher.Hash(nil, bytes.Repeat([]byte{1}, 16))
	require.Error(t, err)
	assert.True(t, krerrors.IsValidationError(err))

	_, err = hasher.Hash([]byte("password"), []byte("short"))
	require.Error(t, err)
	assert.True(t, krerrors.IsValidationError(err))
}

func TestDeriveKey_FromSecretBuffer(t *testing.T) {
	hasher, err := NewPasswordHasher(fastOptions())
	require.NoError(t, err)

	salt := bytes.Repeat([]byte{3}, 16)
	direct, err := hasher.Hash([]byte("hunter2hunter2"), salt)
	require.NoError(t, err)

	password, err := secret.NewFromBytes([]byte("hunter2hunter2"))
	require.NoError(t, err)
	defer password.Close()

	derived, err := hasher.DeriveKey(password, salt)
	require.NoError(t, err)
	assert.Equal(t, direct, derived)
}

func TestDeriveKey_ClosedBuffer(t *testing.T) {
	hasher, err := NewPasswordHasher(fastOptions())
	require.NoError(t, err)

	password, err := secret.NewFromBytes([]byte("ephemeral"))
	require.NoError(t, err)
	require.NoError(t, password.Close())

	_, err = hasher.DeriveKey(password, bytes.Repeat([]byte{1}, 16))
	require.ErrorIs(t, err, krerrors.ErrConsumed)
}

func TestNewSalt(t *testing.T) {
	hasher, err := NewPasswordHasher(fastOptions())
	require.NoError(t, err)

	first, err := hasher.NewSalt()
	require.NoError(t, err)
	assert.Len(t, first, 16)

	second, err := hasher.NewSalt()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRandomBytes(t *testing.T) {
	_, err := RandomBytes(0)
	require.Error(t, err)

	buf, err := RandomBytes(64)
	require.NoError(t, err)
	assert.Len(t, buf, 64)
}
