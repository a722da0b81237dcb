package compression

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krowno/krowno/internal/core/domain"
	krerrors "github.com/krowno/krowno/pkg/errors"
)

func newCodec(t *testing.T) *ZlibCodec {
	t.Helper()
	codec, err := NewZlibCodec(nil)
	require.NoError(t, err)
	return codec
}

func TestNewZlibCodec_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts domain.CompressionOptions
	}{
		{"level too high", domain.CompressionOptions{DefaultLevel: 10, MaxAttempts: 6, InitialMultiplier: 4, GrowthFactor: 2}},
		{"level too low", domain.CompressionOptions{DefaultLevel: -3, MaxAttempts: 6, InitialMultiplier: 4, GrowthFactor: 2}},
		{"zero attempts", domain.CompressionOptions{DefaultLevel: 6, MaxAttempts: 0, InitialMultiplier: 4, GrowthFactor: 2}},
		{"zero multiplier", domain.CompressionOptions{DefaultLevel: 6, MaxAttempts: 6, InitialMultiplier: 0, GrowthFactor: 2}},
		{"non-growing factor", domain.CompressionOptions{DefaultLevel: 6, MaxAttempts: 6, InitialMultiplier: 4, GrowthFactor: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewZlibCodec(&tt.opts)
			require.Error(t, err)
			assert.True(t, krerrors.IsValidationError(err))
		})
	}
}

func TestRoundTrip_AllLevels(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := make([]byte, 10_000)
	rng.Read(random)

	payloads := [][]byte{
		[]byte("x"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte{0}, 100_000),
		random,
	}

	codec := newCodec(t)
	for level := zlib.HuffmanOnly; level <= zlib.BestCompression; level++ {
		for _, payload := range payloads {
			result, err := codec.Compress(payload, level)
			require.NoError(t, err, "level %d", level)
			assert.Equal(t, level, result.Level)
			assert.LessOrEqual(t, len(result.Data), codec.Bound(len(payload)))

			restored, err := codec.Decompress(result.Data)
			require.NoError(t, err, "level %d", level)
			assert.Equal(t, payload, restored)
		}
	}
}

func TestCompress_EmptyInput(t *testing.T) {
	codec := newCodec(t)
	_, err := codec.Compress(nil, 6)
	require.Error(t, err)
	assert.True(t, krerrors.IsValidationError(err))
}

func TestCompress_LevelRejectedNotClamped(t *testing.T) {
	codec := newCodec(t)
	for _, level := range []int{-3, 10, 100} {
		_, err := codec.Compress([]byte("payload"), level)
		require.Error(t, err, "level %d", level)
		assert.True(t, krerrors.IsValidationError(err))
	}
}

func TestDecompress_EmptyInput(t *testing.T) {
	codec := newCodec(t)
	_, err := codec.Decompress(nil)
	require.Error(t, err)
	assert.True(t, krerrors.IsValidationError(err))
}

func TestDecompress_CorruptionShortCircuits(t *testing.T) {
	codec := newCodec(t)

	// Garbage header.
	_, err := codec.Decompress([]byte("definitely not a zlib stream"))
	require.ErrorIs(t, err, krerrors.ErrDecompress)
	assert.NotErrorIs(t, err, krerrors.ErrCapacityExhausted)

	// Valid header, mangled body.
	result, err := codec.Compress(bytes.Repeat([]byte("abc"), 500), 6)
	require.NoError(t, err)
	mangled := result.Data
	for i := len(mangled) / 2; i < len(mangled); i++ {
		mangled[i] ^= 0xff
	}
	_, err = codec.Decompress(mangled)
	require.ErrorIs(t, err, krerrors.ErrDecompress)
	assert.NotErrorIs(t, err, krerrors.ErrCapacityExhausted)
}

func TestDecompress_TruncatedStream(t *testing.T) {
	codec := newCodec(t)

	payload := bytes.Repeat([]byte("krowno"), 16_000/6)
	result, err := codec.Compress(payload, 6)
	require.NoError(t, err)

	// Chop the trailing checksum plus a little deflate data. A cut-short
	// stream must fail, never come back as a shorter payload with no
	// error.
	for _, chop := range []int{1, 6, len(result.Data) / 2} {
		truncated := result.Data[:len(result.Data)-chop]
		restored, err := codec.Decompress(truncated)
		require.ErrorIs(t, err, krerrors.ErrDecompress, "chop %d", chop)
		assert.NotErrorIs(t, err, krerrors.ErrCapacityExhausted, "chop %d", chop)
		assert.Nil(t, restored, "chop %d", chop)
	}
}

func TestDecompress_AttemptCeilingBoundary(t *testing.T) {
	codec := newCodec(t)

	// Runs of a single byte compress far below 256 bytes at these sizes,
	// so the first candidate capacity is pinned at the 1024-byte floor
	// and the final (sixth) attempt's capacity is exactly 1024 << 5.
	ceiling := domain.MinInitialCapacity
	for i := 1; i < DefaultMaxAttempts; i++ {
		ceiling *= DefaultGrowthFactor
	}
	previous := ceiling / DefaultGrowthFactor

	// One byte past the fifth attempt's capacity: only the last attempt
	// can hold it.
	atCeiling := []struct {
		name string
		size int
	}{
		{"needs final attempt", previous + 1},
		{"fills final attempt exactly", ceiling},
	}
	for _, tt := range atCeiling {
		t.Run(tt.name, func(t *testing.T) {
			payload := bytes.Repeat([]byte{'A'}, tt.size)
			result, err := codec.Compress(payload, zlib.BestCompression)
			require.NoError(t, err)
			require.Less(t, len(result.Data)*DefaultInitialMultiplier, domain.MinInitialCapacity,
				"payload must compress small enough to pin the initial guess at the floor")

			restored, err := codec.Decompress(result.Data)
			require.NoError(t, err)
			assert.Equal(t, payload, restored)
		})
	}

	// One byte past the final attempt's capacity: no seventh attempt runs.
	t.Run("one past the ceiling", func(t *testing.T) {
		payload := bytes.Repeat([]byte{'A'}, ceiling+1)
		result, err := codec.Compress(payload, zlib.BestCompression)
		require.NoError(t, err)
		require.Less(t, len(result.Data)*DefaultInitialMultiplier, domain.MinInitialCapacity,
			"payload must compress small enough to pin the initial guess at the floor")

		_, err = codec.Decompress(result.Data)
		require.ErrorIs(t, err, krerrors.ErrCapacityExhausted)
		assert.NotErrorIs(t, err, krerrors.ErrDecompress)
	})
}

func TestDecompress_CapacityExhausted(t *testing.T) {
	codec := newCodec(t)

	// A megabyte of a single byte compresses to around a kilobyte, so
	// its true size dwarfs the expansion ceiling.
	payload := bytes.Repeat([]byte{'A'}, 1<<20)
	result, err := codec.Compress(payload, zlib.BestCompression)
	require.NoError(t, err)

	initialGuess := len(result.Data) * DefaultInitialMultiplier
	if initialGuess < domain.MinInitialCapacity {
		initialGuess = domain.MinInitialCapacity
	}
	ceiling := initialGuess
	for i := 1; i < DefaultMaxAttempts; i++ {
		ceiling *= DefaultGrowthFactor
	}
	require.Greater(t, len(payload), ceiling, "payload must exceed the retry ceiling for this test")

	_, err = codec.Decompress(result.Data)
	require.ErrorIs(t, err, krerrors.ErrCapacityExhausted)
	assert.NotErrorIs(t, err, krerrors.ErrDecompress)

	// The same payload expands fine once the attempt budget is raised,
	// showing the failure above was the ceiling and nothing else.
	generous, err := NewZlibCodec(&domain.CompressionOptions{
		DefaultLevel:      DefaultLevel,
		MaxAttempts:       20,
		InitialMultiplier: DefaultInitialMultiplier,
		GrowthFactor:      DefaultGrowthFactor,
	})
	require.NoError(t, err)

	restored, err := generous.Decompress(result.Data)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestDecompress_ExactCapacityFit(t *testing.T) {
	codec := newCodec(t)

	// Decompressed size exactly equals the first candidate capacity.
	payload := bytes.Repeat([]byte{'z'}, domain.MinInitialCapacity)
	result, err := codec.Compress(payload, 6)
	require.NoError(t, err)
	require.LessOrEqual(t, len(result.Data)*DefaultInitialMultiplier, domain.MinInitialCapacity)

	restored, err := codec.Decompress(result.Data)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestDecompress_GrowsPastInitialGuess(t *testing.T) {
	codec := newCodec(t)

	// Compresses tiny, so the first guess is the 1024-byte floor and at
	// least one doubling is needed before the output fits.
	payload := bytes.Repeat([]byte{'B'}, 1500)
	result, err := codec.Compress(payload, 6)
	require.NoError(t, err)
	require.Less(t, len(result.Data)*DefaultInitialMultiplier, len(payload))

	restored, err := codec.Decompress(result.Data)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestScenario_TenBytesLevelSix(t *testing.T) {
	codec := newCodec(t)

	payload := []byte("AAAAAAAAAA")
	result, err := codec.Compress(payload, 6)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Data), codec.Bound(len(payload)))

	restored, err := codec.Decompress(result.Data)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
	assert.Len(t, restored, 10)
}

func TestBound(t *testing.T) {
	codec := newCodec(t)

	assert.Equal(t, 13, codec.Bound(0))
	prev := 0
	for _, n := range []int{1, 10, 1024, 1 << 20, 1 << 28} {
		bound := codec.Bound(n)
		assert.Greater(t, bound, n, "bound must exceed input size")
		assert.Greater(t, bound, prev)
		prev = bound
	}
}
