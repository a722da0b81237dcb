package domain

// CompressionOptions configures the archive codec: the default deflate
// level and the expansion retry policy.
type CompressionOptions struct {
	// DefaultLevel is the deflate level used when the caller does not
	// supply one. Levels follow the zlib convention: -2 (Huffman only)
	// through 9 (best compression), with -1 selecting the library default.
	DefaultLevel int

	// MaxAttempts bounds the number of capacity guesses when expanding a
	// payload of unknown decompressed size. Together with InitialMultiplier
	// and GrowthFactor this caps worst-case memory at
	// InitialMultiplier × GrowthFactor^(MaxAttempts-1) times the compressed
	// length, which is the tool's decompression-bomb ceiling.
	MaxAttempts int

	// InitialMultiplier scales the compressed length to produce the first
	// candidate capacity. The first guess is never below MinInitialCapacity.
	InitialMultiplier int

	// GrowthFactor multiplies the candidate capacity after each
	// output-too-small attempt.
	GrowthFactor int
}

// MinInitialCapacity is the floor for the first expansion guess, so tiny
// inputs still start from a useful buffer size.
const MinInitialCapacity = 1024

// CompressionResult is a compressed payload handed to the caller. The
// caller owns Data exclusively; the codec retains no reference.
type CompressionResult struct {
	// Data holds exactly the compressed bytes; len(Data) is the
	// compressed length.
	Data []byte

	// Level is the deflate level the payload was compressed with.
	Level int
}
