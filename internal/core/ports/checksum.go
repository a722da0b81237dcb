package ports

// ChecksumPort defines an interface for calculating and verifying
// archive digests.
type ChecksumPort interface {
	// Sum calculates the digest of data.
	Sum(data []byte) []byte

	// Verify reports whether data matches the expected digest.
	Verify(data []byte, expected []byte) bool

	// Size returns the digest length in bytes.
	Size() int

	// Name returns the algorithm name as written in digest sidecars.
	Name() string
}
