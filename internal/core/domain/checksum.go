package domain

// ChecksumAlgorithm represents supported digest algorithms for archive
// integrity sidecars.
type ChecksumAlgorithm string

// ChecksumOptions defines configuration for archive digests.
type ChecksumOptions struct {
	// Enable controls whether digests are written alongside archives and
	// verified on restore. Disabling offers slightly faster backups at the
	// cost of losing corruption detection.
	//
	// Default: true
	Enable bool

	// Algorithm specifies which digest algorithm to use.
	// Defaults to SHA256 if not specified.
	Algorithm ChecksumAlgorithm
}
