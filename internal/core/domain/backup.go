package domain

// BackupOptions control the backup service: where archives land and how
// the underlying adapters behave. Nil sub-options select each adapter's
// defaults.
type BackupOptions struct {
	// StorageDirectory is where archives and digest sidecars are written.
	// Created (with parents) if missing.
	StorageDirectory string

	CompressionOptions *CompressionOptions
	ChecksumOptions    *ChecksumOptions
	CommandOptions     *CommandOptions
	TransportOptions   *TransportOptions
}

// ArchiveInfo describes a stored archive.
type ArchiveInfo struct {
	// Path of the compressed archive on disk.
	Path string

	// DigestPath of the integrity sidecar, empty when digests are
	// disabled.
	DigestPath string

	// OriginalSize is the captured payload size before compression.
	OriginalSize int

	// CompressedSize is the archive size on disk.
	CompressedSize int

	// Level is the deflate level the archive was written with.
	Level int
}
