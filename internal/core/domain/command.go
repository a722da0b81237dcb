package domain

// CommandOptions configures subprocess output capture.
type CommandOptions struct {
	// Shell is the interpreter the command line is handed to.
	// Defaults to /bin/sh.
	Shell string

	// ChunkSize is the read size for draining the child's stdout.
	ChunkSize int

	// MaxOutputBytes caps how much output may be captured. 0 means
	// unbounded.
	MaxOutputBytes int
}

// CommandResult is a captured subprocess run. Output is the child's
// stdout, owned exclusively by the caller; ExitCode is the child's exit
// status (0 on success).
type CommandResult struct {
	Output   []byte
	ExitCode int
}
