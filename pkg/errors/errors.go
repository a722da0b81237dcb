package errors

import (
	"fmt"
	"time"
)

// ErrorCategory classifies different types of errors that can occur
// during backup operations. This helps in proper error handling,
// monitoring, and debugging of the tool.
type ErrorCategory int

const (
	// ErrorStorage indicates errors related to underlying storage operations
	// such as file I/O, disk space, permissions, or filesystem issues.
	ErrorStorage ErrorCategory = iota + 1

	// ErrorCompression indicates errors during archive compression or
	// decompression operations, such as corrupt compressed data or
	// a decompressed size beyond the configured ceiling.
	ErrorCompression

	// ErrorTransport indicates errors during remote transfers,
	// such as connection failures, timeouts, or oversized bodies.
	ErrorTransport

	// ErrorCrypto indicates errors in cryptographic operations,
	// such as key derivation failures or invalid parameters.
	ErrorCrypto

	// ErrorCommand indicates errors while capturing subprocess output,
	// such as spawn failures or non-zero exit codes.
	ErrorCommand
)

// String returns the string representation of the error category.
// This is useful for logging, metrics, and error reporting.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorStorage:
		return "storage"
	case ErrorCompression:
		return "compression"
	case ErrorTransport:
		return "transport"
	case ErrorCrypto:
		return "crypto"
	case ErrorCommand:
		return "command"
	default:
		return "unknown"
	}
}

// BackupError wraps a failure with the operation that produced it and
// when it happened. It is the error type surfaced by the backup service;
// adapters return plain sentinel-wrapped errors.
type BackupError struct {
	Err       error
	Operation string
	Timestamp time.Time
	Category  ErrorCategory
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("[%v] %s: %v : %s", e.Category, e.Operation, e.Err, e.Timestamp.String())
}

func (e *BackupError) Unwrap() error {
	return e.Err
}

// IsRetryAble returns whether errors of this category can be retried.
// This helps callers decide whether to retry failed operations.
func (e *BackupError) IsRetryAble() bool {
	switch e.Category {
	case ErrorStorage:
		// Storage errors might be temporary (e.g., disk full).
		return true
	case ErrorCompression:
		// Compression errors are not retry able (corrupted data,
		// exhausted expansion budget).
		return false
	case ErrorTransport:
		// Transport errors might be temporary (e.g., network issues).
		return true
	case ErrorCrypto:
		// Crypto errors mean bad parameters, retrying cannot help.
		return false
	case ErrorCommand:
		// Command failures might be temporary (e.g., resource limits).
		return true
	default:
		return false
	}
}

// NewBackupError builds a BackupError stamped with the current time.
func NewBackupError(category ErrorCategory, operation string, err error) *BackupError {
	return &BackupError{
		Err:       err,
		Category:  category,
		Operation: operation,
		Timestamp: time.Now(),
	}
}
