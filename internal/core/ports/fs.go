package ports

import "os"

// FileSystemPort abstracts the filesystem operations the backup service
// needs, so tests can run against a temp directory and future remotes
// can plug in.
type FileSystemPort interface {
	// CreateDirAll creates a directory and any missing parents.
	// Succeeds if the directory already exists.
	CreateDirAll(dirPath string, permission os.FileMode) error

	// WriteFile writes contents to a file, replacing it if present.
	WriteFile(filePath string, permission os.FileMode, contents []byte) error

	// ReadFile reads a file's full contents.
	ReadFile(filePath string) ([]byte, error)

	// DeleteFile removes a file.
	DeleteFile(filePath string) error

	// Exists reports whether a path exists.
	Exists(filePath string) (bool, error)

	// FileSize returns a file's size in bytes.
	FileSize(filePath string) (int64, error)
}
