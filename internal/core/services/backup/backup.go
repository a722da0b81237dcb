// Package backup orchestrates the capture adapters into archive
// operations: run a command or fetch a URL, compress the captured
// bytes, and store them with an integrity sidecar.
package backup

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/krowno/krowno/internal/adapters/checksum"
	"github.com/krowno/krowno/internal/adapters/command"
	"github.com/krowno/krowno/internal/adapters/compression"
	"github.com/krowno/krowno/internal/adapters/fs"
	"github.com/krowno/krowno/internal/adapters/transport"
	"github.com/krowno/krowno/internal/core/domain"
	"github.com/krowno/krowno/internal/core/ports"
	krerrors "github.com/krowno/krowno/pkg/errors"
	"github.com/krowno/krowno/pkg/system"
)

// ArchiveExtension is appended to every stored archive.
const ArchiveExtension = ".z"

// Service stores and restores compressed archives of captured output.
type Service struct {
	options *domain.BackupOptions

	// Interfaces for capture, integrity, and storage operations.
	fs     ports.FileSystemPort  // Handles filesystem operations.
	codec  ports.CompressionPort // Handles archive compression/decompression.
	digest ports.ChecksumPort    // Handles integrity digests; nil when disabled.
	runner ports.CommandPort     // Captures subprocess output.
	client ports.TransportPort   // Captures remote response bodies.
}

// New creates the backup service, building its adapters from the given
// options. Passing nil selects all defaults except the storage
// directory, which is required.
func New(opts *domain.BackupOptions) (*Service, error) {
	if opts == nil {
		opts = &domain.BackupOptions{}
	}
	opts = prepareDefaults(opts)
	if err := Validate(opts); err != nil {
		return nil, err
	}

	codec, err := compression.NewZlibCodec(opts.CompressionOptions)
	if err != nil {
		return nil, err
	}

	runner, err := command.NewRunner(opts.CommandOptions)
	if err != nil {
		return nil, err
	}

	client, err := transport.NewClient(opts.TransportOptions)
	if err != nil {
		return nil, err
	}

	var digest ports.ChecksumPort
	if opts.ChecksumOptions.Enable {
		if digest, err = checksum.New(opts.ChecksumOptions.Algorithm); err != nil {
			return nil, err
		}
	}

	service := Service{
		options: opts,
		fs:      fs.NewLocalFileSystem(),
		codec:   codec,
		digest:  digest,
		runner:  runner,
		client:  client,
	}

	if err := service.fs.CreateDirAll(opts.StorageDirectory, 0o755); err != nil {
		return nil, krerrors.NewBackupError(krerrors.ErrorStorage, "create storage directory", err)
	}
	return &service, nil
}

// CaptureCommand runs a shell command and archives its standard output.
// A command that exits non-zero is an error here: its output is not
// trusted as a backup source.
func (s *Service) CaptureCommand(ctx context.Context, name, cmd string) (*domain.ArchiveInfo, error) {
	result, err := s.runner.Execute(ctx, cmd)
	if err != nil {
		if krerrors.IsValidationError(err) {
			return nil, err
		}
		return nil, krerrors.NewBackupError(krerrors.ErrorCommand, "capture command", err)
	}
	if result.ExitCode != 0 {
		return nil, krerrors.NewBackupError(
			krerrors.ErrorCommand, "capture command",
			fmt.Errorf("command exited with status %d", result.ExitCode),
		)
	}

	return s.store(name, result.Output)
}

// FetchURL fetches a remote resource and archives the response body.
// Non-2xx responses are errors: an error page is not a backup.
func (s *Service) FetchURL(ctx context.Context, name, url string) (*domain.ArchiveInfo, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		if krerrors.IsValidationError(err) {
			return nil, err
		}
		return nil, krerrors.NewBackupError(krerrors.ErrorTransport, "fetch url", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, krerrors.NewBackupError(
			krerrors.ErrorTransport, "fetch url",
			fmt.Errorf("unexpected status %d", resp.StatusCode),
		)
	}

	return s.store(name, resp.Body)
}

// Restore reads an archive, verifies its digest sidecar when digests
// are enabled, and returns the decompressed contents.
func (s *Service) Restore(ctx context.Context, archivePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compressed, err := s.fs.ReadFile(archivePath)
	if err != nil {
		return nil, krerrors.NewBackupError(krerrors.ErrorStorage, "read archive", err)
	}

	if s.digest != nil {
		if err := s.verifySidecar(archivePath, compressed); err != nil {
			return nil, err
		}
	}

	payload, err := s.codec.Decompress(compressed)
	if err != nil {
		if krerrors.IsValidationError(err) {
			return nil, err
		}
		return nil, krerrors.NewBackupError(krerrors.ErrorCompression, "expand archive", err)
	}
	return payload, nil
}

// store compresses payload at the configured level and writes the
// archive plus its digest sidecar.
func (s *Service) store(name string, payload []byte) (*domain.ArchiveInfo, error) {
	if err := validateArchiveName(name); err != nil {
		return nil, err
	}

	result, err := s.codec.Compress(payload, s.options.CompressionOptions.DefaultLevel)
	if err != nil {
		if krerrors.IsValidationError(err) {
			return nil, err
		}
		return nil, krerrors.NewBackupError(krerrors.ErrorCompression, "compress payload", err)
	}

	archivePath := filepath.Join(
		s.options.StorageDirectory,
		fmt.Sprintf("%s-%d%s", name, system.Timestamp(), ArchiveExtension),
	)
	if err := s.fs.WriteFile(archivePath, 0o644, result.Data); err != nil {
		return nil, krerrors.NewBackupError(krerrors.ErrorStorage, "write archive", err)
	}

	info := domain.ArchiveInfo{
		Path:           archivePath,
		OriginalSize:   len(payload),
		CompressedSize: len(result.Data),
		Level:          result.Level,
	}

	if s.digest != nil {
		sidecarPath := archivePath + "." + s.digest.Name()
		sum := s.digest.Sum(result.Data)
		contents := fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum), filepath.Base(archivePath))
		if err := s.fs.WriteFile(sidecarPath, 0o644, []byte(contents)); err != nil {
			return nil, krerrors.NewBackupError(krerrors.ErrorStorage, "write digest sidecar", err)
		}
		info.DigestPath = sidecarPath
	}

	return &info, nil
}

// verifySidecar checks the archive bytes against the stored digest.
// A missing sidecar is an error when digests are enabled: silently
// skipping verification would defeat its purpose.
func (s *Service) verifySidecar(archivePath string, compressed []byte) error {
	sidecarPath := archivePath + "." + s.digest.Name()

	contents, err := s.fs.ReadFile(sidecarPath)
	if err != nil {
		return krerrors.NewBackupError(krerrors.ErrorStorage, "read digest sidecar", err)
	}

	fields := strings.Fields(string(contents))
	if len(fields) == 0 {
		return krerrors.NewBackupError(
			krerrors.ErrorStorage, "parse digest sidecar", errors.New("empty sidecar"),
		)
	}

	expected, err := hex.DecodeString(fields[0])
	if err != nil {
		return krerrors.NewBackupError(krerrors.ErrorStorage, "parse digest sidecar", err)
	}

	if !s.digest.Verify(compressed, expected) {
		return krerrors.NewBackupError(
			krerrors.ErrorStorage, "verify archive digest",
			errors.New("digest mismatch, archive is corrupt or was tampered with"),
		)
	}
	return nil
}

func validateArchiveName(name string) error {
	if name == "" {
		return krerrors.NewValidationError(
			"name", name, errors.New("archive name must not be empty"),
		)
	}
	if strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return krerrors.NewValidationError(
			"name", name, errors.New("archive name must not contain path separators"),
		)
	}
	return nil
}
