package backup

import (
	"strings"

	"github.com/krowno/krowno/internal/adapters/checksum"
	"github.com/krowno/krowno/internal/adapters/command"
	"github.com/krowno/krowno/internal/adapters/compression"
	"github.com/krowno/krowno/internal/adapters/transport"
	"github.com/krowno/krowno/internal/core/domain"
)

// DefaultStorageDirectory is where archives land when the configuration
// does not say otherwise.
const DefaultStorageDirectory = "/var/lib/krowno/archives"

func prepareDefaults(opts *domain.BackupOptions) *domain.BackupOptions {
	if strings.TrimSpace(opts.StorageDirectory) == "" {
		opts.StorageDirectory = DefaultStorageDirectory
	}

	if opts.CompressionOptions == nil {
		opts.CompressionOptions = compression.DefaultOptions()
	}

	if opts.ChecksumOptions == nil {
		opts.ChecksumOptions = checksum.DefaultOptions()
	} else if opts.ChecksumOptions.Enable && opts.ChecksumOptions.Algorithm == "" {
		opts.ChecksumOptions.Algorithm = checksum.SHA256
	}

	if opts.CommandOptions == nil {
		opts.CommandOptions = command.DefaultOptions()
	}

	if opts.TransportOptions == nil {
		opts.TransportOptions = transport.DefaultOptions()
	}

	return opts
}
