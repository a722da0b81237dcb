package backup

import (
	"github.com/krowno/krowno/internal/adapters/checksum"
	"github.com/krowno/krowno/internal/adapters/command"
	"github.com/krowno/krowno/internal/adapters/compression"
	"github.com/krowno/krowno/internal/adapters/transport"
	"github.com/krowno/krowno/internal/core/domain"
)

// Validate checks the composed options after defaults are applied. The
// adapter constructors validate again; failing here keeps the error
// close to the configuration instead of deep in construction.
func Validate(opts *domain.BackupOptions) error {
	if err := compression.Validate(opts.CompressionOptions); err != nil {
		return err
	}

	if opts.ChecksumOptions.Enable {
		if err := checksum.Validate(opts.ChecksumOptions); err != nil {
			return err
		}
	}

	if err := command.Validate(opts.CommandOptions); err != nil {
		return err
	}

	if err := transport.Validate(opts.TransportOptions); err != nil {
		return err
	}

	return nil
}
