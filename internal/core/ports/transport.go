package ports

import (
	"context"

	"github.com/krowno/krowno/internal/core/domain"
)

// TransportPort fetches remote resources with the response body fully
// captured in memory.
type TransportPort interface {
	// Get performs a GET and captures the whole body. The body is
	// delivered in arbitrary-size chunks by the transport and accumulated
	// until the transfer completes.
	Get(ctx context.Context, url string) (*domain.HTTPResponse, error)
}

// CommandPort runs a shell command and captures its standard output.
type CommandPort interface {
	// Execute runs command and captures stdout until the stream closes.
	// A non-zero exit status is reported in the result, not as an error.
	Execute(ctx context.Context, command string) (*domain.CommandResult, error)
}
