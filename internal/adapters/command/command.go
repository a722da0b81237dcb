// Package command captures subprocess output of unknown length.
// Stdout is drained in fixed-size chunks into an accumulator, so the
// capture grows with the output instead of guessing a size up front.
package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/krowno/krowno/internal/core/domain"
	"github.com/krowno/krowno/pkg/buffer"
	krerrors "github.com/krowno/krowno/pkg/errors"
	"github.com/krowno/krowno/pkg/pool"
)

// Default capture settings.
const (
	DefaultShell     = "/bin/sh"
	DefaultChunkSize = 4096
)

// Runner executes shell commands and captures their standard output.
// Safe for concurrent use; each execution owns its accumulator and
// borrows a chunk buffer from a shared pool.
type Runner struct {
	opts   domain.CommandOptions
	chunks *pool.ChunkPool
}

// DefaultOptions returns the recommended capture settings: /bin/sh,
// 4 KiB read chunks, unbounded output.
func DefaultOptions() *domain.CommandOptions {
	return &domain.CommandOptions{
		Shell:     DefaultShell,
		ChunkSize: DefaultChunkSize,
	}
}

// Validate checks the capture options.
func Validate(input *domain.CommandOptions) error {
	if input.Shell == "" {
		return krerrors.NewValidationError(
			"Shell", input.Shell, errors.New("shell must not be empty"),
		)
	}
	if input.ChunkSize < 1 {
		return krerrors.NewValidationError(
			"ChunkSize", input.ChunkSize, errors.New("chunk size must be positive"),
		)
	}
	if input.MaxOutputBytes < 0 {
		return krerrors.NewValidationError(
			"MaxOutputBytes", input.MaxOutputBytes, errors.New("max output bytes must not be negative"),
		)
	}
	return nil
}

// NewRunner creates a runner. Passing nil uses DefaultOptions.
func NewRunner(opts *domain.CommandOptions) (*Runner, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := Validate(opts); err != nil {
		return nil, err
	}
	return &Runner{opts: *opts, chunks: pool.NewChunkPool(opts.ChunkSize)}, nil
}

// Execute runs command through the configured shell and captures its
// stdout until the stream closes. Stderr passes through to the parent's
// stderr. A non-zero exit status is reported in the result, not as an
// error; spawn failures, capture-limit overruns, and context
// cancellation are errors.
func (r *Runner) Execute(ctx context.Context, command string) (*domain.CommandResult, error) {
	if command == "" {
		return nil, krerrors.NewValidationError(
			"command", command, errors.New("command must not be empty"),
		)
	}

	cmd := exec.CommandContext(ctx, r.opts.Shell, "-c", command)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	initial := buffer.DefaultInitialCapacity
	if r.opts.MaxOutputBytes > 0 && r.opts.MaxOutputBytes < initial {
		initial = r.opts.MaxOutputBytes
	}
	acc, err := buffer.New(initial, buffer.WithMaxCapacity(r.opts.MaxOutputBytes))
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return nil, err
	}

	chunk := r.chunks.Get()
	defer r.chunks.Put(chunk)

	for {
		n, readErr := stdout.Read(chunk)
		if n > 0 {
			if appendErr := acc.Append(chunk[:n]); appendErr != nil {
				acc.Release()
				cmd.Process.Kill()
				cmd.Wait()
				return nil, appendErr
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			acc.Release()
			cmd.Wait()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, readErr
		}
	}

	exitCode := 0
	if waitErr := cmd.Wait(); waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			acc.Release()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, waitErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			acc.Release()
			return nil, ctxErr
		}
		exitCode = exitErr.ExitCode()
	}

	output, err := acc.Finalize()
	if err != nil {
		return nil, err
	}
	return &domain.CommandResult{Output: output, ExitCode: exitCode}, nil
}
