package command

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krowno/krowno/internal/core/domain"
	krerrors "github.com/krowno/krowno/pkg/errors"
)

func newRunner(t *testing.T, opts *domain.CommandOptions) *Runner {
	t.Helper()
	runner, err := NewRunner(opts)
	require.NoError(t, err)
	return runner
}

func TestNewRunner_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts domain.CommandOptions
	}{
		{"empty shell", domain.CommandOptions{Shell: "", ChunkSize: 4096}},
		{"zero chunk size", domain.CommandOptions{Shell: "/bin/sh", ChunkSize: 0}},
		{"negative limit", domain.CommandOptions{Shell: "/bin/sh", ChunkSize: 4096, MaxOutputBytes: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(&tt.opts)
			require.Error(t, err)
			assert.True(t, krerrors.IsValidationError(err))
		})
	}
}

func TestExecute_CapturesOutput(t *testing.T) {
	runner := newRunner(t, nil)

	result, err := runner.Execute(context.Background(), "printf 'hello from the shell'")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, []byte("hello from the shell"), result.Output)
}

func TestExecute_EmptyCommand(t *testing.T) {
	runner := newRunner(t, nil)

	_, err := runner.Execute(context.Background(), "")
	require.Error(t, err)
	assert.True(t, krerrors.IsValidationError(err))
}

func TestExecute_NonZeroExit(t *testing.T) {
	runner := newRunner(t, nil)

	result, err := runner.Execute(context.Background(), "printf partial; exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, []byte("partial"), result.Output)
}

func TestExecute_OutputLargerThanChunk(t *testing.T) {
	// A tiny chunk size forces many appends and several growths.
	runner := newRunner(t, &domain.CommandOptions{Shell: DefaultShell, ChunkSize: 7})

	result, err := runner.Execute(context.Background(), "seq 1 1000")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)

	lines := bytes.Split(bytes.TrimSpace(result.Output), []byte("\n"))
	require.Len(t, lines, 1000)
	assert.Equal(t, []byte("1"), lines[0])
	assert.Equal(t, []byte("1000"), lines[999])
}

func TestExecute_CaptureLimit(t *testing.T) {
	runner := newRunner(t, &domain.CommandOptions{
		Shell: DefaultShell, ChunkSize: 1024, MaxOutputBytes: 2048,
	})

	_, err := runner.Execute(context.Background(), "head -c 100000 /dev/zero")
	require.ErrorIs(t, err, krerrors.ErrAllocationLimit)
}

func TestExecute_ContextCancellation(t *testing.T) {
	runner := newRunner(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := runner.Execute(ctx, "sleep 30")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecute_NoOutput(t *testing.T) {
	runner := newRunner(t, nil)

	result, err := runner.Execute(context.Background(), "true")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Empty(t, result.Output)
}
