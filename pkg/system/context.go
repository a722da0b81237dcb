package system

import (
	"context"
)

// RunWithContext executes a cleanup or teardown operation under the
// caller's context. The operation receives its own context so it can
// observe cancellation and still finish critical work.
//
// Returns:
//   - nil if the operation completes successfully.
//   - the operation's error if it fails.
//   - the operation's eventual result if the parent context is cancelled
//     mid-flight; the operation is signalled to stop but always waited on,
//     so no goroutine is leaked.
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	// Fast feedback if the caller's context is already cancelled.
	if err := ctx.Err(); err != nil {
		return err
	}

	// The operation gets an independent context so its lifecycle can be
	// managed separately from the parent.
	opCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Buffered so the goroutine can exit even if nobody reads the result
	// immediately after a parent cancellation.
	done := make(chan error, 1)

	go func() {
		done <- operation(opCtx)
		close(done)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// Signal the operation to stop, then wait for it to finish so
		// resources are not left in an inconsistent state.
		cancel()
		return <-done
	}
}
