package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupLifecycle derives the context that bounds a circuit build. The
// returned context is canceled when the configured timeout expires or when
// the process receives SIGINT or SIGTERM, whichever comes first, so a
// long multiplier build can be interrupted cleanly from the terminal.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration allowed for the build.
//
// Returns:
//   - context.Context: The bounded context to pass into the build.
//   - *CancelFuncs: Cancel functions for cleanup, typically via a deferred
//     Cleanup call.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// CancelFuncs bundles the cancel functions created by SetupLifecycle so a
// single deferred call releases both.
type CancelFuncs struct {
	// CancelTimeout cancels the timeout context.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// Cleanup releases the signal registration first, then the timeout.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
