package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// HandleBuildError formats and prints error messages related to failed build
// or verification runs. It distinguishes between different error types
// (timeout, cancellation, configuration, generic) to provide the user with
// specific feedback.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: The duration of the run before it failed.
//   - out: The io.Writer to which the error message will be written.
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleBuildError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s", duration)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "Status: Canceled%s.\n", msgSuffix)
		return ExitErrorCanceled
	}
	if IsConfigError(err) {
		fmt.Fprintf(out, "Status: Failure (Configuration). %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
