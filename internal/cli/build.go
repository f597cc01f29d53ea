package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/quforge/quarith/internal/config"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the selected operator, operand widths, timeout, and
// environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Execution Configuration ---\n")
	writeOut(out, "Building %s%s%s over %s%d%s qubit(s) with a timeout of %s%s%s.\n",
		ColorMagenta(), describeOperator(cfg), ColorReset(),
		ColorCyan(), cfg.Width, ColorReset(),
		ColorYellow(), cfg.Timeout, ColorReset())
	writeOut(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
	if cfg.Verify {
		writeOut(out, "Verification: %senabled%s (exhaustive basis-state simulation).\n",
			ColorGreen(), ColorReset())
	}
	writeOut(out, "\n--- Starting Build ---\n")
}

// describeOperator returns a human-readable description of the configured
// operator, including its variant flags.
func describeOperator(cfg config.AppConfig) string {
	switch cfg.Operator {
	case "qft":
		if cfg.Inverse {
			return "the inverse quantum Fourier transform"
		}
		return "the quantum Fourier transform"
	case "adder":
		if cfg.Subtract {
			return "a Fourier subtractor"
		}
		return "a Fourier adder"
	case "multiplier":
		if cfg.Subtract {
			return "a subtracting multiplier"
		}
		return "a multiplier"
	default:
		return fmt.Sprintf("the %q operator", cfg.Operator)
	}
}

// writeOut writes a formatted string to the output writer.
//
// Parameters:
//   - out: The destination writer.
//   - format: The format string (see fmt.Printf).
//   - a: Arguments for the format string.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
