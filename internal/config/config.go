// Package config provides the configuration management for the quarith
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/quforge/quarith/internal/arith"
	apperrors "github.com/quforge/quarith/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by quarith.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "QUARITH_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultOperator is the default operator selection.
	DefaultOperator = "adder"
	// DefaultWidth is the default primary operand width in qubits.
	DefaultWidth = 3
	// DefaultTimeout is the default build-and-verify timeout.
	DefaultTimeout = 2 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultMaxRepetitions caps the multiplier's controlled additions.
	// The count doubles per multiplier qubit, so an uncapped wide build
	// can run away; 1<<16 covers multipliers up to 16 qubits.
	DefaultMaxRepetitions int64 = 1 << 16
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the operator and operand widths to output formatting.
type AppConfig struct {
	// Operator selects the circuit to build ("qft", "adder", "multiplier").
	Operator string
	// Width is the primary operand width in qubits: the transform register
	// for "qft", the addend register for "adder", the multiplicand register
	// for "multiplier".
	Width int
	// MultiplierWidth is the multiplier register width. Zero means use
	// Width. Ignored by the other operators.
	MultiplierWidth int
	// Subtract selects the subtracting variant of the arithmetic operators.
	Subtract bool
	// Inverse selects the inverse transform for the "qft" operator.
	Inverse bool
	// SkipQFT omits the Fourier bracketing on the arithmetic operators,
	// producing a circuit that operates on an already-transformed target.
	SkipQFT bool
	// Barriers inserts barriers between logical circuit blocks.
	Barriers bool
	// Verify runs an exhaustive basis-state simulation of the built
	// circuit against its classical semantics.
	Verify bool
	// Timeout sets the maximum duration for building and verification.
	Timeout time.Duration
	// MaxRepetitions caps the multiplier's controlled-adder applications.
	// Zero disables the cap.
	MaxRepetitions int64
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the circuit listing to this file path.
	OutputFile string
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses spinners, banners, and informational messages.
	Quiet bool
	// Verbose, if true, prints the full circuit listing, which grows
	// exponentially for wide multipliers.
	Verbose bool
	// Debug enables debug-level logging in the builders.
	Debug bool
}

// ToParams converts the application configuration into arith.Params for
// use by the builder registry.
func (c AppConfig) ToParams() arith.Params {
	return arith.Params{
		Width:           c.Width,
		MultiplierWidth: c.MultiplierWidth,
		Subtract:        c.Subtract,
		SkipQFT:         c.SkipQFT,
		Inverse:         c.Inverse,
		InsertBarrier:   c.Barriers,
		MaxRepetitions:  c.MaxRepetitions,
		Debug:           c.Debug,
	}
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen operator is supported.
//
// Parameters:
//   - availableOperators: A slice of strings listing the valid operator
//     names (e.g., ["adder", "multiplier", "qft"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableOperators []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Width < 1 {
		return apperrors.NewConfigError("operand width must be at least 1 qubit, got %d", c.Width)
	}
	if c.MultiplierWidth < 0 {
		return apperrors.NewConfigError("multiplier width cannot be negative: %d", c.MultiplierWidth)
	}
	if c.MaxRepetitions < 0 {
		return apperrors.NewConfigError("repetition cap cannot be negative: %d", c.MaxRepetitions)
	}
	isOperatorAvailable := false
	for _, op := range availableOperators {
		if op == c.Operator {
			isOperatorAvailable = true
			break
		}
	}
	if !isOperatorAvailable {
		return apperrors.NewConfigError("unrecognized operator: '%s'. Valid operators are: [%s]", c.Operator, strings.Join(availableOperators, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableOperators: A slice of valid operator names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOperators []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	operatorHelp := fmt.Sprintf("Operator to build: one of [%s].", strings.Join(availableOperators, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Operator, "op", DefaultOperator, operatorHelp)
	fs.IntVar(&config.Width, "width", DefaultWidth, "Primary operand width in qubits.")
	fs.IntVar(&config.MultiplierWidth, "multiplier-width", 0, "Multiplier register width in qubits (0 = same as -width).")
	fs.BoolVar(&config.Subtract, "subtract", false, "Build the subtracting variant of the arithmetic operators.")
	fs.BoolVar(&config.Inverse, "inverse", false, "Build the inverse transform (qft operator only).")
	fs.BoolVar(&config.SkipQFT, "skip-qft", false, "Omit the Fourier bracketing around the arithmetic phase kicks.")
	fs.BoolVar(&config.Barriers, "barriers", false, "Insert barriers between logical circuit blocks.")
	fs.BoolVar(&config.Verify, "verify", false, "Verify the circuit by exhaustive basis-state simulation.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for building and verification.")
	fs.Int64Var(&config.MaxRepetitions, "max-repetitions", DefaultMaxRepetitions, "Cap on the multiplier's controlled additions (0 = no cap).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the circuit listing.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Print the full circuit listing (can be very long).")
	fs.BoolVar(&config.Debug, "debug", false, "Enable debug-level logging.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Operator = strings.ToLower(config.Operator)
	if err := config.Validate(availableOperators); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
