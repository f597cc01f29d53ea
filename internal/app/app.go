package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/quforge/quarith/internal/arith"
	"github.com/quforge/quarith/internal/cli"
	"github.com/quforge/quarith/internal/config"
	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/server"
	"github.com/quforge/quarith/internal/service"
	"github.com/quforge/quarith/internal/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application represents the quarith application instance.
// It encapsulates the configuration and provides methods to run
// the application in its modes (CLI build, HTTP server).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Registry provides access to the circuit builder implementations.
	Registry *arith.Registry
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	registry := arith.NewDefaultRegistry()
	availableOperators := registry.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "quarith"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableOperators)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Registry:  registry,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (server or CLI build).
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Standard CLI build mode
	return a.runBuild(ctx, out)
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Registry, a.Config, server.WithVersion(Version))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runBuild orchestrates the execution of the CLI build command.
func (a *Application) runBuild(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	// Skip verbose output in quiet and JSON modes
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	// Wire build progress to the terminal: the multiplier's repeated
	// controlled additions can take a while at larger widths.
	subject := arith.NewBuildSubject(a.Config.Operator)
	progressChan := make(chan arith.ProgressUpdate, 64)
	subject.Register(arith.NewChannelObserver(progressChan))
	subject.Register(arith.NewMetricsObserver())
	if a.Config.Debug {
		subject.Register(arith.NewLoggingObserver(log.Logger, 0.1))
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, progressOut)

	svc := service.NewBuildService(a.Registry).WithObservers(subject)
	result, err := svc.FromConfig(ctx, a.Config)

	close(progressChan)
	wg.Wait()

	if err != nil {
		return a.handleBuildError(result, err, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		JSONOutput: a.Config.JSONOutput,
	}
	if err := cli.DisplayBuildResult(out, result, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error displaying result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// handleBuildError reports a failed build. A result alongside the error
// means verification ran and found mismatches; the report is shown before
// returning the verification exit code.
func (a *Application) handleBuildError(result *service.BuildResult, err error, out io.Writer) int {
	if result != nil && result.Verification != nil && !result.Verification.OK() {
		outputCfg := cli.OutputConfig{Quiet: a.Config.Quiet, JSONOutput: a.Config.JSONOutput}
		if displayErr := cli.DisplayBuildResult(out, result, outputCfg); displayErr != nil {
			fmt.Fprintf(a.ErrWriter, "Error displaying result: %v\n", displayErr)
		}
		return apperrors.ExitErrorVerify
	}
	return apperrors.HandleBuildError(err, a.Config.Timeout, a.ErrWriter)
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
