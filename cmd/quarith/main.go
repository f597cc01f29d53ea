// Command quarith builds quantum Fourier transform arithmetic circuits:
// the QFT itself, Draper-style adders and subtractors, and
// repeated-controlled-addition multipliers. It runs either as a one-shot
// CLI build or as an HTTP server exposing the same operators.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quforge/quarith/internal/app"
	apperrors "github.com/quforge/quarith/internal/errors"
)

func main() {
	os.Exit(run())
}

// run contains the application logic, separated from main so deferred
// cleanup runs before os.Exit.
func run() int {
	// Handle --version in any position before flag parsing
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}

	// Console-friendly logging on stderr; builders log through the global logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
