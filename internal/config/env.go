// Package config provides the configuration management for the quarith
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int64, or the default value if not set
// or invalid.
func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - QUARITH_OP: Operator to build (string: qft, adder, multiplier)
//   - QUARITH_WIDTH: Primary operand width in qubits (int)
//   - QUARITH_MULTIPLIER_WIDTH: Multiplier register width in qubits (int)
//   - QUARITH_TIMEOUT: Build-and-verify timeout (duration: "2m", "30s")
//   - QUARITH_MAX_REPETITIONS: Multiplier repetition cap (int64)
//   - QUARITH_PORT: Port for server mode (string)
//   - QUARITH_SERVER: Enable server mode (bool: true/false, 1/0, yes/no)
//   - QUARITH_SUBTRACT: Build the subtracting variant (bool)
//   - QUARITH_INVERSE: Build the inverse transform (bool)
//   - QUARITH_SKIP_QFT: Omit Fourier bracketing (bool)
//   - QUARITH_BARRIERS: Insert barriers between blocks (bool)
//   - QUARITH_VERIFY: Verify by exhaustive simulation (bool)
//   - QUARITH_JSON: Enable JSON output (bool)
//   - QUARITH_VERBOSE: Print the full circuit listing (bool)
//   - QUARITH_QUIET: Enable quiet mode (bool)
//   - QUARITH_NO_COLOR: Disable colored output (bool)
//   - QUARITH_DEBUG: Enable debug logging (bool)
//   - QUARITH_OUTPUT: Output file path (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "width") {
		config.Width = getEnvInt("WIDTH", config.Width)
	}
	if !isFlagSet(fs, "multiplier-width") {
		config.MultiplierWidth = getEnvInt("MULTIPLIER_WIDTH", config.MultiplierWidth)
	}
	if !isFlagSet(fs, "max-repetitions") {
		config.MaxRepetitions = getEnvInt64("MAX_REPETITIONS", config.MaxRepetitions)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "op") {
		config.Operator = getEnvString("OP", config.Operator)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "subtract") {
		config.Subtract = getEnvBool("SUBTRACT", config.Subtract)
	}
	if !isFlagSet(fs, "inverse") {
		config.Inverse = getEnvBool("INVERSE", config.Inverse)
	}
	if !isFlagSet(fs, "skip-qft") {
		config.SkipQFT = getEnvBool("SKIP_QFT", config.SkipQFT)
	}
	if !isFlagSet(fs, "barriers") {
		config.Barriers = getEnvBool("BARRIERS", config.Barriers)
	}
	if !isFlagSet(fs, "verify") {
		config.Verify = getEnvBool("VERIFY", config.Verify)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "debug") {
		config.Debug = getEnvBool("DEBUG", config.Debug)
	}
}
