// Package ui holds the terminal color themes shared by the CLI output,
// flag usage text and top-level error display. Presentation code reads the
// active theme instead of hard-coding escape sequences, so disabling color
// is a single switch.
package ui

import (
	"os"
	"sync"
)

// Theme groups the ANSI escape codes used when rendering build results,
// circuit listings and verification reports. An empty string for a field
// means no styling for that category.
type Theme struct {
	// Name identifies the theme.
	Name string
	// Primary styles flag names and operator identifiers.
	Primary string
	// Secondary styles de-emphasized detail such as default values.
	Secondary string
	// Success styles passed verification and completed builds.
	Success string
	// Warning styles section headings and caution messages.
	Warning string
	// Error styles failed verification and configuration errors.
	Error string
	// Info styles progress and informational lines.
	Info string
	// Bold and Underline are the text attribute codes.
	Bold      string
	Underline string
	// Reset clears all attributes.
	Reset string
}

// DarkTheme suits dark terminal backgrounds. Active by default.
var DarkTheme = Theme{
	Name:      "dark",
	Primary:   "\033[38;5;39m",
	Secondary: "\033[38;5;245m",
	Success:   "\033[38;5;82m",
	Warning:   "\033[38;5;220m",
	Error:     "\033[38;5;196m",
	Info:      "\033[38;5;141m",
	Bold:      "\033[1m",
	Underline: "\033[4m",
	Reset:     "\033[0m",
}

// LightTheme uses darker shades that stay readable on light backgrounds.
var LightTheme = Theme{
	Name:      "light",
	Primary:   "\033[38;5;27m",
	Secondary: "\033[38;5;240m",
	Success:   "\033[38;5;28m",
	Warning:   "\033[38;5;130m",
	Error:     "\033[38;5;124m",
	Info:      "\033[38;5;54m",
	Bold:      "\033[1m",
	Underline: "\033[4m",
	Reset:     "\033[0m",
}

// NoColorTheme leaves every field empty, producing plain text. Selected by
// the -no-color flag or the NO_COLOR environment variable.
var NoColorTheme = Theme{Name: "none"}

var (
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme. Safe for concurrent use.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the active theme from the noColor flag and the
// NO_COLOR environment variable (https://no-color.org/). The flag wins;
// otherwise a set NO_COLOR disables color. The default is the dark theme.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
