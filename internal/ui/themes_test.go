package ui

import (
	"os"
	"testing"
)

// Theme tests mutate package state, so none of them run in parallel.

func TestInitThemeFlag(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	InitTheme(true)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("theme after InitTheme(true) = %q, want none", got)
	}
	if GetCurrentTheme().Error != "" {
		t.Error("no-color theme must not emit escape codes")
	}
}

func TestInitThemeEnvOverride(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("theme with NO_COLOR set = %q, want none", got)
	}
}

func TestInitThemeDefault(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	// InitTheme checks for presence, not value, so the variable must be
	// truly unset here. t.Setenv registers restoration of any prior value.
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	InitTheme(false)
	theme := GetCurrentTheme()
	if theme.Name != "dark" {
		t.Errorf("default theme = %q, want dark", theme.Name)
	}
	if theme.Success == "" || theme.Reset == "" {
		t.Error("dark theme must carry escape codes")
	}
}

func TestSetCurrentTheme(t *testing.T) {
	defer SetCurrentTheme(DarkTheme)

	SetCurrentTheme(LightTheme)
	if got := GetCurrentTheme().Name; got != "light" {
		t.Errorf("theme after SetCurrentTheme = %q, want light", got)
	}
}
