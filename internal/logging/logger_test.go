package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", line, err)
	}
	return entry
}

func TestNewLoggerComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "builder")
	logger.Info("circuit ready")

	entry := decodeLine(t, &buf)
	if entry["component"] != "builder" {
		t.Errorf("component = %v, want builder", entry["component"])
	}
	if entry["message"] != "circuit ready" {
		t.Errorf("message = %v, want circuit ready", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a timestamp field")
	}
}

func TestLoggerFieldTypes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Info("build finished",
		String("operator", "adder"),
		Int("width", 3),
		Uint64("gates", 12),
		Float64("progress", 0.5),
		Field{Key: "verified", Value: true},
	)

	entry := decodeLine(t, &buf)
	if entry["operator"] != "adder" {
		t.Errorf("operator = %v, want adder", entry["operator"])
	}
	if entry["width"] != float64(3) {
		t.Errorf("width = %v, want 3", entry["width"])
	}
	if entry["gates"] != float64(12) {
		t.Errorf("gates = %v, want 12", entry["gates"])
	}
	if entry["progress"] != 0.5 {
		t.Errorf("progress = %v, want 0.5", entry["progress"])
	}
	if entry["verified"] != true {
		t.Errorf("verified = %v, want true", entry["verified"])
	}
}

func TestLoggerError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Error("build failed", errors.New("width out of range"))

	entry := decodeLine(t, &buf)
	if entry["level"] != "error" {
		t.Errorf("level = %v, want error", entry["level"])
	}
	if entry["error"] != "width out of range" {
		t.Errorf("error = %v, want width out of range", entry["error"])
	}
}

func TestLoggerErrField(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Info("partial result", Err(errors.New("truncated")))

	entry := decodeLine(t, &buf)
	if entry["error"] != "truncated" {
		t.Errorf("error = %v, want truncated", entry["error"])
	}
}

func TestLoggerPrintf(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Printf("built %d gates in %s", 7, "3ms")

	entry := decodeLine(t, &buf)
	if entry["message"] != "built 7 gates in 3ms" {
		t.Errorf("message = %v, want built 7 gates in 3ms", entry["message"])
	}
}
