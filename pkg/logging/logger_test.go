package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel}, // Default
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Error("Messages below the configured level should be suppressed")
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Error("Messages at or above the configured level should be written")
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("network layout complete",
		Pipeline("network"),
		Count(12),
		Error(errors.New("boom")),
	)

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if entry.Level != "INFO" || entry.Message != "network layout complete" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if entry.Fields["pipeline"] != "network" {
		t.Errorf("pipeline field = %v, want network", entry.Fields["pipeline"])
	}
	if entry.Fields["count"] != float64(12) {
		t.Errorf("count field = %v, want 12", entry.Fields["count"])
	}
	if entry.Fields["error"] != "boom" {
		t.Errorf("error field = %v, want boom", entry.Fields["error"])
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(RunID("abc-123"))
	child.Info("scored records")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Fields["run_id"] != "abc-123" {
		t.Errorf("Pre-set field missing: %+v", entry.Fields)
	}
}
