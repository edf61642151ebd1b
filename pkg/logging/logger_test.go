package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to unmarshal log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" info ", InfoLevel},
		{"Warning", WarnLevel},
		{"warn", WarnLevel},
		{"ERROR", ErrorLevel},
		{"invalid", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if Level(42).String() != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN, got %s", Level(42).String())
	}
	if WarnLevel.String() != "WARN" {
		t.Errorf("Expected WARN, got %s", WarnLevel.String())
	}
}

func TestCorrelationFields(t *testing.T) {
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{Stage("similarity"), "stage", "similarity"},
		{AlertCount(16), "alerts", 16},
		{CommunityID(3), "community", 3},
		{Pattern("one-to-many"), "pattern", "one-to-many"},
		{Certainty(0.5), "certainty", 0.5},
		{CliqueSize(15), "k", 15},
		{Duration("timeout", 5 * time.Second), "timeout", "5s"},
		{Error(errors.New("boom")), "error", "boom"},
		{Error(nil), "error", nil},
	}

	for _, tt := range tests {
		if tt.field.Key != tt.key || tt.field.Value != tt.value {
			t.Errorf("Field = %+v, want {%s %v}", tt.field, tt.key, tt.value)
		}
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	entries := decodeEntries(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Unexpected levels %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("correlator"), Threshold(0.25))

	child.Info("run complete", CommunityCount(2))
	logger.SetLevel(ErrorLevel)
	child.Info("suppressed")

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].Fields
	if fields["component"] != "correlator" {
		t.Errorf("component = %v, want correlator", fields["component"])
	}
	if fields["threshold"] != 0.25 {
		t.Errorf("threshold = %v, want 0.25", fields["threshold"])
	}
	if fields["communities"] != float64(2) {
		t.Errorf("communities = %v, want 2", fields["communities"])
	}
	if child.GetLevel() != ErrorLevel {
		t.Errorf("Child level = %v, want ErrorLevel", child.GetLevel())
	}
}

func TestJSONLogger_NoFieldsOmitted(t *testing.T) {
	var buf bytes.Buffer
	NewJSONLogger(&buf, InfoLevel).Info("bare")

	if strings.Contains(buf.String(), "fields") {
		t.Errorf("Expected fields to be omitted, got %s", buf.String())
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	timer := StartTimer(logger, "stage finished", Stage("cliques"))
	elapsed := timer.End(CliqueCount(4))
	if elapsed < 0 {
		t.Errorf("Expected non-negative duration, got %v", elapsed)
	}

	StartTimer(logger, "stage failed", Stage("flow")).EndError(errors.New("boom"))

	entries := decodeEntries(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "DEBUG" || entries[0].Fields["cliques"] != float64(4) {
		t.Errorf("Unexpected first entry %+v", entries[0])
	}
	if _, ok := entries[0].Fields["latency"]; !ok {
		t.Error("Expected latency field")
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "boom" {
		t.Errorf("Unexpected second entry %+v", entries[1])
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("ignored")
	if logger.With(Stage("x")) == nil {
		t.Error("With should return a logger")
	}
}

func TestNewLeveledLogger(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("LOG_LEVEL", "warn")
	if got := NewLeveledLogger(&buf, "").GetLevel(); got != WarnLevel {
		t.Errorf("Expected LOG_LEVEL to apply, got %s", got)
	}
	if got := NewLeveledLogger(&buf, "debug").GetLevel(); got != DebugLevel {
		t.Errorf("Expected explicit level to win, got %s", got)
	}
}
