package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelDebug).WithComponent("storage")

	l.Warn("failed to parse stored tasks", "key", "focusflow_tasks")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "failed to parse stored tasks" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["component"] != "storage" {
		t.Errorf("component = %v, want storage", entry["component"])
	}
	if entry["key"] != "focusflow_tasks" {
		t.Errorf("key = %v, want focusflow_tasks", entry["key"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelWarn)

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected INFO to be filtered, got %s", buf.String())
	}
	l.Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected ERROR to be written, got %s", buf.String())
	}
}

func TestNewLoggerCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := NewLogger(dir, "info")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	l.Info("hello")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "INFO", "Warn", "ERROR"} {
		if !ValidLevel(lvl) {
			t.Errorf("ValidLevel(%q) = false", lvl)
		}
	}
	if ValidLevel("trace") {
		t.Error("ValidLevel(trace) = true")
	}
}
