package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("levels below warn leaked through: %q", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("warn/error missing: %q", output)
	}
}

func TestKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Info("Run completed", "run_id", "abc", "overall", "stable")

	output := buf.String()
	if !strings.Contains(output, "run_id=abc") || !strings.Contains(output, "overall=stable") {
		t.Errorf("key/value pairs missing: %q", output)
	}
}

func TestErrorAppendsCause(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "error")

	log.Error("Fetch failed", errors.New("connection refused"), "indicator", "dxy")

	output := buf.String()
	if !strings.Contains(output, "error=connection refused") {
		t.Errorf("error cause missing: %q", output)
	}
	if !strings.Contains(output, "indicator=dxy") {
		t.Errorf("context pairs missing: %q", output)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "verbose")

	log.Debug("hidden")
	log.Info("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug shown at default level: %q", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("info hidden at default level: %q", output)
	}
}
