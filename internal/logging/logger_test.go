package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"hello-api/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.WithField("request_id", "abc").Info("Request completed")
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON log line: %v", err)
	}
	if entry["request_id"] != "abc" {
		t.Errorf("Expected request_id field, got %v", entry["request_id"])
	}
	if entry["msg"] != "Request completed" {
		t.Errorf("Expected msg field, got %v", entry["msg"])
	}
}

func TestNewLevels(t *testing.T) {
	if got := NewWithOutput(config.LoggingConfig{Level: "debug", Format: "text"}, &bytes.Buffer{}).GetLevel(); got != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", got)
	}
	if got := NewWithOutput(config.LoggingConfig{Level: "nonsense", Format: "json"}, &bytes.Buffer{}).GetLevel(); got != logrus.InfoLevel {
		t.Errorf("Expected info fallback, got %s", got)
	}
	if _, ok := NewWithOutput(config.LoggingConfig{Level: "info", Format: "text"}, &bytes.Buffer{}).Formatter.(*logrus.TextFormatter); !ok {
		t.Error("Expected text formatter")
	}
}
