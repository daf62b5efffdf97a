package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/garnizeh/portfolio/internal/logger"
)

func TestNewWithWriter_Production(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter("production", &buf)
	l.Info("hello", "key", "value")
	l.Debug("hidden")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "hello" || rec["key"] != "value" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestNewWithWriter_Development(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter("development", &buf)
	l.Debug("visible")

	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("expected text debug record, got %q", buf.String())
	}
}
