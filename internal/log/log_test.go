package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriterText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelDebug})

	logger.Info("discovery finished", "count", 3)

	out := buf.String()
	if !strings.Contains(out, "discovery finished") {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, "count=3") {
		t.Errorf("output missing attribute: %s", out)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{JSON: true})

	logger.Info("discovery finished", "count", 3)

	if !strings.Contains(buf.String(), `"msg":"discovery finished"`) {
		t.Errorf("expected JSON record, got: %s", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelInfo})

	logger.Debug("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("warn record should pass at info level")
	}
}

func TestWithAddsContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{}).With("component", "catalog")

	logger.Info("cached")

	if !strings.Contains(buf.String(), "component=catalog") {
		t.Errorf("expected component attribute, got: %s", buf.String())
	}
}

func TestNewNopDiscards(t *testing.T) {
	t.Parallel()

	logger := NewNop()
	if logger == nil {
		t.Fatal("NewNop() returned nil")
	}
	logger.Error("discarded")
}
