package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPrintfLogger_FormatsAndForwards(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	l := NewPrintfLogger(logger, slog.LevelWarn)
	l.Printf(context.Background(), "redis: connection to %s failed after %d attempts", "localhost:6379", 3)

	out := buf.String()
	if !strings.Contains(out, "connection to localhost:6379 failed after 3 attempts") {
		t.Errorf("output missing formatted message: %q", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("output missing configured level: %q", out)
	}
}

func TestPrintfLogger_LevelFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	l := NewPrintfLogger(logger, slog.LevelDebug)
	l.Printf(context.Background(), "noise")

	if buf.Len() != 0 {
		t.Errorf("debug record escaped a warn-level handler: %q", buf.String())
	}
}

func TestNewPrintfLogger_NilLogger(t *testing.T) {
	l := NewPrintfLogger(nil, slog.LevelInfo)
	if l == nil || l.logger == nil {
		t.Fatal("nil logger should fall back to slog.Default")
	}
}
