package logging

import (
	"context"
	"fmt"
	"log/slog"
)

// PrintfLogger bridges slog to libraries that report through a
// printf-style callback, such as go-redis's SetLogger hook.
type PrintfLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewPrintfLogger creates a PrintfLogger emitting records at level.
// A nil logger falls back to slog.Default.
func NewPrintfLogger(logger *slog.Logger, level slog.Level) *PrintfLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrintfLogger{logger: logger, level: level}
}

// Printf formats the message and forwards it to the underlying
// handler at the configured level.
func (l *PrintfLogger) Printf(ctx context.Context, format string, v ...interface{}) {
	l.logger.Log(ctx, l.level, fmt.Sprintf(format, v...))
}
