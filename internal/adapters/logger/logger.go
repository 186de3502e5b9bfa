// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.drover.dev/drover/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	level  *slog.LevelVar
}

// New creates a new Logger writing human-readable output to stderr.
func New() *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{
		logger: slog.New(handler),
		level:  level,
	}
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l.level}))
}

// SetVerbose toggles debug-level output.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
}

func (l *Logger) log() *slog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logger
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log().Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.log().Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log().Warn(msg, args...)
}

// Error logs an error.
func (l *Logger) Error(err error, args ...any) {
	l.log().Error("operation failed", append([]any{"error", err}, args...)...)
}

// Metric records a named numeric observation as a structured log line.
func (l *Logger) Metric(name string, value float64, args ...any) {
	l.log().Info("metric", append([]any{"name", name, "value", value}, args...)...)
}
