// Package logging adapts log/slog to the application Logger interface
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/andrescamacho/colony-go/internal/infrastructure/config"
)

// SlogLogger writes application log records through a slog.Logger
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// NewSlogLogger wraps an existing slog.Logger
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// New builds a logger from configuration. Close releases the log file when
// output is "file".
func New(cfg config.LoggingConfig) (*SlogLogger, error) {
	var (
		out    io.Writer
		closer io.Closer
	)
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	l := NewWriterLogger(out, cfg.Format, ParseLevel(cfg.Level))
	l.closer = closer
	return l, nil
}

// NewWriterLogger logs to w in "json" or "text" format
func NewWriterLogger(w io.Writer, format string, level slog.Level) *SlogLogger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return NewSlogLogger(slog.New(handler))
}

// ParseLevel maps config and application level names onto slog levels.
// Unknown names log at info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log implements the application Logger
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}
	l.logger.LogAttrs(context.Background(), ParseLevel(level), message, attrs...)
}

// Slog exposes the underlying logger for code outside the mediator pipeline
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
