// Package log builds the diagnostic logger used behind the CLI boundary.
//
// Diagnostics never share a stream with user-facing output unless the
// application wires them that way; the default logger discards everything.
package log

import (
	"io"
	"log/slog"
	"strings"
)

// EnvLevel names the environment variable that overrides the configured level.
const EnvLevel = "TYPEDCLI_LOG_LEVEL"

// ParseLevel maps a level name to a slog level.
// logic: default to INFO. If level is invalid, fallback to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
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

// New creates a logger writing to w. format is "json" or "text".
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// WithComponent returns a logger with the component field set.
func WithComponent(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With(slog.String("component", name))
}

// WithInvocation returns a logger with the invocation_id field set.
func WithInvocation(l *slog.Logger, id string) *slog.Logger {
	return l.With(slog.String("invocation_id", id))
}
