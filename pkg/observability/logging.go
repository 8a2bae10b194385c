package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Logger is a structured logger for trellis components
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new structured logger writing JSON to w.
// A nil writer discards everything; the terminal belongs to the UI.
func NewLogger(component string, level slog.Level, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(w, opts)

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "trellis"),
	)

	return &Logger{Logger: logger}
}

// Nop returns a logger that discards all output.
func Nop() *Logger {
	return NewLogger("nop", slog.LevelError, io.Discard)
}

// ParseLevel maps a config level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithContext returns a logger carrying the trace and span ids of ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	logger := l.Logger

	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		logger = logger.With(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}

	return &Logger{Logger: logger}
}

// WithSession returns a logger with session-specific fields
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("session_id", sessionID),
		),
	}
}

// WithWidget returns a logger with widget-specific fields
func (l *Logger) WithWidget(id, class string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("widget_id", id),
			slog.String("widget_class", class),
		),
	}
}

// InputDropped logs an input event a widget refused
func (l *Logger) InputDropped(widget, event, reason string) {
	l.Debug("input dropped",
		slog.String("widget", widget),
		slog.String("event", event),
		slog.String("reason", reason),
	)
}

// BackendStarted logs backend initialization
func (l *Logger) BackendStarted(kind string, width, height int) {
	l.Info("backend started",
		slog.String("backend", kind),
		slog.Int("width", width),
		slog.Int("height", height),
	)
}

// Resized logs a terminal resize
func (l *Logger) Resized(width, height int) {
	l.Debug("resized",
		slog.Int("width", width),
		slog.Int("height", height),
	)
}

// FocusChanged logs a focus transfer between widgets
func (l *Logger) FocusChanged(from, to string) {
	l.Debug("focus changed",
		slog.String("from", from),
		slog.String("to", to),
	)
}
