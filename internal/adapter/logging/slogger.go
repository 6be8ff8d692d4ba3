package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"cayyap-notifier/internal/domain/ports"
)

// SLogger is an adapter around slog.Logger implementing ports.Logger.
// Records carry the invocation id and the active trace/span ids when present.
type SLogger struct {
	logger *slog.Logger
}

var _ ports.Logger = (*SLogger)(nil)

// New creates a new SLogger.
func New(logger *slog.Logger) *SLogger {
	return &SLogger{logger: logger}
}

// NewJSON builds a JSON slog.Logger writing to w at the named level.
func NewJSON(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Debug logs a debug message.
func (l *SLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *SLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning.
func (l *SLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *SLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args...)
}

func (l *SLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l.logger == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.logger.Enabled(ctx, level) {
		return
	}
	if id := ports.InvocationID(ctx); id != "" {
		args = append(args, slog.String("invocationId", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		args = append(args,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	l.logger.Log(ctx, level, msg, args...)
}
