package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// default logger instance
var defaultLogger atomic.Pointer[slog.Logger]

// initializes the logger based on environment
func init() {
	Setup(os.Getenv("ENVIRONMENT"), nil)
}

// Setup replaces the default logger. production writes JSON at INFO to
// stdout; any other environment writes text at DEBUG to stderr. A non-nil w
// overrides the destination.
func Setup(env string, w io.Writer) *slog.Logger {
	var handler slog.Handler

	if env == "production" {
		if w == nil {
			w = os.Stdout
		}

		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		if w == nil {
			w = os.Stderr
		}

		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	l := slog.New(handler)
	defaultLogger.Store(l)

	return l
}

// returns the default logger instance
func Default() *slog.Logger {
	return defaultLogger.Load()
}

// creates a logger with additional context fields
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// returns the logger carried by ctx, or the default one
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return Default()
}

// adds logger to context
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// helper type for context key
type loggerKey struct{}

// logs a debug message
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// logs an info message
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// logs an error under the "error" key. values implementing slog.LogValuer
// (normalized service errors) expand into their structured form
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, slog.Any("error", err))
	Default().Error(msg, args...)
}

// logs a fatal error and exits (for CLI tools)
func Fatal(msg string, args ...any) {
	Default().Error(msg, args...)
	os.Exit(1)
}

// logs a fatal error with error and exits (for CLI tools)
func FatalErr(err error, msg string, args ...any) {
	ErrorErr(err, msg, args...)
	os.Exit(1)
}
