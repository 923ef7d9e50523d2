// Package logging wraps log/slog with the JSON handler and helpers used
// across the service.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	logger *slog.Logger
}

type Option func(*options)

type options struct {
	writer  io.Writer
	service string
}

// WithWriter redirects output, os.Stdout by default.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithService tags every record with a service attribute.
func WithService(name string) Option {
	return func(o *options) {
		o.service = strings.TrimSpace(name)
	}
}

func New(level string, opts ...Option) *Logger {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	writer := cfg.writer
	if writer == nil {
		writer = os.Stdout
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: ParseLevel(level)})
	logger := slog.New(handler)
	if cfg.service != "" {
		logger = logger.With("service", cfg.service)
	}

	return &Logger{logger: logger}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New("error", WithWriter(io.Discard))
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Log(context.Background(), level, msg, args...)
}

// SetDefault makes l the process-wide slog default.
func (l *Logger) SetDefault() {
	if l == nil || l.logger == nil {
		return
	}
	slog.SetDefault(l.logger)
}

// AttachError appends an "error" attribute when err is non-nil.
func AttachError(err error, args ...any) []any {
	if err == nil {
		return args
	}
	return append(args, "error", err.Error())
}
