// SPDX-License-Identifier: MIT

// Package logging builds the structured slog logger used by the eigenface
// command, with optional size-based file rotation.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes logger construction.
type Config struct {
	Service    string
	Module     string
	Level      string    // debug | info | warn | error; anything else is info
	Format     string    // json | text; anything else is json
	File       string    // rotated log file; empty writes to Writer
	MaxSize    int       // megabytes before rotation
	MaxBackups int       // rotated files kept
	MaxAge     int       // days a rotated file is kept
	Compress   bool      // gzip rotated files
	Writer     io.Writer // destination when File is empty; nil means stderr
}

// Logger wraps *slog.Logger with the closer of its file output.
type Logger struct {
	*slog.Logger
	Service string
	Module  string

	closer io.Closer
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// New builds a Logger from cfg. Every record carries service and module
// attributes and its time under the "timestamp" key.
func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var (
		out    io.Writer = cfg.Writer
		closer io.Closer
	)
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		out, closer = lj, lj
	} else if out == nil {
		out = os.Stderr
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return &Logger{
		Logger: slog.New(handler).With(
			slog.String("service", cfg.Service),
			slog.String("module", cfg.Module),
		),
		Service: cfg.Service,
		Module:  cfg.Module,
		closer:  closer,
	}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}

// LogDuration logs "<operation> finished" at info with the elapsed time when
// the returned func runs. Typical use: defer l.LogDuration(ctx, "train")().
func (l *Logger) LogDuration(ctx context.Context, operation string, args ...any) func() {
	start := time.Now()
	return func() {
		logArgs := append(args, "duration", time.Since(start))
		l.InfoContext(ctx, fmt.Sprintf("%s finished", operation), logArgs...)
	}
}
