package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
)

// FileOptions enables a rotated JSON log file next to the stderr stream.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewJSONLogger logs to stderr so stdout stays reserved for command output.
func NewJSONLogger(service, level string, file FileOptions) *slog.Logger {
	return slog.New(newHandler(os.Stderr, level, file)).With("service", service)
}

func newHandler(console io.Writer, level string, file FileOptions) slog.Handler {
	out := console
	if strings.TrimSpace(file.Path) != "" {
		out = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    positiveOr(file.MaxSizeMB, 10),
			MaxBackups: positiveOr(file.MaxBackups, 5),
			MaxAge:     positiveOr(file.MaxAgeDays, 7),
			Compress:   true,
		})
	}
	return slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
}

func parseLevel(level string) slog.Level {
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

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
