// Package logger configures the process-wide slog logger. Console output
// uses tint for colorized logs when attached to a terminal, otherwise JSON.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/servly-inc/servly/internal/shared/config"
)

var (
	defaultLogger *slog.Logger
	atomicLevel   *slog.LevelVar
)

// Init builds the global logger from configuration. Safe to call once at startup.
func Init(cfg *config.LoggerConfig) error {
	atomicLevel = new(slog.LevelVar)
	atomicLevel.Set(parseLevel(cfg.Level))

	var writer io.Writer
	switch strings.ToLower(cfg.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writer = file
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: atomicLevel})
	} else {
		isTTY := false
		if f, ok := writer.(*os.File); ok {
			isTTY = term.IsTerminal(int(f.Fd()))
		}
		handler = tint.NewHandler(writer, &tint.Options{
			Level:      atomicLevel,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTTY,
		})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

// Get returns the configured logger, falling back to slog's default.
func Get() *slog.Logger {
	if defaultLogger == nil {
		return slog.Default()
	}
	return defaultLogger
}

// Debug logs at debug level using the global logger.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs at info level using the global logger.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs at warn level using the global logger.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs at error level using the global logger.
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// SetLevel adjusts the log level at runtime.
func SetLevel(level string) {
	if atomicLevel != nil {
		atomicLevel.Set(parseLevel(level))
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
