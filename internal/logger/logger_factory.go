package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"transfer_tracker/internal/config"
)

// NewAppLogger creates a stdout AppLogger with the configured level and format
// and installs it as the slog default.
func NewAppLogger(cfg config.LoggerConfig) (AppLogger, error) {
	slogLogger, err := newSlogLogger(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slogLogger)
	return FromSlog(slogLogger), nil
}

// NewAppLoggerWithWriter creates an AppLogger writing to out. The slog default is left untouched.
func NewAppLoggerWithWriter(cfg config.LoggerConfig, out io.Writer) (AppLogger, error) {
	slogLogger, err := newSlogLogger(cfg, out)
	if err != nil {
		return nil, err
	}
	return FromSlog(slogLogger), nil
}

func newSlogLogger(cfg config.LoggerConfig, out io.Writer) (*slog.Logger, error) {
	level, err := toSlogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	handler, err := toSlogHandler(cfg.Format, out, &slog.HandlerOptions{Level: level})
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}
	return slog.New(handler), nil
}

// toSlogLevel converts a config.LogLevel to a slog.Level.
func toSlogLevel(level config.LogLevel) (slog.Level, error) {
	switch config.LogLevel(strings.ToLower(string(level))) {
	case config.LogLevelDebug:
		return slog.LevelDebug, nil
	case config.LogLevelInfo:
		return slog.LevelInfo, nil
	case config.LogLevelWarn:
		return slog.LevelWarn, nil
	case config.LogLevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported logger level: %s", level)
	}
}

// toSlogHandler creates a slog.Handler based on the config.LogFormat.
func toSlogHandler(format config.LogFormat, out io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch config.LogFormat(strings.ToLower(string(format))) {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(out, opts), nil
	case config.LogFormatText:
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
