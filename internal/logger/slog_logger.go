package logger

import (
	"log"
	"log/slog"
)

type slogLogger struct {
	base *slog.Logger
}

// FromSlog wraps l as an AppLogger. A nil l falls back to slog.Default().
func FromSlog(l *slog.Logger) AppLogger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{base: l}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.base.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.base.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.base.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.base.Error(msg, args...) }

func (s *slogLogger) With(args ...any) AppLogger {
	return &slogLogger{base: s.base.With(args...)}
}

func (s *slogLogger) Component(name string) AppLogger {
	return s.With(ComponentKey, name)
}

func (s *slogLogger) StdLogger() *log.Logger {
	return slog.NewLogLogger(s.base.Handler(), slog.LevelError)
}
