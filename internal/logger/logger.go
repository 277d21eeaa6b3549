// Package logger provides the logging contract used across the tracker and its slog-backed implementation.
package logger

import "log"

// ComponentKey is the attribute that names the component emitting a record.
const ComponentKey = "component"

// AppLogger is the logging contract shared by the core and the adapters.
type AppLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a logger that adds the key-value pairs to every record.
	With(args ...any) AppLogger

	// Component returns a logger that tags every record with ComponentKey=name.
	Component(name string) AppLogger

	// StdLogger returns a *log.Logger that writes through this logger at error level,
	// for libraries that only accept the standard logger.
	StdLogger() *log.Logger
}
