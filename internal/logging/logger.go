// Package logging wraps charmbracelet/log: level names, a process-wide
// default logger, and loggers carried through a context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide default, swapped by --debug and tests.
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel maps a level name to a log level, ignoring case. "warning" is
// accepted for warn; anything unknown is info.
func ParseLevel(name string) log.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// New returns a stderr logger at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at level. Debug loggers also
// report the calling file and line.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	parsed := ParseLevel(level)
	return log.NewWithOptions(w, log.Options{
		Level:        parsed,
		ReportCaller: parsed == log.DebugLevel,
	})
}

// Default returns the process-wide logger, creating an info-level stderr
// logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
