// Package logging wraps charmbracelet/log with the level names used by the
// CLI, a process-wide default logger and context propagation.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default, swapped atomically
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel maps a level name to a log level. "warning" is accepted as an
// alias for "warn"; unknown names select info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := log.ParseLevel(name)
	if err != nil || name == "" {
		return log.InfoLevel
	}
	return parsed
}

// New creates a logger writing to stderr at level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at level. The language server
// logs through stderr so stdout stays free for protocol traffic.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{Level: ParseLevel(level)})
}

// NewInteractive creates the terminal logger of the CLI. At debug level it
// also reports timestamps and callers.
func NewInteractive(level string) *log.Logger {
	parsed := ParseLevel(level)
	debug := parsed == log.DebugLevel
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           parsed,
		ReportTimestamp: debug,
		ReportCaller:    debug,
		TimeFormat:      time.TimeOnly,
		Prefix:          "sharplint",
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

// SetDefault replaces the process-wide logger. Nil is ignored.
func SetDefault(logger *log.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
