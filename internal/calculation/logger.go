package calculation

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level; anything else is info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// StdLogger writes leveled lines through the standard log package.
type StdLogger struct {
	l     *log.Logger
	level Level
}

// NewStdLogger creates a logger writing to w with the given prefix and minimum level.
func NewStdLogger(w io.Writer, prefix string, level Level) *StdLogger {
	return &StdLogger{l: log.New(w, prefix, log.LstdFlags), level: level}
}

func (s *StdLogger) logf(level Level, tag, format string, args ...any) {
	if level < s.level {
		return
	}
	s.l.Print(tag + " " + fmt.Sprintf(format, args...))
}

func (s *StdLogger) Debugf(format string, args ...any) { s.logf(LevelDebug, "DEBUG", format, args...) }
func (s *StdLogger) Infof(format string, args ...any)  { s.logf(LevelInfo, "INFO", format, args...) }
func (s *StdLogger) Warnf(format string, args ...any)  { s.logf(LevelWarn, "WARN", format, args...) }
func (s *StdLogger) Errorf(format string, args ...any) { s.logf(LevelError, "ERROR", format, args...) }
