// Package logger is the logging contract shared across hearth.
//
// Packages take a Logger in their config rather than writing to stderr
// themselves, so the CLI can route diagnostics wherever the command runs:
// stderr for one-shot commands, a session file while the dashboard owns
// the terminal, or nowhere at all.
package logger

import (
	"fmt"
	"log"
	"os"
)

// DebugEnv enables debug output for every logger in the process when set
// to any non-empty value.
const DebugEnv = "HEARTH_DEBUG"

// Logger accepts printf-style messages at four severities.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

func debugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// envLogger writes to stderr through the standard log package. Each line
// carries the subsystem prefix and a severity tag; info stays untagged so
// routine output reads clean.
type envLogger struct {
	prefix string
	debug  bool
}

// NewEnvLogger returns a stderr logger for one subsystem. The prefix is a
// bracketed name like "[api]" and leads every line. Debug lines are
// dropped unless HEARTH_DEBUG was set when the logger was built.
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix, debug: debugEnabled()}
}

func (l *envLogger) line(tag, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if tag != "" {
		msg = tag + ": " + msg
	}
	if l.prefix != "" {
		msg = l.prefix + " " + msg
	}
	log.Print(msg)
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.line("DEBUG", format, args...)
}

func (l *envLogger) Info(format string, args ...interface{})  { l.line("", format, args...) }
func (l *envLogger) Warn(format string, args ...interface{})  { l.line("WARN", format, args...) }
func (l *envLogger) Error(format string, args ...interface{}) { l.line("ERROR", format, args...) }

type noop struct{}

// Noop returns a Logger that discards everything. It is the fallback for
// components built without a logger of their own.
func Noop() Logger { return noop{} }

func (noop) Debug(string, ...interface{}) {}
func (noop) Info(string, ...interface{})  {}
func (noop) Warn(string, ...interface{})  {}
func (noop) Error(string, ...interface{}) {}

// Entry is one message captured by a BufferLogger.
type Entry struct {
	Level   string
	Message string
}

// BufferLogger records messages in memory. Tests hand one to the code
// under test and assert on what it logged.
type BufferLogger struct {
	Entries []Entry
}

// NewBufferLogger returns an empty BufferLogger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (b *BufferLogger) record(level, format string, args ...interface{}) {
	b.Entries = append(b.Entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (b *BufferLogger) Debug(format string, args ...interface{}) { b.record("debug", format, args...) }
func (b *BufferLogger) Info(format string, args ...interface{})  { b.record("info", format, args...) }
func (b *BufferLogger) Warn(format string, args ...interface{})  { b.record("warn", format, args...) }
func (b *BufferLogger) Error(format string, args ...interface{}) { b.record("error", format, args...) }

// At returns every message recorded at the given level, oldest first.
func (b *BufferLogger) At(level string) []string {
	var msgs []string
	for _, e := range b.Entries {
		if e.Level == level {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// HasLevel reports whether at least one message was recorded at the level.
func (b *BufferLogger) HasLevel(level string) bool {
	return len(b.At(level)) > 0
}

// Clear drops everything recorded so far.
func (b *BufferLogger) Clear() {
	b.Entries = nil
}

// std is the process-wide logger, swapped out by SetDefault.
var std Logger = NewEnvLogger("")

// Default returns the process-wide logger: stderr output, no prefix.
func Default() Logger {
	return std
}

// SetDefault replaces the process-wide logger. Tests use it to capture or
// silence output from code that does not take a Logger of its own.
func SetDefault(l Logger) {
	std = l
}
