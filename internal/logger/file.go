package logger

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileLogger writes log messages to a rotating file. The dashboard owns the
// terminal while it runs, so its diagnostics go to a file instead of stderr.
type FileLogger struct {
	out   *log.Logger
	sink  *lumberjack.Logger
	debug bool
}

// NewFileLogger creates a rotating file logger at path. Rotation keeps three
// 5 MB backups for two weeks. Debug messages are only written when
// HEARTH_DEBUG is set, matching the stderr logger.
func NewFileLogger(path string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}

	return &FileLogger{
		out:   log.New(sink, "", log.LstdFlags),
		sink:  sink,
		debug: debugEnabled(),
	}, nil
}

func (l *FileLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.out.Printf("DEBUG: "+format, args...)
	}
}

func (l *FileLogger) Info(format string, args ...interface{}) {
	l.out.Printf(format, args...)
}

func (l *FileLogger) Warn(format string, args ...interface{}) {
	l.out.Printf("WARN: "+format, args...)
}

func (l *FileLogger) Error(format string, args ...interface{}) {
	l.out.Printf("ERROR: "+format, args...)
}

// Close flushes and closes the underlying file.
func (l *FileLogger) Close() error {
	return l.sink.Close()
}
