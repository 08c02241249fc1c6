package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level orders log severities from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL string to a Level, defaulting to info.
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

// Logger provides leveled logging throughout the application.
type Logger struct {
	level Level
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
}

// NewLogger creates a Logger writing info/warn/debug to stdout and errors to stderr.
func NewLogger() *Logger {
	return newLogger(os.Stdout, os.Stderr, LevelInfo)
}

// NewLoggerWithOutput creates a Logger writing info/warn/debug to out and errors to errOut.
func NewLoggerWithOutput(out, errOut io.Writer) *Logger {
	return newLogger(out, errOut, LevelInfo)
}

// NewNopLogger returns a Logger that discards everything. Used by tests.
func NewNopLogger() *Logger {
	return newLogger(io.Discard, io.Discard, LevelError+1)
}

func newLogger(out, errOut io.Writer, level Level) *Logger {
	return &Logger{
		level: level,
		info:  log.New(out, "", 0),
		warn:  log.New(out, "", 0),
		err:   log.New(errOut, "", 0),
		debug: log.New(out, "", 0),
	}
}

// SetLevel changes the minimum level that is emitted.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) emit(level Level, dst *log.Logger, tag, format string, args ...any) {
	if level < l.level {
		return
	}
	dst.Print(fmt.Sprintf("[%s] %s %s", l.timestamp(), tag, fmt.Sprintf(format, args...)))
}

func (l *Logger) Info(format string, args ...any) {
	l.emit(LevelInfo, l.info, "\033[32mINFO\033[0m ", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.emit(LevelWarn, l.warn, "\033[33mWARN\033[0m ", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.emit(LevelError, l.err, "\033[31mERROR\033[0m", format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.emit(LevelDebug, l.debug, "\033[36mDEBUG\033[0m", format, args...)
}
