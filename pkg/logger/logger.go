// Package logger provides the small structured logger shared by every component.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Logger is the logging interface used across the application.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type writerLogger struct {
	mu        *sync.Mutex
	w         io.Writer
	component string
	now       func() time.Time
}

// NewWriterLogger builds a logger that writes one line per entry to w.
// Executor output goroutines may log concurrently, so writes are serialized.
func NewWriterLogger(w io.Writer) Logger {
	return writerLogger{mu: &sync.Mutex{}, w: w, now: time.Now}
}

// Named returns a logger that tags every line with component. Loggers that are
// not produced by NewWriterLogger are returned unchanged.
func Named(l Logger, component string) Logger {
	wl, ok := l.(writerLogger)
	if !ok {
		return l
	}
	wl.component = component
	return wl
}

func (l writerLogger) write(level, msg string, obj any) {
	if l.w == nil {
		return
	}

	head := fmt.Sprintf("%s %-5s", l.now().Format(time.RFC3339), level)
	if l.component != "" {
		head += " [" + l.component + "]"
	}

	line := head + " " + msg
	if obj != nil {
		if b, err := json.Marshal(obj); err != nil {
			line += fmt.Sprintf(" obj=%q", fmt.Sprintf("%+v", obj))
		} else {
			line += " obj=" + string(b)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.w, line)
}

func (l writerLogger) Info(msg string, obj any)  { l.write("INFO", msg, obj) }
func (l writerLogger) Warn(msg string, obj any)  { l.write("WARN", msg, obj) }
func (l writerLogger) Debug(msg string, obj any) { l.write("DEBUG", msg, obj) }
func (l writerLogger) Error(msg string, obj any) { l.write("ERROR", msg, obj) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf is a format-style variant of Debug.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...), nil)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
