// Package logging provides leveled, structured logging with per-component
// loggers. Output is one JSON object per line so log collectors can ingest
// it without extra parsing.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "unknown"
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stdout
	minLevel           = LevelInfo
)

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum level that will be written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// Logger writes structured entries tagged with a component name.
type Logger struct {
	component string
}

// NewLogger creates a logger for the named component.
func NewLogger(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) log(level Level, msg string, fields Fields) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel {
		return
	}

	entry := make(map[string]interface{}, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["component"] = l.component
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		// Unmarshalable field value; drop the fields rather than the entry.
		data, _ = json.Marshal(map[string]interface{}{
			"ts":        time.Now().Format(time.RFC3339Nano),
			"level":     level.String(),
			"component": l.component,
			"msg":       msg,
		})
	}

	output.Write(append(data, '\n'))
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields Fields) { l.log(LevelDebug, msg, fields) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields Fields) { l.log(LevelInfo, msg, fields) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields Fields) { l.log(LevelError, msg, fields) }

// Fatal logs at fatal level and exits the process.
func (l *Logger) Fatal(msg string, fields Fields) {
	l.log(LevelFatal, msg, fields)
	os.Exit(1)
}
