package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// ParseLevel maps a config string to a Level. Unknown strings mean INFO.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return DEBUG
	case "warn", "WARN":
		return WARN
	case "error", "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Options configures a Logger.
type Options struct {
	Level Level
	// Sink receives JSON log lines. Defaults to os.Stderr.
	Sink io.Writer
	// RedactPII masks email addresses in field values.
	RedactPII bool
}

// Logger provides structured JSON logging with optional PII redaction.
// Loggers are constructed explicitly and passed down; there is no
// process-wide singleton.
type Logger struct {
	level     Level
	mu        sync.Mutex
	sink      io.Writer
	redactPII bool
}

// New creates a Logger from the given options.
func New(opts Options) *Logger {
	sink := opts.Sink
	if sink == nil {
		sink = os.Stderr
	}
	return &Logger{level: opts.Level, sink: sink, redactPII: opts.RedactPII}
}

// Debug emits a DEBUG-level structured log entry.
func (l *Logger) Debug(msg string, fields ...interface{}) { l.log(DEBUG, msg, fields...) }

// Info emits an INFO-level structured log entry.
func (l *Logger) Info(msg string, fields ...interface{}) { l.log(INFO, msg, fields...) }

// Warn emits a WARN-level structured log entry.
func (l *Logger) Warn(msg string, fields ...interface{}) { l.log(WARN, msg, fields...) }

// Error emits an ERROR-level structured log entry.
func (l *Logger) Error(msg string, fields ...interface{}) { l.log(ERROR, msg, fields...) }

func (l *Logger) log(level Level, msg string, fields ...interface{}) {
	if level < l.level {
		return
	}

	entry := map[string]interface{}{
		"time":  time.Now().UTC().Format(time.RFC3339),
		"level": levelNames[level],
		"msg":   msg,
	}

	// Parse key-value pairs from fields
	for i := 0; i < len(fields)-1; i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		val := fmt.Sprintf("%v", fields[i+1])
		if l.redactPII {
			val = redactPIIValue(key, val)
		}
		entry[key] = val
	}

	data, _ := json.Marshal(entry)
	l.mu.Lock()
	fmt.Fprintln(l.sink, string(data))
	l.mu.Unlock()
}
