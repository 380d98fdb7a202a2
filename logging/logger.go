// Package logging provides the structured JSON logger shared by the signup
// server and the WASM bundle.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
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
	FATAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configured level name onto a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", name)
	}
}

// Entry represents a single log entry with structured fields.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Category  string         `json:"category"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Duration  *int64         `json:"duration_ms,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Logger writes JSON lines to its writers and fans entries out to subscribers.
type Logger struct {
	mu          sync.RWMutex
	minLevel    Level
	writers     []io.Writer
	component   string
	subscribers []chan<- Entry
	now         func() time.Time
}

// New creates a Logger for the named component.
func New(component string, minLevel Level, writers ...io.Writer) *Logger {
	return &Logger{
		minLevel:  minLevel,
		writers:   writers,
		component: component,
		now:       time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New("discard", FATAL+1)
}

// Component returns the name the logger was created with.
func (l *Logger) Component() string {
	return l.component
}

// Subscribe adds a channel to receive log entries in real-time.
func (l *Logger) Subscribe(ch chan<- Entry) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, ch)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, sub := range l.subscribers {
			if sub == ch {
				l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
				break
			}
		}
	}
}

// Log writes a log entry at the specified level.
func (l *Logger) Log(level Level, category, message string, fields map[string]any) {
	if level < l.minLevel {
		return
	}
	l.write(l.entry(level, category, message, fields))
}

// Debug logs a debug message.
func (l *Logger) Debug(category, message string, fields map[string]any) {
	l.Log(DEBUG, category, message, fields)
}

// Info logs an info message.
func (l *Logger) Info(category, message string, fields map[string]any) {
	l.Log(INFO, category, message, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, message string, fields map[string]any) {
	l.Log(WARN, category, message, fields)
}

// Error logs an error message along with err, when present.
func (l *Logger) Error(category, message string, err error, fields map[string]any) {
	if ERROR < l.minLevel {
		return
	}
	entry := l.entry(ERROR, category, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

func (l *Logger) entry(level Level, category, message string, fields map[string]any) Entry {
	return Entry{
		Timestamp: l.now().UTC(),
		Level:     level.String(),
		Category:  category,
		Message:   message,
		Fields:    fields,
	}
}

func (l *Logger) write(entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal log entry: %v\n", err)
		return
	}
	data = append(data, '\n')

	l.mu.RLock()
	writers := l.writers
	subscribers := make([]chan<- Entry, len(l.subscribers))
	copy(subscribers, l.subscribers)
	l.mu.RUnlock()

	for _, w := range writers {
		_, _ = w.Write(data)
	}

	// Subscribers never block the caller.
	for _, ch := range subscribers {
		select {
		case ch <- entry:
		default:
		}
	}
}

// LogContext carries a correlation id, category and fields across several log calls.
type LogContext struct {
	logger    *Logger
	requestID string
	category  string
	fields    map[string]any
}

// WithRequestID creates a logging context tagged with a correlation id.
func (l *Logger) WithRequestID(requestID string) *LogContext {
	return &LogContext{
		logger:    l,
		requestID: requestID,
		fields:    make(map[string]any),
	}
}

// WithCategory sets the category for this context.
func (c *LogContext) WithCategory(category string) *LogContext {
	c.category = category
	return c
}

// WithField adds a field to this context.
func (c *LogContext) WithField(key string, value any) *LogContext {
	if c.fields == nil {
		c.fields = make(map[string]any)
	}
	c.fields[key] = value
	return c
}

// Debug logs a debug message with the context's id and fields.
func (c *LogContext) Debug(message string) {
	c.log(DEBUG, message, nil)
}

// Info logs an info message with the context's id and fields.
func (c *LogContext) Info(message string) {
	c.log(INFO, message, nil)
}

// Warn logs a warning message with the context's id and fields.
func (c *LogContext) Warn(message string) {
	c.log(WARN, message, nil)
}

// Error logs an error message with the context's id and fields.
func (c *LogContext) Error(message string, err error) {
	c.log(ERROR, message, err)
}

func (c *LogContext) log(level Level, message string, err error) {
	if level < c.logger.minLevel {
		return
	}
	entry := c.logger.entry(level, c.category, message, c.snapshotFields())
	entry.RequestID = c.requestID
	if err != nil {
		entry.Error = err.Error()
	}
	c.logger.write(entry)
}

func (c *LogContext) snapshotFields() map[string]any {
	if len(c.fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(c.fields))
	for k, v := range c.fields {
		out[k] = v
	}
	return out
}
