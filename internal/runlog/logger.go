// Package runlog writes an NDJSON event log of a run, one line per check.
package runlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

// Logger defines the interface for run event logging.
type Logger interface {
	Log(event Event) error
	Close() error
}

// JSONLogger writes events as newline-delimited JSON (NDJSON).
type JSONLogger struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
	path string
}

// NewJSONLogger creates a logger that appends NDJSON to the given path.
// Parent directories are created automatically.
func NewJSONLogger(path string) (*JSONLogger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating event log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}

	return &JSONLogger{
		file: f,
		enc:  json.NewEncoder(f),
		path: path,
	}, nil
}

// Log writes a single event as one JSON line.
func (l *JSONLogger) Log(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(event)
}

// Close flushes and closes the underlying file.
func (l *JSONLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Path returns the file path of the event log.
func (l *JSONLogger) Path() string {
	return l.path
}

// NopLogger discards all events.
type NopLogger struct{}

// Log is a no-op.
func (NopLogger) Log(Event) error { return nil }

// Close is a no-op.
func (NopLogger) Close() error { return nil }

// Open returns a JSONLogger for path, or a NopLogger when path is empty.
func Open(path string) (Logger, error) {
	if path == "" {
		return NopLogger{}, nil
	}
	return NewJSONLogger(path)
}

// Observer forwards every check record to a Logger.
type Observer struct {
	Logger Logger
	RunID  string
}

// Observe logs rec as a check event. Write failures are logged, never fatal.
func (o *Observer) Observe(rec models.CheckRecord) {
	ev := Event{
		Timestamp: rec.Timestamp.UTC(),
		Type:      EventCheck,
		RunID:     o.RunID,
		Data:      CheckData(rec),
	}
	if err := o.Logger.Log(ev); err != nil {
		slog.Warn("Failed to write event log entry", "check", rec.Name, "error", err)
	}
}
