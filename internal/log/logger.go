// Package log provides structured event logging.
// This file appends JSON events to log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventGateAdvanced      = "gate_advanced"
	EventGateRejected      = "gate_rejected"
	EventUnlocked          = "unlocked"
	EventRelocked          = "relocked"
	EventImageAdded        = "image_added"
	EventImageDecodeFailed = "image_decode_failed"
	EventImageDeleted      = "image_deleted"
	EventDateAdded         = "date_added"
	EventDateToggled       = "date_toggled"
	EventDateDeleted       = "date_deleted"
	EventPermissionDenied  = "permission_denied"
	EventStoreCorrupt      = "store_corrupt"
	EventProposalAccepted  = "proposal_accepted"
)

// LogEvent represents a single structured event written to the log.
type LogEvent struct {
	Time   time.Time              `json:"time"`
	Event  string                 `json:"event"`
	Screen string                 `json:"screen,omitempty"`
	Step   int                    `json:"step,omitempty"`
	Role   string                 `json:"role,omitempty"`
	Key    string                 `json:"key,omitempty"`
	ID     string                 `json:"id,omitempty"`
	Name   string                 `json:"name,omitempty"`
	Index  *int                   `json:"index,omitempty"`
	Count  int                    `json:"count,omitempty"`
	Reason string                 `json:"reason,omitempty"`
	Error  string                 `json:"error,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// Logger writes append-only JSONL events to a log file.
// A nil *Logger discards every event.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to .keepsake/log.jsonl inside dir.
// Creates the .keepsake/ directory if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	stateDir := filepath.Join(dir, ".keepsake")
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create .keepsake directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(stateDir, "log.jsonl"),
	}, nil
}

// Path returns the log file location.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// The file is opened in append mode, written to, and then closed.
func (l *Logger) Append(event LogEvent) error {
	if l == nil {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	if l == nil {
		return []LogEvent{}, nil
	}
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}

// Tail returns the last n events, oldest first.
func (l *Logger) Tail(n int) ([]LogEvent, error) {
	events, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// IntPtr is a helper for the optional Index field.
func IntPtr(v int) *int {
	return &v
}
