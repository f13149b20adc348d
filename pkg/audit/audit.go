// Package audit persists one JSON file per AI parse cycle so that model
// behaviour can be reviewed after the fact: what the user wrote, what
// the model answered, and what ended up in the store.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ParseRecord captures one end-to-end parse cycle.
type ParseRecord struct {
	Timestamp    time.Time  `json:"timestamp"`
	Input        string     `json:"input"`
	Model        string     `json:"model,omitempty"`
	Activities   []Activity `json:"activities,omitempty"`
	Success      bool       `json:"success"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// Activity mirrors one parsed activity in the audit trail.
type Activity struct {
	Activity string  `json:"activity"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Writer persists parse records to a directory as JSON files.
type Writer struct {
	dir   string
	seq   int
	nowFn func() time.Time
}

// Option configures optional writer behaviour.
type Option func(*Writer)

// WithNowFunc overrides the clock used for timestamps (for tests).
func WithNowFunc(fn func() time.Time) Option {
	return func(w *Writer) {
		if fn != nil {
			w.nowFn = fn
		}
	}
}

// NewWriter constructs an audit writer rooted at dir.
func NewWriter(dir string, opts ...Option) *Writer {
	if dir == "" {
		dir = "audit"
	}
	_ = os.MkdirAll(dir, 0o755)
	w := &Writer{dir: dir, nowFn: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteParse writes a parse record to a timestamped JSON file and
// returns its path.
func (w *Writer) WriteParse(rec *ParseRecord) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("audit: nil record")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = w.nowFn()
	}
	w.seq++
	name := fmt.Sprintf("parse_%s_%05d.json", rec.Timestamp.UTC().Format("20060102_150405"), w.seq)
	path := filepath.Join(w.dir, name)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
