package tracker

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store is the durable append-only CSV file holding all activity records.
// The path is injected; the store keeps no other state and no cache, so
// every Load re-reads the whole file.
type Store struct {
	path  string
	nowFn func() time.Time
}

// StoreOption configures optional store behaviour.
type StoreOption func(*Store)

// WithNowFunc overrides the clock used to stamp entries (for tests).
func WithNowFunc(fn func() time.Time) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.nowFn = fn
		}
	}
}

// NewStore constructs a store over the CSV file at path.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{path: path, nowFn: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Append stamps and persists a batch of entries. Entries without a
// timestamp each get their own "now" reading. The header row is written
// only when the file is absent or zero-length; otherwise rows are
// appended as-is. Rows always go out in canonical column order.
func (s *Store) Append(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrNoEntries
	}

	needsHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		needsHeader = false
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open store %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write(CanonicalColumns); err != nil {
			return fmt.Errorf("write store header: %w", err)
		}
	}
	for _, e := range entries {
		ts := e.Timestamp
		if ts.IsZero() {
			ts = s.nowFn()
		}
		row := []string{
			ts.Format(timestampLayout),
			e.Activity,
			strconv.FormatFloat(e.Quantity, 'f', -1, 64),
			e.Unit,
			DayOf(ts).String(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write store row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush store %s: %w", s.path, err)
	}
	return nil
}
