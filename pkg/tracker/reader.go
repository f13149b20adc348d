package tracker

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are accepted on read. The writer always emits the
// first form, but files produced by earlier versions carry fractional
// seconds or timezone designators.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	dayLayout,
}

// Load reads and cleans the whole store.
//
// An absent file yields (nil, nil): the caller must distinguish "never
// logged anything" from an existing file that cleans down to zero rows,
// which yields an empty non-nil table. Rows whose timestamp or quantity
// fail to coerce are dropped; the date column is always recomputed from
// the cleaned timestamps, never trusted from disk.
func (s *Store) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	headerless := false
	if err != nil {
		var parseErr *csv.ParseError
		if !errors.As(err, &parseErr) || !errors.Is(parseErr.Err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("parse store %s: %w", s.path, err)
		}
		// Recovery for rows with drifting field counts: re-read the file
		// headerless with the five-column schema forced onto every row.
		// The former header row comes back as a data row and is dropped
		// later by type coercion.
		fallback := csv.NewReader(bytes.NewReader(data))
		fallback.FieldsPerRecord = -1
		rows, err = fallback.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("reparse store %s headerless: %v (original: %w)", s.path, err, parseErr)
		}
		headerless = true
	}

	if len(rows) == 0 {
		return &Table{}, nil
	}

	var index map[string]int
	var dataRows [][]string
	if headerless {
		index = positionalIndex()
		dataRows = rows
	} else {
		index = headerIndex(rows[0])
		dataRows = rows[1:]
	}

	records := make([]Record, 0, len(dataRows))
	for _, row := range dataRows {
		ts, ok := parseTimestamp(cell(row, index, ColTimestamp))
		if !ok {
			continue
		}
		qty, ok := parseQuantity(cell(row, index, ColQuantity))
		if !ok {
			continue
		}
		records = append(records, Record{
			Timestamp: ts,
			Activity:  scrubNaN(cell(row, index, ColActivity)),
			Quantity:  qty,
			Unit:      scrubNaN(cell(row, index, ColUnit)),
			Date:      DayOf(ts),
		})
	}
	return &Table{Records: records}, nil
}

// headerIndex maps canonical column names to positions, folding in the
// legacy vocabulary. A legacy name is only honoured when the canonical
// column is not already present, so migrated files are never clobbered.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(CanonicalColumns))
	for i, name := range header {
		name = strings.TrimSpace(name)
		for _, col := range CanonicalColumns {
			if name == col {
				index[col] = i
			}
		}
	}
	for i, name := range header {
		canonical, ok := legacyColumns[strings.TrimSpace(name)]
		if !ok {
			continue
		}
		if _, exists := index[canonical]; !exists {
			index[canonical] = i
		}
	}
	return index
}

func positionalIndex() map[string]int {
	index := make(map[string]int, len(CanonicalColumns))
	for i, col := range CanonicalColumns {
		index[col] = i
	}
	return index
}

// cell returns the raw value of a canonical column in the row, or ""
// when the column is absent or the row is short.
func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseQuantity(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// scrubNaN clears the literal "nan" text artefact left behind by older
// exports of null cells.
func scrubNaN(raw string) string {
	if raw == "nan" {
		return ""
	}
	return raw
}
