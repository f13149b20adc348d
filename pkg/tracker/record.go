package tracker

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Column names of the canonical on-disk schema, in canonical order.
const (
	ColTimestamp = "timestamp"
	ColActivity  = "activity"
	ColQuantity  = "quantity"
	ColUnit      = "unit"
	ColDate      = "date"
)

// CanonicalColumns is the fixed column order every write re-establishes.
var CanonicalColumns = []string{ColTimestamp, ColActivity, ColQuantity, ColUnit, ColDate}

// legacyColumns maps the Norwegian column vocabulary of older store files
// to the canonical names. The mapping is applied on read only and never
// overwrites a canonical column that is already present.
var legacyColumns = map[string]string{
	"tidspunkt": ColTimestamp,
	"aktivitet": ColActivity,
	"mengde":    ColQuantity,
	"enhet":     ColUnit,
}

// timestampLayout is how the writer serialises timestamps: ISO-8601
// date-time without a timezone designator.
const timestampLayout = "2006-01-02T15:04:05"

// dayLayout is the ISO-8601 calendar date form used for the date column.
const dayLayout = "2006-01-02"

// Day is a calendar date without a time component. It is always derived
// from a record's timestamp, never authored independently.
type Day struct {
	Year  int
	Month time.Month
	Dom   int
}

// DayOf extracts the calendar date of t.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Dom: d}
}

// ParseDay parses an ISO-8601 calendar date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Today returns the current calendar date.
func Today() Day {
	return DayOf(time.Now())
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Dom)
}

// Time returns midnight of the day in UTC, used for span arithmetic.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Dom, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d falls strictly before other.
func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d falls strictly after other.
func (d Day) After(other Day) bool {
	return d.Time().After(other.Time())
}

// Record is one logged activity event after cleaning: timestamp and
// quantity are always valid, date always matches the timestamp's
// calendar date.
type Record struct {
	Timestamp time.Time
	Activity  string
	Quantity  float64
	Unit      string
	Date      Day
}

// Entry is the writer-side input shape. A zero Timestamp means "stamp
// with the current instant on append". Date is always derived.
type Entry struct {
	Activity  string
	Quantity  float64
	Unit      string
	Timestamp time.Time
}

// Table is the cleaned in-memory view of the whole store. A nil *Table
// signals an absent store file; a non-nil table with zero records means
// the file exists but holds nothing usable.
type Table struct {
	Records []Record
}

// Len returns the number of cleaned records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Activities returns the distinct category labels in ascending lexical
// order.
func (t *Table) Activities() []string {
	if t.Len() == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(t.Records))
	var out []string
	for _, r := range t.Records {
		if _, ok := seen[r.Activity]; ok {
			continue
		}
		seen[r.Activity] = struct{}{}
		out = append(out, r.Activity)
	}
	sort.Strings(out)
	return out
}

func (t *Table) hasActivity(name string) bool {
	if t == nil {
		return false
	}
	for _, r := range t.Records {
		if r.Activity == name {
			return true
		}
	}
	return false
}
