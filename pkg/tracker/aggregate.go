package tracker

import (
	"fmt"
	"math"
	"sort"
)

// Period selects the bucket size for timeline aggregation.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period selector from user input.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidPeriod, s)
	}
}

// CategoryTotal is one category's summed quantity.
type CategoryTotal struct {
	Activity string  `json:"activity"`
	Total    float64 `json:"total"`
}

// PeriodTotal is one timeline bucket's summed quantity. Keys are
// ascending-orderable strings: "2024-01-15" for days, "2024-W03" for
// ISO weeks, "2024-01" for months.
type PeriodTotal struct {
	Period   string  `json:"period"`
	Quantity float64 `json:"quantity"`
}

// Totals sums quantities per category, rounded to 2 decimal places,
// in ascending lexical category order. An empty table yields nil.
func (t *Table) Totals() []CategoryTotal {
	if t.Len() == 0 {
		return nil
	}
	sums := make(map[string]float64)
	for _, r := range t.Records {
		sums[r.Activity] += r.Quantity
	}
	out := make([]CategoryTotal, 0, len(sums))
	for activity, total := range sums {
		out = append(out, CategoryTotal{Activity: activity, Total: round2(total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Activity < out[j].Activity })
	return out
}

// TodayActivities returns the rows logged on the current calendar date,
// evaluated at call time, sorted ascending by timestamp.
func (t *Table) TodayActivities() []Record {
	return t.ActivitiesOn(Today())
}

// ActivitiesOn returns the rows whose date equals day, sorted ascending
// by timestamp.
func (t *Table) ActivitiesOn(day Day) []Record {
	if t.Len() == 0 {
		return nil
	}
	var out []Record
	for _, r := range t.Records {
		if r.Date == day {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// DateRange returns the rows whose date lies in [start, end] inclusive,
// preserving the table's row order. A start after end is an error.
func (t *Table) DateRange(start, end Day) ([]Record, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	if t.Len() == 0 {
		return nil, nil
	}
	var out []Record
	for _, r := range t.Records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Timeline sums quantities per period bucket for one category
// (case-sensitive match). The category must exist somewhere in the
// unfiltered table; that is checked before any grouping, so an empty
// table fails with ErrActivityNotFound rather than returning an empty
// timeline.
func (t *Table) Timeline(activity string, period Period) ([]PeriodTotal, error) {
	if !t.hasActivity(activity) {
		return nil, fmt.Errorf("%w: %q", ErrActivityNotFound, activity)
	}
	switch period {
	case PeriodDay, PeriodWeek, PeriodMonth:
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidPeriod, period)
	}

	sums := make(map[string]float64)
	for _, r := range t.Records {
		if r.Activity != activity {
			continue
		}
		sums[bucketKey(r, period)] += r.Quantity
	}
	out := make([]PeriodTotal, 0, len(sums))
	for key, qty := range sums {
		out = append(out, PeriodTotal{Period: key, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

func bucketKey(r Record, period Period) string {
	switch period {
	case PeriodWeek:
		year, week := r.Timestamp.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case PeriodMonth:
		return r.Timestamp.Format("2006-01")
	default:
		return r.Date.String()
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
