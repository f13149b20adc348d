package tracker

import "time"

// Summary is an overview of the whole cleaned table for dashboards.
type Summary struct {
	TotalActivities  int                `json:"total_activities"`
	UniqueActivities int                `json:"unique_activities"`
	FirstEntry       time.Time          `json:"first_entry"`
	LastEntry        time.Time          `json:"last_entry"`
	DaysTracked      int                `json:"days_tracked"`
	ActivityCounts   map[string]int     `json:"activity_counts"`
	TotalQuantities  map[string]float64 `json:"total_quantities"`
}

// Summarize builds summary statistics over the table. An empty table
// yields nil so "no data" UI branches stay distinguishable from a
// summary full of zero values.
func (t *Table) Summarize() *Summary {
	if t.Len() == 0 {
		return nil
	}

	first, last := t.Records[0].Timestamp, t.Records[0].Timestamp
	counts := make(map[string]int)
	quantities := make(map[string]float64)
	for _, r := range t.Records {
		if r.Timestamp.Before(first) {
			first = r.Timestamp
		}
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
		counts[r.Activity]++
		quantities[r.Activity] += r.Quantity
	}

	span := int(DayOf(last).Time().Sub(DayOf(first).Time()).Hours()/24) + 1
	return &Summary{
		TotalActivities:  t.Len(),
		UniqueActivities: len(counts),
		FirstEntry:       first,
		LastEntry:        last,
		DaysTracked:      span,
		ActivityCounts:   counts,
		TotalQuantities:  quantities,
	}
}

// TotalsChartData projects the category totals into two parallel slices
// in the totals' lexical key order, ready for plotting.
func (t *Table) TotalsChartData() ([]string, []float64) {
	totals := t.Totals()
	labels := make([]string, len(totals))
	values := make([]float64, len(totals))
	for i, ct := range totals {
		labels[i] = ct.Activity
		values[i] = ct.Total
	}
	return labels, values
}

// TimelineChartData projects a day-bucketed timeline for one category
// into two parallel slices in period order.
func (t *Table) TimelineChartData(activity string) ([]string, []float64, error) {
	timeline, err := t.Timeline(activity, PeriodDay)
	if err != nil {
		return nil, nil, err
	}
	periods := make([]string, len(timeline))
	values := make([]float64, len(timeline))
	for i, pt := range timeline {
		periods[i] = pt.Period
		values[i] = pt.Quantity
	}
	return periods, values, nil
}
