package api

import "livslogg/pkg/tracker"

// TotalsResponse is the payload for GET /api/totals.
type TotalsResponse struct {
	Totals []tracker.CategoryTotal `json:"totals"`
}

// EntryView is one activity row as exposed over the API.
type EntryView struct {
	Timestamp string  `json:"timestamp"`
	Activity  string  `json:"activity"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
}

// TodayResponse is the payload for GET /api/today.
type TodayResponse struct {
	Date       string      `json:"date"`
	Activities []EntryView `json:"activities"`
}

// TimelineResponse is the payload for GET /api/timeline.
type TimelineResponse struct {
	Activity string                `json:"activity"`
	Period   string                `json:"period"`
	Points   []tracker.PeriodTotal `json:"points"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func entryViews(records []tracker.Record) []EntryView {
	views := make([]EntryView, 0, len(records))
	for _, r := range records {
		views = append(views, EntryView{
			Timestamp: r.Timestamp.Format("2006-01-02T15:04:05"),
			Activity:  r.Activity,
			Quantity:  r.Quantity,
			Unit:      r.Unit,
		})
	}
	return views
}
