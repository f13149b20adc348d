package tracker

import "errors"

var (
	// ErrInvalidRange indicates a date-range query whose start falls after its end.
	ErrInvalidRange = errors.New("tracker: start date after end date")
	// ErrActivityNotFound indicates a timeline request for a category with no rows.
	ErrActivityNotFound = errors.New("tracker: activity not found")
	// ErrInvalidPeriod indicates an unrecognised timeline period selector.
	ErrInvalidPeriod = errors.New("tracker: period must be day, week or month")
	// ErrNoEntries indicates an append call with an empty batch.
	ErrNoEntries = errors.New("tracker: no entries to append")
)
