// Package api exposes the read-only dashboard endpoints over go-zero's
// rest server: category totals, today's log, the overall summary and
// per-activity timelines.
package api

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"livslogg/internal/svc"
	"livslogg/pkg/tracker"
)

// TotalsHandler returns summed quantities per activity category.
func TotalsHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, ok := loadTable(ctx, w, r)
		if !ok {
			return
		}
		totals := table.Totals()
		if totals == nil {
			totals = []tracker.CategoryTotal{}
		}
		httpx.OkJsonCtx(r.Context(), w, TotalsResponse{Totals: totals})
	}
}

// TodayHandler returns the rows logged on the current calendar day.
func TodayHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, ok := loadTable(ctx, w, r)
		if !ok {
			return
		}
		day := tracker.Today()
		httpx.OkJsonCtx(r.Context(), w, TodayResponse{
			Date:       day.String(),
			Activities: entryViews(table.ActivitiesOn(day)),
		})
	}
}

// SummaryHandler returns the whole-store summary statistics.
func SummaryHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, ok := loadTable(ctx, w, r)
		if !ok {
			return
		}
		summary := table.Summarize()
		if summary == nil {
			writeError(w, r, http.StatusNotFound, "no activities logged yet")
			return
		}
		httpx.OkJsonCtx(r.Context(), w, summary)
	}
}

// TimelineHandler returns bucketed quantities for one activity.
// Query params: activity (required), period (day|week|month, default day).
func TimelineHandler(ctx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activity := r.URL.Query().Get("activity")
		if activity == "" {
			writeError(w, r, http.StatusBadRequest, "activity query parameter is required")
			return
		}
		periodRaw := r.URL.Query().Get("period")
		if periodRaw == "" {
			periodRaw = string(tracker.PeriodDay)
		}
		period, err := tracker.ParsePeriod(periodRaw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		table, ok := loadTable(ctx, w, r)
		if !ok {
			return
		}
		points, err := table.Timeline(activity, period)
		if err != nil {
			switch {
			case errors.Is(err, tracker.ErrActivityNotFound):
				writeError(w, r, http.StatusNotFound, err.Error())
			case errors.Is(err, tracker.ErrInvalidPeriod):
				writeError(w, r, http.StatusBadRequest, err.Error())
			default:
				writeError(w, r, http.StatusInternalServerError, err.Error())
			}
			return
		}
		httpx.OkJsonCtx(r.Context(), w, TimelineResponse{
			Activity: activity,
			Period:   string(period),
			Points:   points,
		})
	}
}

// loadTable reads the activity store, mapping an absent file to 404 and
// a read failure to 500. The bool reports whether the caller may proceed.
func loadTable(ctx *svc.ServiceContext, w http.ResponseWriter, r *http.Request) (*tracker.Table, bool) {
	table, err := ctx.Store.Load(r.Context())
	if err != nil {
		logx.WithContext(r.Context()).Errorf("load activity store: %v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to read activity store")
		return nil, false
	}
	if table == nil {
		writeError(w, r, http.StatusNotFound, "no activity log found")
		return nil, false
	}
	return table, true
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	httpx.WriteJsonCtx(r.Context(), w, status, errorResponse{Error: msg})
}
