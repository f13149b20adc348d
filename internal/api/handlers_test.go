package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"livslogg/internal/config"
	"livslogg/internal/svc"
	"livslogg/pkg/tracker"
)

func newTestContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("OPENROUTER_API_KEY", "")
	dir := t.TempDir()
	cfg := config.Config{
		Env:       "test",
		StorePath: filepath.Join(dir, "livslogg.csv"),
		TaskPath:  filepath.Join(dir, "tasks.csv"),
	}
	return svc.NewServiceContext(cfg)
}

func seedStore(t *testing.T, ctx *svc.ServiceContext) {
	t.Helper()
	err := ctx.Store.Append(context.Background(), []tracker.Entry{
		{Activity: "Water", Quantity: 500, Unit: "ml", Timestamp: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
		{Activity: "Walk", Quantity: 2, Unit: "km", Timestamp: time.Date(2024, 1, 16, 18, 0, 0, 0, time.UTC)},
		{Activity: "Water", Quantity: 250, Unit: "ml", Timestamp: time.Now()},
	})
	require.NoError(t, err)
}

func doGet(t *testing.T, handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestTotalsHandler(t *testing.T) {
	ctx := newTestContext(t)

	t.Run("absent store is 404", func(t *testing.T) {
		rec := doGet(t, TotalsHandler(ctx), "/api/totals")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	seedStore(t, ctx)

	t.Run("totals", func(t *testing.T) {
		rec := doGet(t, TotalsHandler(ctx), "/api/totals")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TotalsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Totals, 2)
		require.Equal(t, "Walk", resp.Totals[0].Activity)
		require.Equal(t, 2.0, resp.Totals[0].Total)
		require.Equal(t, "Water", resp.Totals[1].Activity)
		require.Equal(t, 750.0, resp.Totals[1].Total)
	})
}

func TestTodayHandler(t *testing.T) {
	ctx := newTestContext(t)
	seedStore(t, ctx)

	rec := doGet(t, TodayHandler(ctx), "/api/today")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TodayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, tracker.Today().String(), resp.Date)
	require.Len(t, resp.Activities, 1, "only the entry stamped today")
	require.Equal(t, "Water", resp.Activities[0].Activity)
	require.Equal(t, 250.0, resp.Activities[0].Quantity)
}

func TestSummaryHandler(t *testing.T) {
	ctx := newTestContext(t)
	seedStore(t, ctx)

	rec := doGet(t, SummaryHandler(ctx), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tracker.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.TotalActivities)
	require.Equal(t, 2, resp.UniqueActivities)
	require.Equal(t, map[string]int{"Water": 2, "Walk": 1}, resp.ActivityCounts)
}

func TestTimelineHandler(t *testing.T) {
	ctx := newTestContext(t)
	seedStore(t, ctx)

	t.Run("day buckets", func(t *testing.T) {
		rec := doGet(t, TimelineHandler(ctx), "/api/timeline?activity=Water&period=day")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TimelineResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Water", resp.Activity)
		require.Equal(t, "day", resp.Period)
		require.Len(t, resp.Points, 2)
		require.Equal(t, 500.0, resp.Points[0].Quantity)
	})

	t.Run("period defaults to day", func(t *testing.T) {
		rec := doGet(t, TimelineHandler(ctx), "/api/timeline?activity=Water")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp TimelineResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "day", resp.Period)
	})

	t.Run("missing activity is 400", func(t *testing.T) {
		rec := doGet(t, TimelineHandler(ctx), "/api/timeline")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad period is 400", func(t *testing.T) {
		rec := doGet(t, TimelineHandler(ctx), "/api/timeline?activity=Water&period=fortnight")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown activity is 404", func(t *testing.T) {
		rec := doGet(t, TimelineHandler(ctx), "/api/timeline?activity=Yoga&period=day")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
