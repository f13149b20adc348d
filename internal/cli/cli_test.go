package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"livslogg/internal/config"
	"livslogg/internal/svc"
	"livslogg/pkg/audit"
	"livslogg/pkg/llm"
	"livslogg/pkg/parser"
	"livslogg/pkg/tasks"
	"livslogg/pkg/tracker"
)

type scriptedChat struct {
	reply string
}

func (s *scriptedChat) Chat(_ context.Context, _ *llm.ChatRequest) (*llm.ChatResponse, error) {
	return &llm.ChatResponse{
		Choices: []llm.Choice{{Message: llm.Message{Role: "assistant", Content: s.reply}}},
	}, nil
}

func (s *scriptedChat) ChatStructured(context.Context, *llm.ChatRequest, any) error {
	return errors.New("scripted replies are plain text")
}

func newTestSvc(t *testing.T, reply string) *svc.ServiceContext {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Env:       "test",
		StorePath: filepath.Join(dir, "livslogg.csv"),
		TaskPath:  filepath.Join(dir, "tasks.csv"),
	}
	sc := &svc.ServiceContext{
		Config: cfg,
		Store:  tracker.NewStore(cfg.StorePath),
		Tasks:  tasks.NewStore(cfg.TaskPath),
	}
	if reply != "" {
		sc.Parser = parser.New(&scriptedChat{reply: reply})
	}
	return sc
}

func run(t *testing.T, sc *svc.ServiceContext, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), sc, args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRunLog(t *testing.T) {
	sc := newTestSvc(t, `[{"activity":"Water","quantity":500,"unit":"ml"}]`)

	stdout, _, code := run(t, sc, "log", "drank 500ml of water")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Successfully logged the following:")
	require.Contains(t, stdout, "- Water: 500.0 ml")

	table, err := sc.Store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	require.Equal(t, "Water", table.Records[0].Activity)
}

func TestRunLogNoActivities(t *testing.T) {
	sc := newTestSvc(t, `[]`)
	stdout, _, code := run(t, sc, "log", "just thinking")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "No activities were detected")
}

func TestRunLogWritesAudit(t *testing.T) {
	sc := newTestSvc(t, `[{"activity":"Water","quantity":500,"unit":"ml"}]`)
	auditDir := filepath.Join(t.TempDir(), "audit")
	sc.Audit = audit.NewWriter(auditDir)

	_, _, code := run(t, sc, "log", "drank 500ml of water")
	require.Equal(t, 0, code)

	files, err := os.ReadDir(auditDir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	raw, err := os.ReadFile(filepath.Join(auditDir, files[0].Name()))
	require.NoError(t, err)
	var rec audit.ParseRecord
	require.NoError(t, json.Unmarshal(raw, &rec))
	require.True(t, rec.Success)
	require.Equal(t, "drank 500ml of water", rec.Input)
	require.Len(t, rec.Activities, 1)
	require.Equal(t, "Water", rec.Activities[0].Activity)
}

func TestRunLogWithoutParser(t *testing.T) {
	sc := newTestSvc(t, "")
	_, stderr, code := run(t, sc, "log", "water")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "no LLM configured")
}

func seedEntries(t *testing.T, sc *svc.ServiceContext) {
	t.Helper()
	err := sc.Store.Append(context.Background(), []tracker.Entry{
		{Activity: "Water", Quantity: 500, Unit: "ml", Timestamp: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
		{Activity: "Walk", Quantity: 2, Unit: "km", Timestamp: time.Date(2024, 1, 16, 18, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
}

func TestRunTotals(t *testing.T) {
	sc := newTestSvc(t, "")

	t.Run("absent store", func(t *testing.T) {
		stdout, _, code := run(t, sc, "totals")
		require.Equal(t, 0, code)
		require.Contains(t, stdout, "No data found")
	})

	seedEntries(t, sc)

	t.Run("with data", func(t *testing.T) {
		stdout, _, code := run(t, sc, "totals")
		require.Equal(t, 0, code)
		require.Contains(t, stdout, "Walk: 2")
		require.Contains(t, stdout, "Water: 500")
	})
}

func TestRunRange(t *testing.T) {
	sc := newTestSvc(t, "")
	seedEntries(t, sc)

	stdout, _, code := run(t, sc, "range", "2024-01-15", "2024-01-15")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Water: 500 ml")
	require.NotContains(t, stdout, "Walk")

	_, stderr, code := run(t, sc, "range", "2024-02-01", "2024-01-01")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "start date after end date")
}

func TestRunTimeline(t *testing.T) {
	sc := newTestSvc(t, "")
	seedEntries(t, sc)

	stdout, _, code := run(t, sc, "timeline", "Water", "day")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "2024-01-15: 500")

	_, stderr, code := run(t, sc, "timeline", "Yoga")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "not found")
}

func TestRunSummary(t *testing.T) {
	sc := newTestSvc(t, "")
	seedEntries(t, sc)

	stdout, _, code := run(t, sc, "summary")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Total activities logged: 2")
	require.Contains(t, stdout, "Unique activity types: 2")
	require.Contains(t, stdout, "Days tracked: 2")
}

func TestRunTasks(t *testing.T) {
	sc := newTestSvc(t, "")

	stdout, _, code := run(t, sc, "tasks", "add", "buy milk", "-priority", "high", "-due", "2026-09-01")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Added task #1: buy milk")

	stdout, _, code = run(t, sc, "tasks", "list")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "[ ] #1 buy milk (high) due 2026-09-01")

	stdout, _, code = run(t, sc, "tasks", "done", "1")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Task #1 marked done.")

	stdout, _, code = run(t, sc, "tasks", "list")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "[x] #1 buy milk")

	stdout, _, code = run(t, sc, "tasks", "rm", "1")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Task #1 deleted.")

	stdout, _, code = run(t, sc, "tasks", "list")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "No tasks yet.")
}

func TestRunUnknownCommand(t *testing.T) {
	sc := newTestSvc(t, "")
	_, stderr, code := run(t, sc, "frobnicate")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "unknown command")
	require.True(t, strings.Contains(stderr, "Usage:"))
}
