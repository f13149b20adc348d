package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"livslogg/internal/svc"
	"livslogg/pkg/audit"
	"livslogg/pkg/parser"
	"livslogg/pkg/tracker"
)

func runLog(ctx context.Context, sc *svc.ServiceContext, args []string, out io.Writer) error {
	if sc.Parser == nil {
		return errors.New("no LLM configured; set OPENROUTER_API_KEY or add an llm section to the config")
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errors.New("nothing to log; usage: livslogg log <text>")
	}

	fmt.Fprintf(out, "Analyzing: %q\n", text)
	parsed, err := sc.Parser.Parse(ctx, text)
	writeAudit(sc, text, parsed, err)
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		fmt.Fprintln(out, "No activities were detected in your input.")
		return nil
	}

	entries := make([]tracker.Entry, 0, len(parsed))
	items := make([]tracker.LineItem, 0, len(parsed))
	for _, p := range parsed {
		entries = append(entries, tracker.Entry{
			Activity: p.Activity,
			Quantity: p.Quantity,
			Unit:     p.Unit,
		})
		items = append(items, tracker.LineItem{Activity: p.Activity, Quantity: p.Quantity, Unit: p.Unit})
	}
	if err := sc.Store.Append(ctx, entries); err != nil {
		return err
	}

	fmt.Fprintln(out, "Successfully logged the following:")
	fmt.Fprintln(out, tracker.FormatActivityLines(items))
	return nil
}

// writeAudit records the parse cycle when an audit dir is configured.
func writeAudit(sc *svc.ServiceContext, input string, parsed []parser.ParsedActivity, parseErr error) {
	if sc.Audit == nil {
		return
	}
	rec := &audit.ParseRecord{
		Input:   input,
		Success: parseErr == nil,
	}
	if sc.LLMClient != nil {
		rec.Model = sc.LLMClient.GetConfig().DefaultModel
	}
	if parseErr != nil {
		rec.ErrorMessage = parseErr.Error()
	}
	for _, p := range parsed {
		rec.Activities = append(rec.Activities, audit.Activity{
			Activity: p.Activity,
			Quantity: p.Quantity,
			Unit:     p.Unit,
		})
	}
	if _, err := sc.Audit.WriteParse(rec); err != nil {
		logx.Errorf("write audit record: %v", err)
	}
}

func runTotals(ctx context.Context, sc *svc.ServiceContext, out io.Writer) error {
	table, err := loadTable(ctx, sc, out)
	if err != nil || table == nil {
		return err
	}
	totals := table.Totals()
	if len(totals) == 0 {
		fmt.Fprintln(out, tracker.NoActivitiesMessage)
		return nil
	}
	fmt.Fprintln(out, "Totals for all activities:")
	for _, t := range totals {
		fmt.Fprintf(out, "  %s: %v\n", t.Activity, t.Total)
	}
	return nil
}

func runToday(ctx context.Context, sc *svc.ServiceContext, out io.Writer) error {
	table, err := loadTable(ctx, sc, out)
	if err != nil || table == nil {
		return err
	}
	rows := table.ActivitiesOn(tracker.Today())
	if len(rows) == 0 {
		fmt.Fprintln(out, "No activities logged today.")
		return nil
	}
	fmt.Fprintln(out, "Today's log:")
	printRows(out, rows)
	return nil
}

func runRange(ctx context.Context, sc *svc.ServiceContext, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("usage: livslogg range <start> <end> (YYYY-MM-DD)")
	}
	start, err := tracker.ParseDay(args[0])
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", args[0], err)
	}
	end, err := tracker.ParseDay(args[1])
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", args[1], err)
	}

	table, err := loadTable(ctx, sc, out)
	if err != nil || table == nil {
		return err
	}
	rows, err := table.DateRange(start, end)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(out, "No activities between %s and %s.\n", start, end)
		return nil
	}
	fmt.Fprintf(out, "Activities from %s to %s:\n", start, end)
	printRows(out, rows)
	return nil
}

func runTimeline(ctx context.Context, sc *svc.ServiceContext, args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: livslogg timeline <activity> [day|week|month]")
	}
	period := tracker.PeriodDay
	if len(args) == 2 {
		p, err := tracker.ParsePeriod(args[1])
		if err != nil {
			return err
		}
		period = p
	}

	table, err := loadTable(ctx, sc, out)
	if err != nil || table == nil {
		return err
	}
	points, err := table.Timeline(args[0], period)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Timeline for %s (per %s):\n", args[0], period)
	for _, p := range points {
		fmt.Fprintf(out, "  %s: %v\n", p.Period, p.Quantity)
	}
	return nil
}

func runSummary(ctx context.Context, sc *svc.ServiceContext, out io.Writer) error {
	table, err := loadTable(ctx, sc, out)
	if err != nil || table == nil {
		return err
	}
	summary := table.Summarize()
	if summary == nil {
		fmt.Fprintln(out, tracker.NoActivitiesMessage)
		return nil
	}

	fmt.Fprintln(out, "Data overview:")
	fmt.Fprintf(out, "  Total activities logged: %d\n", summary.TotalActivities)
	fmt.Fprintf(out, "  Unique activity types: %d\n", summary.UniqueActivities)
	fmt.Fprintf(out, "  Date range: %s to %s\n",
		summary.FirstEntry.Format("2006-01-02"), summary.LastEntry.Format("2006-01-02"))
	fmt.Fprintf(out, "  Days tracked: %d\n", summary.DaysTracked)
	for _, activity := range sortedKeys(summary.ActivityCounts) {
		fmt.Fprintf(out, "  %s: %d entries, %v total\n",
			activity, summary.ActivityCounts[activity], summary.TotalQuantities[activity])
	}
	return nil
}

// loadTable reads the activity store; an absent store prints a hint and
// returns (nil, nil) so commands can bail out quietly.
func loadTable(ctx context.Context, sc *svc.ServiceContext, out io.Writer) (*tracker.Table, error) {
	table, err := sc.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if table == nil {
		fmt.Fprintln(out, "No data found. Log some activities first!")
		fmt.Fprintln(out, "Example: livslogg log 'drank 500ml of water'")
		return nil, nil
	}
	return table, nil
}

func printRows(out io.Writer, rows []tracker.Record) {
	for _, r := range rows {
		line := fmt.Sprintf("  %s - %s: %v %s",
			r.Timestamp.Format("2006-01-02 15:04"), r.Activity, r.Quantity, r.Unit)
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
