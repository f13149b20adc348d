// Package cli implements the livslogg subcommands shared by the main
// binary: logging free-text entries through the AI parser, reading the
// activity store back out, and managing the task list.
package cli

import (
	"context"
	"fmt"
	"io"

	"livslogg/internal/svc"
)

const usage = `livslogg - personal activity tracker

Usage:
  livslogg log <text>                 log activities from free text
  livslogg totals                     total quantities per activity
  livslogg today                      activities logged today
  livslogg range <start> <end>        entries between two dates (YYYY-MM-DD)
  livslogg timeline <activity> [period]
                                      bucketed totals (period: day|week|month)
  livslogg summary                    overall statistics
  livslogg tasks list                 list tasks
  livslogg tasks add <description> [-priority low|medium|high] [-due YYYY-MM-DD]
  livslogg tasks done <id>            mark a task done
  livslogg tasks rm <id>              delete a task
  livslogg serve                      start the dashboard API server
`

// Run dispatches a subcommand. It returns a process exit code.
func Run(ctx context.Context, sc *svc.ServiceContext, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "log":
		err = runLog(ctx, sc, args[1:], stdout)
	case "totals":
		err = runTotals(ctx, sc, stdout)
	case "today":
		err = runToday(ctx, sc, stdout)
	case "range":
		err = runRange(ctx, sc, args[1:], stdout)
	case "timeline":
		err = runTimeline(ctx, sc, args[1:], stdout)
	case "summary":
		err = runSummary(ctx, sc, stdout)
	case "tasks":
		err = runTasks(ctx, sc, args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		fmt.Fprint(stderr, usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
