package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"livslogg/internal/svc"
	"livslogg/pkg/tasks"
)

func runTasks(ctx context.Context, sc *svc.ServiceContext, args []string, out io.Writer) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		return runTasksList(ctx, sc, out)
	case "add":
		return runTasksAdd(ctx, sc, args[1:], out)
	case "done":
		return runTasksSetStatus(ctx, sc, args[1:], tasks.StatusDone, out)
	case "pending":
		return runTasksSetStatus(ctx, sc, args[1:], tasks.StatusPending, out)
	case "rm":
		return runTasksDelete(ctx, sc, args[1:], out)
	default:
		return fmt.Errorf("unknown tasks subcommand %q", args[0])
	}
}

func runTasksList(ctx context.Context, sc *svc.ServiceContext, out io.Writer) error {
	list, err := sc.Tasks.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No tasks yet.")
		return nil
	}
	for _, t := range list {
		marker := " "
		if t.Status == tasks.StatusDone {
			marker = "x"
		}
		line := fmt.Sprintf("  [%s] #%d %s (%s)", marker, t.ID, t.Description, t.Priority)
		if !t.Due.IsZero() {
			line += fmt.Sprintf(" due %s", t.Due.Format("2006-01-02"))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runTasksAdd(ctx context.Context, sc *svc.ServiceContext, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tasks add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	priority := fs.String("priority", "", "task priority: low|medium|high")
	dueRaw := fs.String("due", "", "due date (YYYY-MM-DD)")

	// Description comes first, flags after: livslogg tasks add "buy milk" -priority high
	var description string
	rest := args
	if len(rest) > 0 && len(rest[0]) > 0 && rest[0][0] != '-' {
		description = rest[0]
		rest = rest[1:]
	}
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("tasks add: %w", err)
	}
	if description == "" {
		return errors.New("usage: livslogg tasks add <description> [-priority low|medium|high] [-due YYYY-MM-DD]")
	}

	var due time.Time
	if *dueRaw != "" {
		parsed, err := time.Parse("2006-01-02", *dueRaw)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", *dueRaw, err)
		}
		due = parsed
	}

	task, err := sc.Tasks.Add(ctx, description, *priority, due)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Added task #%d: %s\n", task.ID, task.Description)
	return nil
}

func runTasksSetStatus(ctx context.Context, sc *svc.ServiceContext, args []string, status string, out io.Writer) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	if err := sc.Tasks.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Fprintf(out, "Task #%d marked %s.\n", id, status)
	return nil
}

func runTasksDelete(ctx context.Context, sc *svc.ServiceContext, args []string, out io.Writer) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}
	if err := sc.Tasks.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Task #%d deleted.\n", id)
	return nil
}

func parseTaskID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("a single task id is required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}
