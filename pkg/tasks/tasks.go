// Package tasks is the to-do list counterpart of the activity store: the
// same flat CSV design, but with update and delete by identifier. Every
// mutation except Add rewrites the whole file, which is accepted as
// unsafe under concurrent writers.
package tasks

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Status values a task can hold.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Priority values a task can hold.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var header = []string{"id", "description", "status", "due", "priority", "created"}

var (
	// ErrTaskNotFound indicates an update or delete for an unknown id.
	ErrTaskNotFound = errors.New("tasks: task not found")
	// ErrInvalidStatus indicates a status outside pending|done.
	ErrInvalidStatus = errors.New("tasks: status must be pending or done")
	// ErrInvalidPriority indicates a priority outside low|medium|high.
	ErrInvalidPriority = errors.New("tasks: priority must be low, medium or high")
	// ErrEmptyDescription indicates a task without a description.
	ErrEmptyDescription = errors.New("tasks: description is required")
)

// Task is one to-do item. Due is optional and zero when unset.
type Task struct {
	ID          int
	Description string
	Status      string
	Due         time.Time
	Priority    string
	Created     time.Time
}

// Store is the flat CSV file holding all tasks.
type Store struct {
	path  string
	nowFn func() time.Time
}

// Option configures optional store behaviour.
type Option func(*Store)

// WithNowFunc overrides the clock used for creation stamps (for tests).
func WithNowFunc(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.nowFn = fn
		}
	}
}

// NewStore constructs a task store over the CSV file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, nowFn: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates and appends a new task, assigning the next free id.
// Returns the stored task.
func (s *Store) Add(ctx context.Context, description, priority string, due time.Time) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, ErrEmptyDescription
	}
	if priority == "" {
		priority = PriorityMedium
	}
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return Task{}, fmt.Errorf("%w: got %q", ErrInvalidPriority, priority)
	}

	existing, err := s.List(ctx)
	if err != nil {
		return Task{}, err
	}
	nextID := 1
	for _, t := range existing {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}

	task := Task{
		ID:          nextID,
		Description: description,
		Status:      StatusPending,
		Due:         due,
		Priority:    priority,
		Created:     s.nowFn(),
	}
	if err := s.append(task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// List loads all tasks sorted by id. An absent file is an empty list.
func (s *Store) List(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open task store %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse task store %s: %w", s.path, err)
	}

	var tasks []Task
	for _, row := range rows {
		task, ok := parseRow(row)
		if !ok {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// UpdateStatus sets the status of the task with the given id and
// rewrites the file.
func (s *Store) UpdateStatus(ctx context.Context, id int, status string) error {
	switch status {
	case StatusPending, StatusDone:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidStatus, status)
	}

	tasks, err := s.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	return s.rewrite(tasks)
}

// Delete removes the task with the given id and rewrites the file.
func (s *Store) Delete(ctx context.Context, id int) error {
	tasks, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	return s.rewrite(kept)
}

func (s *Store) append(task Task) error {
	needsHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		needsHeader = false
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open task store %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needsHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write task header: %w", err)
		}
	}
	if err := w.Write(formatRow(task)); err != nil {
		return fmt.Errorf("write task row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush task store %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) rewrite(tasks []Task) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("rewrite task store %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write task header: %w", err)
	}
	for _, t := range tasks {
		if err := w.Write(formatRow(t)); err != nil {
			return fmt.Errorf("write task row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush task store %s: %w", s.path, err)
	}
	return nil
}

func formatRow(t Task) []string {
	due := ""
	if !t.Due.IsZero() {
		due = t.Due.Format("2006-01-02")
	}
	return []string{
		strconv.Itoa(t.ID),
		t.Description,
		t.Status,
		due,
		t.Priority,
		t.Created.Format("2006-01-02T15:04:05"),
	}
}

// parseRow converts one CSV row into a Task. The header row and rows
// with an unparseable id are skipped.
func parseRow(row []string) (Task, bool) {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	id, err := strconv.Atoi(strings.TrimSpace(get(0)))
	if err != nil {
		return Task{}, false
	}
	task := Task{
		ID:          id,
		Description: get(1),
		Status:      get(2),
		Priority:    get(4),
	}
	if raw := strings.TrimSpace(get(3)); raw != "" {
		if due, err := time.Parse("2006-01-02", raw); err == nil {
			task.Due = due
		}
	}
	if raw := strings.TrimSpace(get(5)); raw != "" {
		if created, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			task.Created = created
		}
	}
	return task, true
}
