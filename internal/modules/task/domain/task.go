package domain

import (
	"fmt"
	"strings"
	"time"

	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
)

type Status string

const (
	StatusTodo  Status = "Todo"
	StatusDoing Status = "Doing"
	StatusDone  Status = "Done"
)

// Statuses lists the Kanban columns in display order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type Task struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Status         Status    `json:"status"`
	Priority       Priority  `json:"priority"`
	DueDate        string    `json:"dueDate,omitempty"`
	PomodorosDone  int       `json:"pomodorosDone"`
	TotalTimeSpent int       `json:"totalTimeSpent"`
}

func ParseStatus(value string) (Status, error) {
	for _, s := range Statuses {
		if strings.EqualFold(value, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, value)
}

func ParsePriority(value string) (Priority, error) {
	if value == "" {
		return PriorityMedium, nil
	}
	for _, p := range Priorities {
		if strings.EqualFold(value, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown priority %q", apperrors.ErrInvalidInput, value)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title is required", apperrors.ErrInvalidInput)
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	if t.DueDate != "" {
		if _, err := clock.ParseDate(t.DueDate, time.UTC); err != nil {
			return fmt.Errorf("%w: due date must be YYYY-MM-DD", apperrors.ErrInvalidInput)
		}
	}
	if t.PomodorosDone < 0 || t.TotalTimeSpent < 0 {
		return fmt.Errorf("%w: pomodoro counters must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}

// NewTask applies the creation defaults: every task starts in Todo with
// zeroed pomodoro counters.
func NewTask(title, description string, priority Priority, dueDate string) Task {
	return Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      StatusTodo,
		Priority:    priority,
		DueDate:     dueDate,
	}
}

// RecordFocus credits one completed focus session of seconds to the task.
func (t Task) RecordFocus(seconds int) Task {
	t.PomodorosDone++
	t.TotalTimeSpent += seconds
	return t
}

func (t Task) Completed() bool {
	return t.Status == StatusDone
}

// Column is one Kanban lane.
type Column struct {
	Status Status
	Tasks  []Task
}

// Board groups tasks by status, keeping the incoming order inside each lane.
func Board(tasks []Task) []Column {
	cols := make([]Column, len(Statuses))
	index := map[Status]int{}
	for i, s := range Statuses {
		cols[i] = Column{Status: s}
		index[s] = i
	}
	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok {
			i = 0
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	return cols
}
