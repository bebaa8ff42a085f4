package dto

import (
	"time"

	"zenith/internal/modules/task/domain"
)

// Status names as stored and displayed.
const (
	StatusTodo  = string(domain.StatusTodo)
	StatusDoing = string(domain.StatusDoing)
	StatusDone  = string(domain.StatusDone)
)

type AddInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     string
}

// UpdateInput carries the fields to change; nil leaves a field as it is.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}

type TaskOutput struct {
	ID             string
	CreatedAt      time.Time
	Title          string
	Description    string
	Status         string
	Priority       string
	DueDate        string
	PomodorosDone  int
	TotalTimeSpent int
}

func (t TaskOutput) IsDone() bool { return t.Status == StatusDone }

type ColumnOutput struct {
	Status string
	Tasks  []TaskOutput
}

type RecordPomodoroInput struct {
	TaskID  string
	Seconds int
}
