package dto

import "time"

type GoalInput struct {
	Title       string
	Description string
	TargetDate  string
	Horizon     string
	TaskIDs     []string
}

type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	TargetDate  *string
	Horizon     *string
}

type GoalOutput struct {
	ID          string
	CreatedAt   time.Time
	Title       string
	Description string
	TargetDate  string
	Horizon     string
	TaskIDs     []string
	// Tasks holds the linked tasks that still exist.
	Tasks    []LinkedTask
	Done     int
	Total    int
	Progress float64
}

type LinkedTask struct {
	ID    string
	Title string
	Done  bool
}

type GroupOutput struct {
	Horizon string
	Goals   []GoalOutput
}
