package dto

import "time"

type TimerOutput struct {
	Kind      string
	Remaining int
	Duration  int
	Running   bool
	Completed int
	// LinkedTaskTitle is empty when the linked task no longer exists.
	LinkedTaskID    string
	LinkedTaskTitle string
}

type CompletionOutput struct {
	Kind     string
	Duration int
	TaskID   string
}

type LogOutput struct {
	ID              string
	Timestamp       time.Time
	Kind            string
	Duration        int
	LinkedTaskID    string
	LinkedTaskTitle string
}

type TodayOutput struct {
	Sessions     []LogOutput
	FocusSeconds int
}
