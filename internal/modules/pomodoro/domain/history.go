package domain

import (
	"time"

	"zenith/internal/platform/clock"
)

type LinkedTask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Log is one completed session. CreatedAt is the server timestamp.
type Log struct {
	ID         string      `json:"id"`
	CreatedAt  time.Time   `json:"timestamp"`
	Kind       Kind        `json:"type"`
	Duration   int         `json:"duration"`
	LinkedTask *LinkedTask `json:"linkedTask,omitempty"`
}

// Today keeps the logs created on now's calendar day.
func Today(logs []Log, now time.Time) []Log {
	start := clock.StartOfDay(now)
	end := start.AddDate(0, 0, 1)
	var out []Log
	for _, l := range logs {
		at := l.CreatedAt.In(now.Location())
		if !at.Before(start) && at.Before(end) {
			out = append(out, l)
		}
	}
	return out
}

func FocusSeconds(logs []Log) int {
	total := 0
	for _, l := range logs {
		if l.Kind == KindFocus {
			total += l.Duration
		}
	}
	return total
}
