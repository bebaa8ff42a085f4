package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
)

type Horizon string

const (
	HorizonShort  Horizon = "Short"
	HorizonMedium Horizon = "Medium"
	HorizonLong   Horizon = "Long"
)

var Horizons = []Horizon{HorizonShort, HorizonMedium, HorizonLong}

type Goal struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetDate  string    `json:"targetDate,omitempty"`
	Horizon     Horizon   `json:"horizon"`
	TaskIDs     []string  `json:"taskIds"`
}

// ParseHorizon accepts the horizon names case-insensitively; empty means Short.
func ParseHorizon(value string) (Horizon, error) {
	if value == "" {
		return HorizonShort, nil
	}
	for _, h := range Horizons {
		if strings.EqualFold(value, string(h)) {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: unknown horizon %q", apperrors.ErrInvalidInput, value)
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: goal title is required", apperrors.ErrInvalidInput)
	}
	if _, err := ParseHorizon(string(g.Horizon)); err != nil {
		return err
	}
	if g.TargetDate != "" {
		if _, err := clock.ParseDate(g.TargetDate, time.UTC); err != nil {
			return fmt.Errorf("%w: target date must be YYYY-MM-DD", apperrors.ErrInvalidInput)
		}
	}
	return nil
}

// LinkTask reports false when the task was already linked.
func (g Goal) LinkTask(taskID string) (Goal, bool) {
	if taskID == "" || slices.Contains(g.TaskIDs, taskID) {
		return g, false
	}
	g.TaskIDs = append(slices.Clone(g.TaskIDs), taskID)
	return g, true
}

func (g Goal) UnlinkTask(taskID string) (Goal, bool) {
	i := slices.Index(g.TaskIDs, taskID)
	if i < 0 {
		return g, false
	}
	g.TaskIDs = slices.Delete(slices.Clone(g.TaskIDs), i, i+1)
	return g, true
}

// TaskState is what progress needs to know about a linked task.
type TaskState struct {
	ID    string
	Title string
	Done  bool
}

type Progress struct {
	Done    int
	Total   int
	Percent float64
}

// ComputeProgress counts only linked ids that still resolve. Dangling ids are
// ignored, and a goal with nothing resolvable is at 0%.
func ComputeProgress(g Goal, lookup func(id string) (TaskState, bool)) Progress {
	var p Progress
	for _, id := range g.TaskIDs {
		task, ok := lookup(id)
		if !ok {
			continue
		}
		p.Total++
		if task.Done {
			p.Done++
		}
	}
	if p.Total > 0 {
		p.Percent = float64(p.Done) / float64(p.Total) * 100
	}
	return p
}

// Group is the goals of one horizon.
type Group struct {
	Horizon Horizon
	Goals   []Goal
}

// ByHorizon always returns the three horizons in order, keeping goal order.
func ByHorizon(goals []Goal) []Group {
	groups := make([]Group, len(Horizons))
	for i, h := range Horizons {
		groups[i].Horizon = h
		for _, g := range goals {
			if g.Horizon == h {
				groups[i].Goals = append(groups[i].Goals, g)
			}
		}
	}
	return groups
}
