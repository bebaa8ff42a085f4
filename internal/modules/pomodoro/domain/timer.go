package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "zenith/internal/platform/errors"
)

type Kind string

const (
	KindFocus      Kind = "Focus"
	KindShortBreak Kind = "Short Break"
	KindLongBreak  Kind = "Long Break"
)

// SessionsUntilLongBreak is the focus cadence: every 4th completed focus
// session is followed by a long break.
const SessionsUntilLongBreak = 4

var Kinds = []Kind{KindFocus, KindShortBreak, KindLongBreak}

// Duration is the full length of a session in seconds.
func (k Kind) Duration() int {
	switch k {
	case KindShortBreak:
		return 5 * 60
	case KindLongBreak:
		return 15 * 60
	default:
		return 25 * 60
	}
}

func ParseKind(value string) (Kind, error) {
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(value))
	switch normalized {
	case "focus", "pomodoro":
		return KindFocus, nil
	case "shortbreak", "short":
		return KindShortBreak, nil
	case "longbreak", "long":
		return KindLongBreak, nil
	}
	return "", fmt.Errorf("%w: unknown session %q", apperrors.ErrInvalidInput, value)
}

// State is a read-only view of the timer.
type State struct {
	Kind         Kind
	Remaining    int
	Running      bool
	Completed    int
	LinkedTaskID string
}

// Completion describes a session that ran out. TaskID is set only for focus
// sessions with a linked task.
type Completion struct {
	Kind     Kind
	Duration int
	TaskID   string
}

// Timer is the pomodoro state machine. A running session is anchored to a
// wall-clock target so the countdown does not drift with tick jitter.
type Timer struct {
	kind      Kind
	remaining int
	running   bool
	target    time.Time
	completed int
	linked    string
}

func NewTimer() Timer {
	return Timer{kind: KindFocus, remaining: KindFocus.Duration()}
}

func (t *Timer) State() State {
	return State{
		Kind:         t.kind,
		Remaining:    t.remaining,
		Running:      t.running,
		Completed:    t.completed,
		LinkedTaskID: t.linked,
	}
}

// Toggle starts or pauses the session without resetting what remains.
func (t *Timer) Toggle(now time.Time) {
	if t.running {
		t.remaining = max(remainingAt(t.target, now), 0)
		t.running = false
		return
	}
	t.target = now.Add(time.Duration(t.remaining) * time.Second)
	t.running = true
}

// Tick recomputes the remaining time. When a running session reaches zero it
// reports the completion and moves on to the next session, paused at its full
// duration.
func (t *Timer) Tick(now time.Time) (Completion, bool) {
	if !t.running {
		return Completion{}, false
	}
	remaining := remainingAt(t.target, now)
	if remaining > 0 {
		t.remaining = remaining
		return Completion{}, false
	}

	done := Completion{Kind: t.kind, Duration: t.kind.Duration()}
	next := KindFocus
	if t.kind == KindFocus {
		done.TaskID = t.linked
		t.completed++
		next = KindShortBreak
		if t.completed%SessionsUntilLongBreak == 0 {
			next = KindLongBreak
		}
	}
	t.setKind(next)
	return done, true
}

// Switch abandons the current session without logging it.
func (t *Timer) Switch(kind Kind) {
	t.setKind(kind)
}

func (t *Timer) Reset() {
	t.setKind(t.kind)
}

// Link attaches a task to the timer. Only an unlinked timer accepts one.
func (t *Timer) Link(taskID string) error {
	if taskID == "" {
		return fmt.Errorf("%w: task id is required", apperrors.ErrInvalidInput)
	}
	if t.linked != "" {
		return fmt.Errorf("timer is linked to %s: %w", t.linked, apperrors.ErrTaskLinked)
	}
	t.linked = taskID
	return nil
}

func (t *Timer) Unlink() {
	t.linked = ""
}

func (t *Timer) setKind(kind Kind) {
	t.kind = kind
	t.remaining = kind.Duration()
	t.running = false
	t.target = time.Time{}
}

func remainingAt(target, now time.Time) int {
	return int(math.Round(target.Sub(now).Seconds()))
}
