package domain

import (
	"fmt"
	"strings"
	"time"

	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
)

// DefaultStageName is used for new prospects when no stage exists yet.
const DefaultStageName = "New"

// DefaultStages seeds an empty registry.
var DefaultStages = []string{"New", "Contacted", "Proposal", "Won", "Lost"}

type Prospect struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	ContactID    string    `json:"contactId"`
	Stage        string    `json:"stage"`
	Notes        string    `json:"notes,omitempty"`
	FollowUpDate string    `json:"followUpDate,omitempty"`
}

func (p Prospect) Validate() error {
	if strings.TrimSpace(p.ContactID) == "" {
		return fmt.Errorf("%w: prospect needs a contact", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Stage) == "" {
		return fmt.Errorf("%w: prospect needs a stage", apperrors.ErrInvalidInput)
	}
	if p.FollowUpDate != "" {
		if _, err := clock.ParseDate(p.FollowUpDate, time.UTC); err != nil {
			return fmt.Errorf("%w: follow-up date must be YYYY-MM-DD", apperrors.ErrInvalidInput)
		}
	}
	return nil
}

type Stage struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
}

// ContactRef is the part of a contact the pipeline displays.
type ContactRef struct {
	ID      string
	Name    string
	Company string
}

func NormalizeStageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: stage name is required", apperrors.ErrInvalidInput)
	}
	return name, nil
}

// StageNames returns the distinct names in registry order.
func StageNames(stages []Stage) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range stages {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		out = append(out, s.Name)
	}
	return out
}

func HasStage(stages []Stage, name string) bool {
	for _, s := range stages {
		if s.Name == name {
			return true
		}
	}
	return false
}

// InitialStage is where a freshly promoted contact lands.
func InitialStage(stages []Stage) string {
	if len(stages) == 0 {
		return DefaultStageName
	}
	return stages[0].Name
}

// FallbackStage picks the stage that inherits the prospects of deleted: the
// first other stage in registry order. The last remaining stage cannot be
// deleted.
func FallbackStage(stages []Stage, deleted string) (string, error) {
	if len(StageNames(stages)) <= 1 {
		return "", apperrors.ErrLastStage
	}
	for _, s := range stages {
		if s.Name != deleted {
			return s.Name, nil
		}
	}
	return "", apperrors.ErrLastStage
}

// StageDeletion reports what deleting a stage did.
type StageDeletion struct {
	Stage      string
	Fallback   string
	Reassigned int
	Deleted    int
}

type Card struct {
	Prospect Prospect
	Contact  ContactRef
	// Orphaned is set when the referenced contact no longer exists.
	Orphaned bool
}

type Lane struct {
	Stage string
	Cards []Card
}

// Board lays prospects out in stage order. Prospects on a stage missing from
// the registry get trailing lanes of their own.
func Board(stages []Stage, prospects []Prospect, lookup func(id string) (ContactRef, bool)) []Lane {
	var lanes []Lane
	index := map[string]int{}
	for _, name := range StageNames(stages) {
		index[name] = len(lanes)
		lanes = append(lanes, Lane{Stage: name})
	}
	for _, p := range prospects {
		i, ok := index[p.Stage]
		if !ok {
			i = len(lanes)
			index[p.Stage] = i
			lanes = append(lanes, Lane{Stage: p.Stage})
		}
		card := Card{Prospect: p}
		if contact, ok := lookup(p.ContactID); ok {
			card.Contact = contact
		} else {
			card.Orphaned = true
		}
		lanes[i].Cards = append(lanes[i].Cards, card)
	}
	return lanes
}
