package domain_test

import (
	"errors"
	"testing"

	"zenith/internal/modules/pipeline/domain"
	apperrors "zenith/internal/platform/errors"
)

func stages(names ...string) []domain.Stage {
	out := make([]domain.Stage, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Stage{ID: "id-" + n, Name: n})
	}
	return out
}

func TestFallbackStage(t *testing.T) {
	t.Parallel()
	got, err := domain.FallbackStage(stages("New", "Won", "Lost"), "New")
	if err != nil || got != "Won" {
		t.Fatalf("expected Won, got %q (%v)", got, err)
	}
	got, err = domain.FallbackStage(stages("New", "Won"), "Won")
	if err != nil || got != "New" {
		t.Fatalf("expected New, got %q (%v)", got, err)
	}
	if _, err := domain.FallbackStage(stages("New"), "New"); !errors.Is(err, apperrors.ErrLastStage) {
		t.Fatalf("expected last stage error, got %v", err)
	}
}

func TestInitialStage(t *testing.T) {
	t.Parallel()
	if got := domain.InitialStage(nil); got != domain.DefaultStageName {
		t.Fatalf("expected default stage, got %q", got)
	}
	if got := domain.InitialStage(stages("Lead", "Won")); got != "Lead" {
		t.Fatalf("expected first stage, got %q", got)
	}
}

func TestBoardJoinsContactsAndKeepsUnknownStages(t *testing.T) {
	t.Parallel()
	prospects := []domain.Prospect{
		{ID: "p1", ContactID: "c1", Stage: "Won"},
		{ID: "p2", ContactID: "gone", Stage: "New"},
		{ID: "p3", ContactID: "c1", Stage: "Legacy"},
	}
	lookup := func(id string) (domain.ContactRef, bool) {
		if id == "c1" {
			return domain.ContactRef{ID: "c1", Name: "Ada", Company: "AE"}, true
		}
		return domain.ContactRef{}, false
	}
	lanes := domain.Board(stages("New", "Won"), prospects, lookup)
	if len(lanes) != 3 || lanes[2].Stage != "Legacy" {
		t.Fatalf("unexpected lanes: %+v", lanes)
	}
	if !lanes[0].Cards[0].Orphaned {
		t.Fatalf("prospect with missing contact must be orphaned")
	}
	if lanes[1].Cards[0].Contact.Company != "AE" {
		t.Fatalf("expected contact join, got %+v", lanes[1].Cards[0])
	}
}
