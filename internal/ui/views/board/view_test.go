package board_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"zenith/internal/ui/views/board"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorMovesAndFollowsCardAcrossRefresh(t *testing.T) {
	t.Parallel()
	m := board.New()
	m.SetColumns([]board.Column{
		{Title: "Todo", Cards: []board.Card{{ID: "a"}, {ID: "b"}}},
		{Title: "Doing"},
		{Title: "Done", Cards: []board.Card{{ID: "c"}}},
	})
	m = m.Update(key("j"))
	if card, _ := m.Selected(); card.ID != "b" {
		t.Fatalf("expected b, got %q", card.ID)
	}

	m.SetColumns([]board.Column{
		{Title: "Todo", Cards: []board.Card{{ID: "a"}}},
		{Title: "Doing", Cards: []board.Card{{ID: "b"}}},
		{Title: "Done", Cards: []board.Card{{ID: "c"}}},
	})
	card, ok := m.Selected()
	if !ok || card.ID != "b" {
		t.Fatalf("expected cursor to follow b, got %q", card.ID)
	}
	if col, _ := m.SelectedColumn(); col != "Doing" {
		t.Fatalf("expected Doing column, got %q", col)
	}

	m = m.Update(key("l"))
	m = m.Update(key("l"))
	if col, _ := m.SelectedColumn(); col != "Done" {
		t.Fatalf("expected clamp at Done, got %q", col)
	}
}

func TestEmptyColumnHasNoSelection(t *testing.T) {
	t.Parallel()
	m := board.New()
	m.SetColumns([]board.Column{{Title: "Todo"}})
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected no selection")
	}
}
