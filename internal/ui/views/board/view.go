// Package board renders a horizontal set of columns with a card cursor. The
// task Kanban and the sales pipeline both use it.
package board

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zenith/internal/ui/theme"
)

type Card struct {
	ID    string
	Title string
	Meta  string
}

type Column struct {
	Title string
	Cards []Card
}

type Model struct {
	columns []Column
	col     int
	row     int
	width   int
	height  int
}

func New() Model {
	return Model{}
}

// SetColumns replaces the data, keeping the cursor on the same card when it
// still exists.
func (m *Model) SetColumns(columns []Column) {
	selected, hadSelection := m.Selected()
	m.columns = columns
	if hadSelection {
		for c, column := range columns {
			for r, card := range column.Cards {
				if card.ID == selected.ID {
					m.col, m.row = c, r
					return
				}
			}
		}
	}
	m.clamp()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Columns() []Column { return m.columns }

func (m Model) Selected() (Card, bool) {
	if m.col < 0 || m.col >= len(m.columns) {
		return Card{}, false
	}
	cards := m.columns[m.col].Cards
	if m.row < 0 || m.row >= len(cards) {
		return Card{}, false
	}
	return cards[m.row], true
}

func (m Model) SelectedColumn() (string, bool) {
	if m.col < 0 || m.col >= len(m.columns) {
		return "", false
	}
	return m.columns[m.col].Title, true
}

func (m Model) Update(msg tea.Msg) Model {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	switch key.String() {
	case "left", "h":
		m.col--
	case "right", "l":
		m.col++
	case "up", "k":
		m.row--
	case "down", "j":
		m.row++
	}
	m.clamp()
	return m
}

func (m *Model) clamp() {
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	n := 0
	if m.col < len(m.columns) {
		n = len(m.columns[m.col].Cards)
	}
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m Model) View(styles theme.Styles, empty string) string {
	if len(m.columns) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.Muted.Render(empty))
	}
	colW := m.width / len(m.columns)
	if colW < 16 {
		colW = 16
	}
	visible := (m.height - 4) / 2
	if visible < 1 {
		visible = 1
	}

	panes := make([]string, 0, len(m.columns))
	for c, column := range m.columns {
		var sb strings.Builder
		sb.WriteString(styles.Title.Render(fmt.Sprintf("%s (%d)", column.Title, len(column.Cards))) + "\n")
		offset := 0
		if c == m.col && m.row >= visible {
			offset = m.row - visible + 1
		}
		for r := offset; r < len(column.Cards) && r < offset+visible; r++ {
			card := column.Cards[r]
			title := truncate(card.Title, colW-4)
			if c == m.col && r == m.row {
				title = styles.Selected.Render(title)
			}
			sb.WriteString(title + "\n")
			sb.WriteString(styles.Muted.Render(truncate(card.Meta, colW-4)) + "\n")
		}
		style := styles.Pane
		if c == m.col {
			style = styles.PaneActive
		}
		panes = append(panes, style.Width(colW-2).Height(m.height-2).Render(strings.TrimRight(sb.String(), "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}
