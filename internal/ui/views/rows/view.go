// Package rows is a selectable list with optional section headers.
package rows

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zenith/internal/ui/theme"
)

type Row struct {
	ID     string
	Text   string
	Meta   string
	Header bool
}

type Model struct {
	title  string
	rows   []Row
	cursor int
	width  int
	height int
}

func New(title string) Model {
	return Model{title: title}
}

func (m *Model) SetRows(rows []Row) {
	selected, had := m.Selected()
	m.rows = rows
	if had {
		for i, r := range rows {
			if !r.Header && r.ID == selected.ID {
				m.cursor = i
				return
			}
		}
	}
	m.settle(1)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Selected() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) || m.rows[m.cursor].Header {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) Update(msg tea.Msg) Model {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	switch key.String() {
	case "up", "k":
		m.cursor--
		m.settle(-1)
	case "down", "j":
		m.cursor++
		m.settle(1)
	}
	return m
}

// settle moves the cursor off headers, looking in direction dir first.
func (m *Model) settle(dir int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(m.cursor, len(m.rows)-1))
	for _, d := range []int{dir, -dir} {
		for i := m.cursor; i >= 0 && i < len(m.rows); i += d {
			if !m.rows[i].Header {
				m.cursor = i
				return
			}
		}
	}
}

func (m Model) View(styles theme.Styles, empty string) string {
	var sb strings.Builder
	if m.title != "" {
		sb.WriteString(styles.Title.Render(m.title) + "\n\n")
	}
	if len(m.rows) == 0 {
		sb.WriteString(styles.Muted.Render(empty))
		return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(sb.String())
	}
	visible := m.height - 3
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if m.cursor >= visible {
		offset = m.cursor - visible + 1
	}
	for i := offset; i < len(m.rows) && i < offset+visible; i++ {
		r := m.rows[i]
		switch {
		case r.Header:
			sb.WriteString(styles.Hot.Render(r.Text))
		case i == m.cursor:
			sb.WriteString(styles.Selected.Render(" " + r.Text + " "))
		default:
			sb.WriteString(" " + r.Text + " ")
		}
		if r.Meta != "" {
			sb.WriteString("  " + styles.Muted.Render(r.Meta))
		}
		sb.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(strings.TrimRight(sb.String(), "\n"))
}
