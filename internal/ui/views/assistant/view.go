// Package assistant keeps the conversation transcript shown in the
// assistant tab.
package assistant

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"zenith/internal/platform/markdown"
	"zenith/internal/ui/theme"
)

type Entry struct {
	Question string
	Answer   string
	Error    string
	Pending  bool
}

type Model struct {
	entries  []Entry
	viewport viewport.Model
	styles   theme.Styles
}

func New() Model {
	return Model{viewport: viewport.New(0, 0)}
}

// Begin starts a new exchange. It reports false while another answer is
// still streaming.
func (m *Model) Begin(question string) bool {
	if m.Busy() {
		return false
	}
	m.entries = append(m.entries, Entry{Question: question, Pending: true})
	m.refresh()
	return true
}

func (m Model) Busy() bool {
	return len(m.entries) > 0 && m.entries[len(m.entries)-1].Pending
}

func (m *Model) Append(chunk string) {
	if !m.Busy() {
		return
	}
	m.entries[len(m.entries)-1].Answer += chunk
	m.refresh()
}

// Finish closes the pending exchange. A non-empty errText is shown under
// whatever partial answer already arrived.
func (m *Model) Finish(answer, errText string) {
	if !m.Busy() {
		return
	}
	last := &m.entries[len(m.entries)-1]
	if answer != "" {
		last.Answer = answer
	}
	last.Error = errText
	last.Pending = false
	m.refresh()
}

func (m Model) Entries() []Entry { return m.entries }

func (m *Model) SetSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = max(1, h)
	m.refresh()
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
	m.refresh()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.entries) == 0 {
		return m.styles.Muted.Render("Ask about your tasks, goals, finances or pipeline with :ask <question>")
	}
	return m.viewport.View()
}

func (m *Model) refresh() {
	var sb strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Title.Render("you: ") + e.Question + "\n")
		answer := markdown.Render(e.Answer, m.styles.Hot)
		if e.Pending && e.Answer == "" {
			answer = m.styles.Muted.Render("thinking…")
		}
		sb.WriteString(answer + "\n")
		if e.Error != "" {
			sb.WriteString(m.styles.Bad.Render(e.Error) + "\n")
		}
	}
	m.viewport.SetContent(strings.TrimRight(sb.String(), "\n"))
	m.viewport.GotoBottom()
}
