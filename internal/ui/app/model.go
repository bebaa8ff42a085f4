package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	assistantdto "zenith/internal/modules/assistant/dto"
	financedto "zenith/internal/modules/finance/dto"
	pomodorodto "zenith/internal/modules/pomodoro/dto"
	routinedto "zenith/internal/modules/routine/dto"
	settingsdto "zenith/internal/modules/settings/dto"
	"zenith/internal/ui/components"
	"zenith/internal/ui/theme"
	assistantview "zenith/internal/ui/views/assistant"
	boardview "zenith/internal/ui/views/board"
	calendarview "zenith/internal/ui/views/calendar"
	financeview "zenith/internal/ui/views/finance"
	pomodoroview "zenith/internal/ui/views/pomodoro"
	rowsview "zenith/internal/ui/views/rows"
)

type tabID int

const (
	tabTasks tabID = iota
	tabPipeline
	tabContacts
	tabCalendar
	tabGoals
	tabFinance
	tabPomodoro
	tabAssistant
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{
	"Tasks", "Pipeline", "Contacts", "Calendar", "Goals", "Finance", "Pomodoro", "Assistant", "Settings",
}

// resultMsg reports the outcome of a write issued from the UI.
type resultMsg struct {
	text string
	err  error
}

type prefsMsg struct {
	prefs settingsdto.PreferencesOutput
	text  string
	err   error
}

type askChunkMsg struct {
	text string
	ch   <-chan tea.Msg
}

type askDoneMsg struct {
	out assistantdto.AskOutput
	err error
}

type keyMap struct {
	Tab     key.Binding
	Back    key.Binding
	Help    key.Binding
	Palette key.Binding
	Add     key.Binding
	Delete  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Back:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Back},
		{k.Add, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// Model is the root Bubble Tea model. It routes tabs, owns the palette and
// re-reads module state whenever a ChangedMsg arrives.
type Model struct {
	deps Deps

	tasks    boardview.Model
	pipeline boardview.Model
	contacts rowsview.Model
	goals    rowsview.Model
	txs      rowsview.Model
	chat     assistantview.Model

	calendar     routinedto.CalendarOutput
	calendarErr  error
	calendarDate time.Time
	calendarUnit int
	summary      financedto.SummaryOutput
	period       string
	anchor       time.Time
	timer        pomodorodto.TimerOutput
	today        pomodorodto.TodayOutput
	prefs        settingsdto.PreferencesOutput
	styles       theme.Styles

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	now := deps.Now()
	m := Model{
		deps:         deps,
		tasks:        boardview.New(),
		pipeline:     boardview.New(),
		contacts:     rowsview.New("Contacts"),
		goals:        rowsview.New("Goals"),
		txs:          rowsview.New("Transactions"),
		chat:         assistantview.New(),
		calendarDate: now,
		calendarUnit: 1,
		period:       "month",
		anchor:       time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
	m.applyPrefs(deps.Settings.Show(context.Background()))
	for _, source := range []string{SourceTasks, SourceContacts, SourceProspects, SourceGoals, SourceRoutines, SourceTransactions, SourceHistory} {
		m.reload(source)
	}
	m.timer = deps.Pomodoro.State(context.Background())
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChangedMsg:
		m.reload(msg.Source)
		return m, nil
	case TimerMsg:
		m.timer = msg.State
		return m, nil
	case resultMsg:
		m.status = msg.text
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
		}
		return m, nil
	case prefsMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.applyPrefs(msg.prefs)
		m.status = msg.text
		return m, nil
	case askChunkMsg:
		m.chat.Append(msg.text)
		return m, waitFor(msg.ch)
	case askDoneMsg:
		switch {
		case msg.err != nil:
			m.chat.Finish("", msg.err.Error())
		default:
			m.chat.Finish(msg.out.Answer, msg.out.Error)
		}
		return m, nil
	}

	if _, resize := msg.(tea.WindowSizeMsg); m.palette.Visible() && !resize {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		m.reload(SourceRoutines)
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open("")
			return m, cmd
		case "a":
			if prefill, ok := addPrefill[m.activeTab]; ok {
				cmd := m.palette.Open(prefill)
				return m, cmd
			}
		case "d":
			if prefill, ok := deletePrefill[m.activeTab]; ok {
				cmd := m.palette.Open(prefill)
				return m, cmd
			}
		}
		return m.updateTab(msg)
	}

	if m.activeTab == tabAssistant {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

var addPrefill = map[tabID]string{
	tabTasks:     "task:add ",
	tabContacts:  "contact:add ",
	tabPipeline:  "stage:add ",
	tabCalendar:  "routine:add ",
	tabGoals:     "goal:add short ",
	tabFinance:   "finance:add expense ",
	tabAssistant: "ask ",
}

var deletePrefill = map[tabID]string{
	tabTasks:    "task:delete",
	tabContacts: "contact:delete",
	tabPipeline: "prospect:delete",
	tabCalendar: "routine:delete ",
	tabGoals:    "goal:delete",
	tabFinance:  "finance:delete",
}

func (m Model) updateTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case tabTasks:
		m.tasks = m.tasks.Update(msg)
	case tabPipeline:
		m.pipeline = m.pipeline.Update(msg)
	case tabContacts:
		if msg.String() == "p" {
			return m.executePalette("prospect:promote")
		}
		m.contacts = m.contacts.Update(msg)
	case tabGoals:
		m.goals = m.goals.Update(msg)
	case tabFinance:
		m.txs = m.txs.Update(msg)
	case tabCalendar:
		switch msg.String() {
		case "left", "h":
			return m.executePalette("calendar:prev")
		case "right", "l":
			return m.executePalette("calendar:next")
		case "t":
			return m.executePalette("calendar:today")
		}
	case tabPomodoro:
		switch msg.String() {
		case " ", "space":
			return m.executePalette("pomodoro:toggle")
		case "r":
			return m.executePalette("pomodoro:reset")
		case "1":
			return m.executePalette("pomodoro:switch focus")
		case "2":
			return m.executePalette("pomodoro:switch short")
		case "3":
			return m.executePalette("pomodoro:switch long")
		}
	case tabAssistant:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View(m.styles))
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTasks:
		return m.tasks.View(m.styles, "No tasks yet. Press a to add one.")
	case tabPipeline:
		return m.pipeline.View(m.styles, "No stages yet. Run :stage:init to create the defaults.")
	case tabContacts:
		return m.contacts.View(m.styles, "No contacts yet. Press a to add one.")
	case tabCalendar:
		if m.calendarErr != nil {
			return m.styles.Bad.Render(m.calendarErr.Error())
		}
		return calendarview.Render(m.calendar, m.width, m.calendarUnit, m.deps.Now(), m.styles)
	case tabGoals:
		return m.goals.View(m.styles, "No goals yet. Press a to add one.")
	case tabFinance:
		left := financeview.Render(m.summary, m.width/2, m.styles)
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.width/2).Render(left),
			m.txs.View(m.styles, "No transactions in this period."))
	case tabPomodoro:
		return pomodoroview.Render(m.timer, m.today, m.width, m.styles)
	case tabAssistant:
		return m.chat.View()
	case tabSettings:
		return m.renderSettings()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := " " + tabLabels[i] + " "
		if i == m.activeTab {
			parts[i] = m.styles.Hot.Render(label)
		} else {
			parts[i] = m.styles.Muted.Render(label)
		}
	}
	bar := "zenith  " + strings.Join(parts, m.styles.Muted.Render("│"))
	return m.styles.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.timer.Running {
		left = m.styles.Hot.Render("● "+m.timer.Kind+" "+pomodoroview.Clock(m.timer.Remaining)) + "  " + left
	}
	right := m.styles.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return "\n" + m.styles.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) renderSettings() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Appearance") + "\n\n")
	sb.WriteString(fmt.Sprintf("theme   %s\n", m.prefs.Theme))
	sb.WriteString(fmt.Sprintf("accent  %s %s\n\n", m.prefs.Accent, lipgloss.NewStyle().Foreground(m.styles.Accent).Render("■■■")))
	sb.WriteString(m.styles.Title.Render("Data") + "\n\n")
	for _, line := range []string{
		":theme <light|dark>",
		":accent <purple|blue|green|orange|pink>",
		":settings:export [path]   write a JSON backup",
		":settings:import <path>   restore a backup",
		":settings:clear           forget local preferences",
	} {
		sb.WriteString(m.styles.Muted.Render(line) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) applyPrefs(p settingsdto.PreferencesOutput) {
	m.prefs = p
	m.styles = theme.New(p.Theme, p.AccentHex)
	m.chat.SetStyles(m.styles)
}

func (m *Model) propagateSize() {
	h := max(1, m.height-4)
	m.tasks.SetSize(m.width, h)
	m.pipeline.SetSize(m.width, h)
	m.contacts.SetSize(m.width, h)
	m.goals.SetSize(m.width, h)
	m.txs.SetSize(m.width-m.width/2, h)
	m.chat.SetSize(m.width, h)
}

func waitFor(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
