package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zenith/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// Hints must stay in sync with the switch in app/commands.go.
var Hints = []string{
	"task:add <title> [| priority] [| yyyy-mm-dd]",
	"task:move <Todo|Doing|Done>",
	"task:delete",
	"contact:add <name> [| company] [| email] [| phone]",
	"contact:delete",
	"prospect:promote [stage]",
	"prospect:move <stage>",
	"prospect:followup <yyyy-mm-dd>",
	"prospect:delete",
	"stage:init",
	"stage:add <name>",
	"stage:rename <old> | <new>",
	"stage:delete <name>",
	"routine:add <title> | HH:MM | HH:MM | mon,wed [| color]",
	"routine:delete <title>",
	"routine:export",
	"calendar:next",
	"calendar:prev",
	"calendar:today",
	"goal:add <short|medium|long> <title> [| yyyy-mm-dd]",
	"goal:link [task title]",
	"goal:unlink [task title]",
	"goal:delete",
	"finance:add <income|expense> <amount> <category> <title>",
	"finance:delete",
	"finance:period <month|year>",
	"finance:next",
	"finance:prev",
	"pomodoro:toggle",
	"pomodoro:reset",
	"pomodoro:switch <focus|short|long>",
	"pomodoro:link [task title]",
	"pomodoro:unlink",
	"pomodoro:finish",
	"ask <question>",
	"theme <light|dark>",
	"accent <purple|blue|green|orange|pink>",
	"settings:export [path]",
	"settings:import <path>",
	"settings:clear",
}

// Palette is a command-palette overlay backed by bubbles/textinput. It
// remembers submitted commands for up/down recall and completes the command
// word on tab.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

const maxShownHints = 6

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 512
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, optionally prefilled, and returns the focus command.
func (p *Palette) Open(prefill string) tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue(prefill)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// History returns submitted commands, oldest first.
func (p Palette) History() []string { return p.history }

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(val string) {
	if val == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == val {
		return
	}
	p.history = append(p.history, val)
}

func (p *Palette) show(val string) {
	p.input.SetValue(val)
	p.input.CursorEnd()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.recall > 0 {
				p.recall--
				p.show(p.history[p.recall])
			}
			return p, nil
		case "down":
			if p.recall < len(p.history) {
				p.recall++
			}
			if p.recall == len(p.history) {
				p.show("")
			} else {
				p.show(p.history[p.recall])
			}
			return p, nil
		case "tab":
			if matches := Match(p.input.Value()); len(matches) > 0 {
				p.show(command(matches[0]) + " ")
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Match returns the hints whose command word starts with the typed command,
// or, once arguments are being typed, the hints for that exact command.
func Match(input string) []string {
	input = strings.ToLower(strings.TrimLeft(input, " "))
	typed, _, hasArgs := strings.Cut(input, " ")
	var out []string
	for _, h := range Hints {
		name := command(h)
		if hasArgs && name == typed || !hasArgs && strings.HasPrefix(name, typed) {
			out = append(out, h)
		}
	}
	return out
}

func command(hint string) string {
	name, _, _ := strings.Cut(hint, " ")
	return name
}

func (p Palette) View(styles theme.Styles) string {
	if !p.visible {
		return ""
	}
	matching := Match(p.input.Value())
	more := len(matching) - maxShownHints
	if more > 0 {
		matching = matching[:maxShownHints]
	}

	lines := []string{
		styles.Title.Render("Command Palette"),
		": " + p.input.View(),
	}
	if len(matching) > 0 {
		lines = append(lines, "")
		for _, h := range matching {
			lines = append(lines, styles.Muted.Render("  "+h))
		}
		if more > 0 {
			lines = append(lines, styles.Muted.Render(fmt.Sprintf("  … %d more (tab completes)", more)))
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.Colors.Mantle).
		Foreground(styles.Colors.Text).
		Padding(0, 1).
		Width(w - 2).
		Render(strings.Join(lines, "\n"))
}
