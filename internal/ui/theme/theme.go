package theme

import "github.com/charmbracelet/lipgloss"

// Colors is one Catppuccin flavour.
type Colors struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Green    lipgloss.Color
	Red      lipgloss.Color
}

var (
	Mocha = Colors{
		Base:     lipgloss.Color("#1e1e2e"),
		Mantle:   lipgloss.Color("#181825"),
		Surface0: lipgloss.Color("#313244"),
		Surface1: lipgloss.Color("#45475a"),
		Text:     lipgloss.Color("#cdd6f4"),
		Subtext0: lipgloss.Color("#a6adc8"),
		Green:    lipgloss.Color("#a6e3a1"),
		Red:      lipgloss.Color("#f38ba8"),
	}
	Latte = Colors{
		Base:     lipgloss.Color("#eff1f5"),
		Mantle:   lipgloss.Color("#e6e9ef"),
		Surface0: lipgloss.Color("#ccd0da"),
		Surface1: lipgloss.Color("#bcc0cc"),
		Text:     lipgloss.Color("#4c4f69"),
		Subtext0: lipgloss.Color("#6c6f85"),
		Green:    lipgloss.Color("#40a02b"),
		Red:      lipgloss.Color("#d20f39"),
	}
)

// Styles are derived from the theme and accent preferences.
type Styles struct {
	Colors Colors
	Accent lipgloss.Color

	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Bar        lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
	Selected   lipgloss.Style
}

// New builds styles for "light" or "dark" with the given accent hex.
func New(theme, accentHex string) Styles {
	c := Mocha
	if theme == "light" {
		c = Latte
	}
	accent := lipgloss.Color(accentHex)
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.Surface1).
		Foreground(c.Text).
		Padding(0, 1)
	return Styles{
		Colors:     c,
		Accent:     accent,
		Pane:       pane,
		PaneActive: pane.BorderForeground(accent),
		Bar:        lipgloss.NewStyle().Background(c.Mantle).Foreground(c.Text),
		Title:      lipgloss.NewStyle().Foreground(accent).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(c.Subtext0),
		Hot:        lipgloss.NewStyle().Foreground(accent).Bold(true),
		Good:       lipgloss.NewStyle().Foreground(c.Green),
		Bad:        lipgloss.NewStyle().Foreground(c.Red),
		Selected:   lipgloss.NewStyle().Foreground(c.Base).Background(accent),
	}
}
