package components_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenith/internal/ui/components"
	"zenith/internal/ui/theme"
)

func typeText(p components.Palette, text string) components.Palette {
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return p
}

func press(p components.Palette, k tea.KeyType) (components.Palette, tea.Msg) {
	p, cmd := p.Update(tea.KeyMsg{Type: k})
	if cmd == nil {
		return p, nil
	}
	return p, cmd()
}

func TestMatchFiltersByCommandWord(t *testing.T) {
	t.Parallel()
	got := components.Match("pomodoro:s")
	assert.Equal(t, []string{"pomodoro:switch <focus|short|long>"}, got)

	got = components.Match("task:add buy milk")
	assert.Equal(t, []string{"task:add <title> [| priority] [| yyyy-mm-dd]"}, got)

	assert.Len(t, components.Match(""), len(components.Hints))
	assert.Empty(t, components.Match("nope"))
}

func TestSubmitRemembersAndRecallsHistory(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open("")
	p = typeText(p, "stage:init")
	p, msg := press(p, tea.KeyEnter)
	require.Equal(t, components.PaletteSubmitMsg{Input: "stage:init"}, msg)
	assert.False(t, p.Visible())

	p.Open("")
	p = typeText(p, "calendar:next")
	p, _ = press(p, tea.KeyEnter)
	assert.Equal(t, []string{"stage:init", "calendar:next"}, p.History())

	p.Open("")
	p, _ = press(p, tea.KeyUp)
	p, _ = press(p, tea.KeyUp)
	p, msg = press(p, tea.KeyEnter)
	assert.Equal(t, components.PaletteSubmitMsg{Input: "stage:init"}, msg)
	assert.Equal(t, []string{"stage:init", "calendar:next", "stage:init"}, p.History())
}

func TestTabCompletesCommandWord(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open("")
	p = typeText(p, "routine:e")
	p, _ = press(p, tea.KeyTab)
	p, msg := press(p, tea.KeyEnter)
	assert.Equal(t, components.PaletteSubmitMsg{Input: "routine:export"}, msg)
}

func TestEscCancels(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open("task:add x")
	p, msg := press(p, tea.KeyEsc)
	assert.Equal(t, components.PaletteCancelMsg{}, msg)
	assert.Empty(t, p.History())
	assert.Empty(t, p.View(theme.New("dark", "#8b5cf6")))
}

func TestViewCapsHintList(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.SetWidth(100)
	p.Open("")
	view := p.View(theme.New("dark", "#8b5cf6"))
	assert.Contains(t, view, "Command Palette")
	assert.Contains(t, view, "task:add")
	assert.True(t, strings.Contains(view, "more (tab completes)"))
	assert.NotContains(t, view, "settings:clear")
}
