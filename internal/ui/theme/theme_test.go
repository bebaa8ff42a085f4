package theme_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"zenith/internal/ui/theme"
)

func TestNewPicksFlavourAndAccent(t *testing.T) {
	t.Parallel()
	dark := theme.New("dark", "#8b5cf6")
	if dark.Colors != theme.Mocha {
		t.Fatalf("expected mocha for dark theme")
	}
	light := theme.New("light", "#22c55e")
	if light.Colors != theme.Latte {
		t.Fatalf("expected latte for light theme")
	}
	if light.Accent != lipgloss.Color("#22c55e") {
		t.Fatalf("unexpected accent %v", light.Accent)
	}
}
