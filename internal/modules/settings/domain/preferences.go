package domain

import (
	"fmt"
	"strings"

	apperrors "zenith/internal/platform/errors"
)

const (
	KeyTheme  = "zenith-theme"
	KeyAccent = "zenith-accent"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Accent string

const (
	AccentPurple Accent = "purple"
	AccentBlue   Accent = "blue"
	AccentGreen  Accent = "green"
	AccentOrange Accent = "orange"
	AccentPink   Accent = "pink"
)

var Accents = []Accent{AccentPurple, AccentBlue, AccentGreen, AccentOrange, AccentPink}

var accentHex = map[Accent]string{
	AccentPurple: "#8b5cf6",
	AccentBlue:   "#3b82f6",
	AccentGreen:  "#22c55e",
	AccentOrange: "#f97316",
	AccentPink:   "#ec4899",
}

// Hex is the highlight color for the accent.
func (a Accent) Hex() string {
	if hex, ok := accentHex[a]; ok {
		return hex
	}
	return accentHex[AccentPurple]
}

type Preferences struct {
	Theme  Theme
	Accent Accent
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDark, Accent: AccentPurple}
}

func ParseTheme(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: theme must be light or dark, got %q", apperrors.ErrInvalidInput, value)
}

func ParseAccent(value string) (Accent, error) {
	a := Accent(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := accentHex[a]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown accent %q", apperrors.ErrInvalidInput, value)
}

// PreferencesFrom reads stored values, falling back per field on anything
// missing or unrecognised.
func PreferencesFrom(theme, accent string) Preferences {
	p := DefaultPreferences()
	if t, err := ParseTheme(theme); err == nil {
		p.Theme = t
	}
	if a, err := ParseAccent(accent); err == nil {
		p.Accent = a
	}
	return p
}
