// Package markdown renders the small markdown subset the assistant answers
// in: **bold** spans and "* " / "- " bullet lines.
package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bullet = "• "

// Render formats text for a terminal, styling bold spans with bold.
func Render(text string, bold lipgloss.Style) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = renderBold(renderBullet(line), func(s string) string { return bold.Render(s) })
	}
	return strings.Join(lines, "\n")
}

// Plain drops the markup, keeping bullets.
func Plain(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = renderBold(renderBullet(line), func(s string) string { return s })
	}
	return strings.Join(lines, "\n")
}

func renderBullet(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	for _, marker := range []string{"* ", "- "} {
		if strings.HasPrefix(trimmed, marker) {
			return indent + bullet + strings.TrimPrefix(trimmed, marker)
		}
	}
	return line
}

// renderBold replaces balanced ** pairs. An unmatched trailing ** is kept
// verbatim, which happens mid-stream while an answer is still arriving.
func renderBold(line string, style func(string) string) string {
	var b strings.Builder
	rest := line
	for {
		open := strings.Index(rest, "**")
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		closeIdx := strings.Index(rest[open+2:], "**")
		if closeIdx < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		b.WriteString(style(rest[open+2 : open+2+closeIdx]))
		rest = rest[open+2+closeIdx+2:]
	}
}
