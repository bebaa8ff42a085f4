// Package calendar draws the routine time grid.
package calendar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	routinedto "zenith/internal/modules/routine/dto"
	"zenith/internal/ui/theme"
)

const gutter = 6

// Unit picks how many terminal lines one hour gets for the given height.
func Unit(height, rows int) int {
	if rows <= 0 {
		return 1
	}
	return max(1, min(3, (height-2)/rows))
}

// Render lays out one column per day. Event rows come from the placed Top and
// Height values, which are already expressed in lines.
func Render(out routinedto.CalendarOutput, width, unit int, today time.Time, styles theme.Styles) string {
	if len(out.Days) == 0 {
		return styles.Muted.Render("no days to show")
	}
	lines := out.Rows * unit
	colW := max(8, (width-gutter)/len(out.Days))

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", gutter))
	for _, day := range out.Days {
		label := pad(day.Date.Format("Mon 02"), colW)
		if sameDay(day.Date, today) {
			label = styles.Hot.Render(label)
		} else {
			label = styles.Title.Render(label)
		}
		header.WriteString(label)
	}

	columns := make([][]string, len(out.Days))
	for i, day := range out.Days {
		columns[i] = renderDay(day, lines, colW, styles)
	}

	var sb strings.Builder
	sb.WriteString(header.String() + "\n")
	for line := 0; line < lines; line++ {
		if line%unit == 0 {
			sb.WriteString(styles.Muted.Render(fmt.Sprintf("%02d:00 ", out.StartHour+line/unit)))
		} else {
			sb.WriteString(strings.Repeat(" ", gutter))
		}
		for _, col := range columns {
			sb.WriteString(col[line])
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderDay(day routinedto.CalendarDay, lines, width int, styles theme.Styles) []string {
	blank := styles.Muted.Render(pad("·", width))
	col := make([]string, lines)
	for i := range col {
		col[i] = blank
	}
	for _, e := range day.Events {
		top := int(math.Round(e.Top))
		height := max(1, int(math.Round(e.Height)))
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(e.Color)).
			Foreground(lipgloss.Color("#ffffff"))
		for i := 0; i < height; i++ {
			line := top + i
			if line < 0 || line >= lines {
				continue
			}
			text := ""
			switch i {
			case 0:
				text = e.Title
			case 1:
				text = e.StartTime + "-" + e.EndTime
			}
			col[line] = block.Render(pad(" "+text, width-1)) + " "
		}
	}
	return col
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
