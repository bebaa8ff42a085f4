// Package pomodoro renders the timer panel and today's sessions.
package pomodoro

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	pomodorodto "zenith/internal/modules/pomodoro/dto"
	"zenith/internal/ui/theme"
)

func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func Render(state pomodorodto.TimerOutput, today pomodorodto.TodayOutput, width int, styles theme.Styles) string {
	bar := progress.New(progress.WithSolidFill(string(styles.Accent)), progress.WithoutPercentage())
	bar.Width = max(10, min(50, width-8))
	done := 0.0
	if state.Duration > 0 {
		done = 1 - float64(state.Remaining)/float64(state.Duration)
	}

	status := styles.Muted.Render("paused")
	if state.Running {
		status = styles.Good.Render("running")
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(state.Kind) + "  " + status + "\n\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(Clock(state.Remaining)) + "\n")
	sb.WriteString(bar.ViewAs(done) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %d\n", styles.Muted.Render("focus sessions this cycle:"), state.Completed))
	switch {
	case state.LinkedTaskTitle != "":
		sb.WriteString(styles.Muted.Render("working on: ") + styles.Hot.Render(state.LinkedTaskTitle) + "\n")
	case state.LinkedTaskID != "":
		sb.WriteString(styles.Muted.Render("linked task no longer exists") + "\n")
	}
	sb.WriteString("\n" + styles.Muted.Render("space: start/pause  r: reset  1/2/3: focus/short/long") + "\n\n")

	sb.WriteString(styles.Title.Render(fmt.Sprintf("Today  %d min focused", today.FocusSeconds/60)) + "\n")
	if len(today.Sessions) == 0 {
		sb.WriteString(styles.Muted.Render("no sessions yet"))
	}
	for _, s := range today.Sessions {
		line := fmt.Sprintf("%s  %-11s %s", s.Timestamp.Format("15:04"), s.Kind, Clock(s.Duration))
		if s.LinkedTaskTitle != "" {
			line += "  " + styles.Muted.Render(s.LinkedTaskTitle)
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
