// Package finance renders the period summary with a per-category breakdown.
package finance

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	financedto "zenith/internal/modules/finance/dto"
	"zenith/internal/ui/theme"
)

func Money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%.2f", sign, v)
}

func PeriodLabel(s financedto.SummaryOutput) string {
	if s.Period == "year" {
		return s.Anchor.Format("2006")
	}
	return s.Anchor.Format("January 2006")
}

func Render(s financedto.SummaryOutput, width int, styles theme.Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(PeriodLabel(s)) + "\n\n")
	sb.WriteString(styles.Muted.Render("income   ") + styles.Good.Render(Money(s.Income)) + "\n")
	sb.WriteString(styles.Muted.Render("expenses ") + styles.Bad.Render(Money(s.Expenses)) + "\n")
	balance := styles.Good.Render(Money(s.Balance))
	if s.Balance < 0 {
		balance = styles.Bad.Render(Money(s.Balance))
	}
	sb.WriteString(styles.Muted.Render("balance  ") + balance + "\n\n")

	if len(s.ByCategory) == 0 {
		sb.WriteString(styles.Muted.Render("no expenses in this period"))
		return sb.String()
	}
	bar := progress.New(progress.WithSolidFill(string(styles.Accent)), progress.WithoutPercentage())
	bar.Width = max(8, min(30, width-36))
	sb.WriteString(styles.Title.Render("Spending by category") + "\n")
	for _, c := range s.ByCategory {
		sb.WriteString(fmt.Sprintf("%-14s %s %5.1f%% %s\n", c.Category, bar.ViewAs(c.Percent/100), c.Percent, Money(c.Amount)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
