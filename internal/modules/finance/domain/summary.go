package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
)

type Period string

const (
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(value string) (Period, error) {
	switch strings.ToLower(value) {
	case "", "month", "monthly":
		return PeriodMonth, nil
	case "year", "yearly":
		return PeriodYear, nil
	}
	return "", fmt.Errorf("%w: unknown period %q", apperrors.ErrInvalidInput, value)
}

// Contains reports whether date (YYYY-MM-DD) falls in the period around anchor.
func (p Period) Contains(anchor time.Time, date string) bool {
	d, err := clock.ParseDate(date, anchor.Location())
	if err != nil {
		return false
	}
	if d.Year() != anchor.Year() {
		return false
	}
	return p == PeriodYear || d.Month() == anchor.Month()
}

// Shift moves anchor by n months or n years.
func (p Period) Shift(anchor time.Time, n int) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	if p == PeriodYear {
		return first.AddDate(n, 0, 0)
	}
	return first.AddDate(0, n, 0)
}

type CategorySpend struct {
	Category string
	Amount   float64
	// Percent of total expenses in the period.
	Percent float64
}

type Summary struct {
	Period       Period
	Anchor       time.Time
	Income       float64
	Expenses     float64
	Balance      float64
	ByCategory   []CategorySpend
	Transactions []Transaction
}

// Summarize totals the transactions dated inside the period. Spending by
// category is sorted by amount, largest first, and is empty when nothing
// was spent.
func Summarize(txs []Transaction, period Period, anchor time.Time) Summary {
	s := Summary{Period: period, Anchor: anchor}
	spent := map[string]float64{}
	for _, t := range txs {
		if !period.Contains(anchor, t.Date) {
			continue
		}
		s.Transactions = append(s.Transactions, t)
		switch t.Type {
		case TypeIncome:
			s.Income += t.Amount
		case TypeExpense:
			s.Expenses += t.Amount
			spent[t.Category] += t.Amount
		}
	}
	s.Balance = s.Income - s.Expenses
	if s.Expenses == 0 {
		return s
	}
	for category, amount := range spent {
		s.ByCategory = append(s.ByCategory, CategorySpend{
			Category: category,
			Amount:   amount,
			Percent:  amount / s.Expenses * 100,
		})
	}
	slices.SortFunc(s.ByCategory, func(a, b CategorySpend) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return s
}
