package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"zenith/internal/platform/clock"
	apperrors "zenith/internal/platform/errors"
)

type Type string

const (
	TypeIncome  Type = "Income"
	TypeExpense Type = "Expense"
)

var (
	ExpenseCategories = []string{"Housing", "Food", "Transport", "Utilities", "Leisure", "Health", "Education", "Shopping", "Other"}
	IncomeCategories  = []string{"Salary", "Extra Income", "Investments", "Gifts", "Other"}
)

func ParseType(value string) (Type, error) {
	for _, t := range []Type{TypeIncome, TypeExpense} {
		if strings.EqualFold(value, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrInvalidInput, value)
}

// Categories returns the fixed category list for a transaction type.
func Categories(t Type) []string {
	if t == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ParseCategory matches value case-insensitively against the list for t.
func ParseCategory(t Type, value string) (string, error) {
	for _, c := range Categories(t) {
		if strings.EqualFold(strings.TrimSpace(value), c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a %s category", apperrors.ErrInvalidInput, value, strings.ToLower(string(t)))
}

// Transaction amounts are magnitudes; the type carries the sign.
type Transaction struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Type      Type      `json:"type"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: transaction title is required", apperrors.ErrInvalidInput)
	}
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("%w: amount must be a non-negative number", apperrors.ErrInvalidInput)
	}
	if _, err := ParseType(string(t.Type)); err != nil {
		return err
	}
	if !slices.Contains(Categories(t.Type), t.Category) {
		return fmt.Errorf("%w: %q is not a %s category", apperrors.ErrInvalidInput, t.Category, strings.ToLower(string(t.Type)))
	}
	if _, err := clock.ParseDate(t.Date, time.UTC); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrInvalidInput)
	}
	return nil
}

// Signed is the amount as it affects the balance.
func (t Transaction) Signed() float64 {
	if t.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}
