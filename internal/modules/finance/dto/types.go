package dto

import "time"

type TransactionInput struct {
	Title    string
	Amount   float64
	Type     string
	Category string
	Date     string
}

type UpdateInput struct {
	ID       string
	Title    *string
	Amount   *float64
	Type     *string
	Category *string
	Date     *string
}

type TransactionOutput struct {
	ID        string
	CreatedAt time.Time
	Title     string
	Amount    float64
	// Signed is negative for expenses.
	Signed   float64
	Type     string
	Category string
	Date     string
}

type CategorySpendOutput struct {
	Category string
	Amount   float64
	Percent  float64
}

type SummaryOutput struct {
	Period       string
	Anchor       time.Time
	Income       float64
	Expenses     float64
	Balance      float64
	ByCategory   []CategorySpendOutput
	Transactions []TransactionOutput
}

type CategoriesOutput struct {
	Income  []string
	Expense []string
}
