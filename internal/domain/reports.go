package domain

import "github.com/shopspring/decimal"

// Report rows are derived read-only views over a user's transactions; none
// of them is independently persisted.

// IncomesAndExpenses is one (year, month) bucket with at least one
// transaction.
type IncomesAndExpenses struct {
	Year     int
	Month    int
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
}

// IncomesByCategory is the summed deposits of one category in one year.
type IncomesByCategory struct {
	Year     int
	Category string
	Amount   decimal.Decimal
}

// ExpensesByCategory is the summed withdrawals of one category in one year.
type ExpensesByCategory struct {
	Year     int
	Category string
	Amount   decimal.Decimal
}

// FinancialSummary holds the current-month deposit and withdrawal totals,
// kept separate rather than netted.
type FinancialSummary struct {
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
}
