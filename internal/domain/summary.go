package domain

import "github.com/shopspring/decimal"

// Summary is the derived view of one account's ledger for a single period.
// It is recomputed on every query and never persisted.
type Summary struct {
	Period             string                     `json:"period"`
	MonthlyIncome      decimal.Decimal            `json:"monthlyIncome"`
	TotalIncome        decimal.Decimal            `json:"totalIncome"`
	TotalExpenses      decimal.Decimal            `json:"totalExpenses"`
	Balance            decimal.Decimal            `json:"balance"`
	TransactionCount   int                        `json:"transactionCount"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	Transactions       []*Transaction             `json:"transactions"`
}

// ComparisonDelta holds absolute and percentage changes between two
// summaries, always computed as "to minus from". Percentages are zero when
// the baseline total is zero.
type ComparisonDelta struct {
	Income          decimal.Decimal `json:"income"`
	IncomePercent   decimal.Decimal `json:"incomePercent"`
	Expenses        decimal.Decimal `json:"expenses"`
	ExpensesPercent decimal.Decimal `json:"expensesPercent"`
	Balance         decimal.Decimal `json:"balance"`
	BalancePercent  decimal.Decimal `json:"balancePercent"`
}

// Comparison pairs two period summaries with their delta block
type Comparison struct {
	From  *Summary        `json:"from"`
	To    *Summary        `json:"to"`
	Delta ComparisonDelta `json:"delta"`
}
