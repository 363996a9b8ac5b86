package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira-backend/internal/domain"
)

// SummaryService computes period summaries and period-over-period
// comparisons. Results are value objects recomputed on every call, never
// cached or persisted.
type SummaryService struct {
	ledger *LedgerService
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(ledger *LedgerService) *SummaryService {
	return &SummaryService{ledger: ledger}
}

// Summarize computes the financial summary for one period. Returns nil when
// no account is active.
func (s *SummaryService) Summarize(account *domain.Account, period string) *domain.Summary {
	if account == nil {
		return nil
	}

	transactions := s.ledger.TransactionsForPeriod(account, period)
	fixedIncome := s.ledger.GetMonthlyIncome(account, period)

	periodIncome := decimal.Zero
	totalExpenses := decimal.Zero
	expensesByCategory := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			periodIncome = periodIncome.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			totalExpenses = totalExpenses.Add(tx.Amount)
			expensesByCategory[tx.Category] = expensesByCategory[tx.Category].Add(tx.Amount)
		}
	}

	totalIncome := fixedIncome.Add(periodIncome)

	// Presentation-oriented re-sort: date descending, ties keep the store's
	// insertion order
	sorted := append([]*domain.Transaction{}, transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	return &domain.Summary{
		Period:             period,
		MonthlyIncome:      fixedIncome,
		TotalIncome:        totalIncome,
		TotalExpenses:      totalExpenses,
		Balance:            totalIncome.Sub(totalExpenses),
		TransactionCount:   len(transactions),
		ExpensesByCategory: expensesByCategory,
		Transactions:       sorted,
	}
}

// Compare computes the delta between two period summaries, always "to minus
// from". Returns nil when either summary is nil. The caller decides the
// semantic direction, e.g. current-vs-previous passes the earlier period as
// from.
func (s *SummaryService) Compare(account *domain.Account, fromPeriod, toPeriod string) *domain.Comparison {
	from := s.Summarize(account, fromPeriod)
	to := s.Summarize(account, toPeriod)
	if from == nil || to == nil {
		return nil
	}

	return &domain.Comparison{
		From: from,
		To:   to,
		Delta: domain.ComparisonDelta{
			Income:          to.TotalIncome.Sub(from.TotalIncome),
			IncomePercent:   percentChange(from.TotalIncome, to.TotalIncome),
			Expenses:        to.TotalExpenses.Sub(from.TotalExpenses),
			ExpensesPercent: percentChange(from.TotalExpenses, to.TotalExpenses),
			Balance:         to.Balance.Sub(from.Balance),
			BalancePercent:  percentChange(from.Balance, to.Balance),
		},
	}
}

var hundred = decimal.NewFromInt(100)

// percentChange guards the zero baseline: the percentage is zero rather than
// a division by zero
func percentChange(from, to decimal.Decimal) decimal.Decimal {
	if from.IsZero() {
		return decimal.Zero
	}
	return to.Sub(from).Div(from).Mul(hundred)
}
