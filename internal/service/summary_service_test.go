package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/testutil"
)

func newSummaryFixture(t *testing.T) (*SummaryService, *LedgerService, *domain.Account) {
	t.Helper()
	repo := testutil.NewMockAccountRepository()
	account := testutil.NewTestAccount("Ana", "ana@example.com")
	repo.AddAccount(account)
	ledger := NewLedgerService(repo, nil)
	return NewSummaryService(ledger), ledger, account
}

func TestSummaryService_Summarize(t *testing.T) {
	svc, ledger, account := newSummaryFixture(t)

	_, err := ledger.SetMonthlyIncome(account, "2024-01", "5000")
	require.NoError(t, err)
	_, err = ledger.AddTransaction(account, CreateTransactionInput{
		Description: "Groceries", Amount: "200", Type: domain.TransactionTypeExpense,
		Category: "Alimentação", Date: "2024-01-15",
	})
	require.NoError(t, err)
	_, err = ledger.AddTransaction(account, CreateTransactionInput{
		Description: "Freelance", Amount: "300", Type: domain.TransactionTypeIncome, Date: "2024-01-20",
	})
	require.NoError(t, err)

	summary := svc.Summarize(account, "2024-01")
	require.NotNil(t, summary)

	assert.Equal(t, "2024-01", summary.Period)
	assert.Equal(t, "5000", summary.MonthlyIncome.String())
	assert.Equal(t, "5300", summary.TotalIncome.String())
	assert.Equal(t, "200", summary.TotalExpenses.String())
	assert.Equal(t, "5100", summary.Balance.String())
	assert.Equal(t, 2, summary.TransactionCount)
	require.Contains(t, summary.ExpensesByCategory, "Alimentação")
	assert.Equal(t, "200", summary.ExpensesByCategory["Alimentação"].String())
}

func TestSummaryService_Summarize_EmptyPeriod(t *testing.T) {
	svc, _, account := newSummaryFixture(t)

	summary := svc.Summarize(account, "2024-06")
	require.NotNil(t, summary)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.Balance.IsZero())
	assert.Zero(t, summary.TransactionCount)
	assert.Empty(t, summary.ExpensesByCategory)
	assert.Empty(t, summary.Transactions)
}

func TestSummaryService_Summarize_NoAccount(t *testing.T) {
	svc, _, _ := newSummaryFixture(t)
	assert.Nil(t, svc.Summarize(nil, "2024-01"))
}

func TestSummaryService_Summarize_CategoryFold(t *testing.T) {
	svc, ledger, account := newSummaryFixture(t)

	for _, tx := range []CreateTransactionInput{
		{Description: "Lunch", Amount: "10", Type: domain.TransactionTypeExpense, Category: "Food", Date: "2024-01-02"},
		{Description: "Dinner", Amount: "5", Type: domain.TransactionTypeExpense, Category: "Food", Date: "2024-01-03"},
		{Description: "Gas", Amount: "20", Type: domain.TransactionTypeExpense, Category: "Fuel", Date: "2024-01-04"},
	} {
		_, err := ledger.AddTransaction(account, tx)
		require.NoError(t, err)
	}

	summary := svc.Summarize(account, "2024-01")
	require.NotNil(t, summary)
	require.Len(t, summary.ExpensesByCategory, 2)
	assert.Equal(t, "15", summary.ExpensesByCategory["Food"].String())
	assert.Equal(t, "20", summary.ExpensesByCategory["Fuel"].String())
}

func TestSummaryService_Summarize_BalanceAdditivity(t *testing.T) {
	svc, ledger, account := newSummaryFixture(t)

	_, err := ledger.SetMonthlyIncome(account, "2024-01", "1234.56")
	require.NoError(t, err)
	for _, tx := range []CreateTransactionInput{
		{Description: "Salary top-up", Amount: "100.10", Type: domain.TransactionTypeIncome, Date: "2024-01-05"},
		{Description: "Rent", Amount: "800", Type: domain.TransactionTypeExpense, Date: "2024-01-01"},
		{Description: "Market", Amount: "99.99", Type: domain.TransactionTypeExpense, Date: "2024-01-08"},
	} {
		_, err := ledger.AddTransaction(account, tx)
		require.NoError(t, err)
	}

	summary := svc.Summarize(account, "2024-01")
	require.NotNil(t, summary)
	assert.True(t, summary.Balance.Equal(summary.TotalIncome.Sub(summary.TotalExpenses)))
}

func TestSummaryService_Summarize_SortsByDateDescending(t *testing.T) {
	svc, ledger, account := newSummaryFixture(t)

	for _, tx := range []CreateTransactionInput{
		{Description: "mid", Amount: "1", Type: domain.TransactionTypeExpense, Date: "2024-01-15"},
		{Description: "early", Amount: "1", Type: domain.TransactionTypeExpense, Date: "2024-01-01"},
		{Description: "late", Amount: "1", Type: domain.TransactionTypeExpense, Date: "2024-01-31"},
		{Description: "late twin", Amount: "1", Type: domain.TransactionTypeExpense, Date: "2024-01-31"},
	} {
		_, err := ledger.AddTransaction(account, tx)
		require.NoError(t, err)
	}

	summary := svc.Summarize(account, "2024-01")
	require.NotNil(t, summary)
	require.Len(t, summary.Transactions, 4)

	// Date descending; ties keep the store order (most recently added first)
	assert.Equal(t, "late twin", summary.Transactions[0].Description)
	assert.Equal(t, "late", summary.Transactions[1].Description)
	assert.Equal(t, "mid", summary.Transactions[2].Description)
	assert.Equal(t, "early", summary.Transactions[3].Description)
}

func TestSummaryService_Compare(t *testing.T) {
	svc, ledger, account := newSummaryFixture(t)

	_, err := ledger.SetMonthlyIncome(account, "2024-01", "1000")
	require.NoError(t, err)
	_, err = ledger.SetMonthlyIncome(account, "2024-02", "1500")
	require.NoError(t, err)
	_, err = ledger.AddTransaction(account, CreateTransactionInput{
		Description: "January rent", Amount: "400", Type: domain.TransactionTypeExpense, Date: "2024-01-01",
	})
	require.NoError(t, err)
	_, err = ledger.AddTransaction(account, CreateTransactionInput{
		Description: "February rent", Amount: "500", Type: domain.TransactionTypeExpense, Date: "2024-02-01",
	})
	require.NoError(t, err)

	comparison := svc.Compare(account, "2024-01", "2024-02")
	require.NotNil(t, comparison)

	assert.Equal(t, "2024-01", comparison.From.Period)
	assert.Equal(t, "2024-02", comparison.To.Period)

	// Deltas are always to minus from
	assert.Equal(t, "500", comparison.Delta.Income.String())
	assert.Equal(t, "50", comparison.Delta.IncomePercent.String())
	assert.Equal(t, "100", comparison.Delta.Expenses.String())
	assert.Equal(t, "25", comparison.Delta.ExpensesPercent.String())
	assert.Equal(t, "400", comparison.Delta.Balance.String())
}

func TestSummaryService_Compare_ZeroBaseline(t *testing.T) {
	svc, ledger, account := newSummaryFixture(t)

	// Nothing in January at all, so every baseline is zero
	_, err := ledger.SetMonthlyIncome(account, "2024-02", "1000")
	require.NoError(t, err)

	comparison := svc.Compare(account, "2024-01", "2024-02")
	require.NotNil(t, comparison)

	assert.Equal(t, "1000", comparison.Delta.Income.String())
	assert.True(t, comparison.Delta.IncomePercent.IsZero())
	assert.True(t, comparison.Delta.ExpensesPercent.IsZero())
	assert.True(t, comparison.Delta.BalancePercent.IsZero())
}

func TestSummaryService_Compare_NoAccount(t *testing.T) {
	svc, _, _ := newSummaryFixture(t)
	assert.Nil(t, svc.Compare(nil, "2024-01", "2024-02"))
}

// End-to-end through the full service stack: register, log in, record a
// month and read its summary back.
func TestSummaryService_FullMonthScenario(t *testing.T) {
	repo := testutil.NewMockAccountRepository()
	auth := NewAuthService(repo)
	ledger := NewLedgerService(repo, nil)
	svc := NewSummaryService(ledger)

	_, err := auth.Register(RegisterInput{Name: "A", Email: "a@b.com"})
	require.NoError(t, err)
	_, err = auth.Login("a@b.com")
	require.NoError(t, err)

	account := auth.CurrentUser()
	require.NotNil(t, account)

	_, err = ledger.SetMonthlyIncome(account, "2024-01", "5000")
	require.NoError(t, err)
	_, err = ledger.AddTransaction(account, CreateTransactionInput{
		Description: "Groceries", Amount: "200", Type: domain.TransactionTypeExpense,
		Category: "Food", Date: "2024-01-15",
	})
	require.NoError(t, err)
	_, err = ledger.AddTransaction(account, CreateTransactionInput{
		Description: "Freelance", Amount: "300", Type: domain.TransactionTypeIncome, Date: "2024-01-20",
	})
	require.NoError(t, err)

	summary := svc.Summarize(account, "2024-01")
	require.NotNil(t, summary)
	assert.Equal(t, "5000", summary.MonthlyIncome.String())
	assert.Equal(t, "5300", summary.TotalIncome.String())
	assert.Equal(t, "200", summary.TotalExpenses.String())
	assert.Equal(t, "5100", summary.Balance.String())
	assert.Equal(t, 2, summary.TransactionCount)
	assert.Equal(t, "200", summary.ExpensesByCategory["Food"].String())
}
