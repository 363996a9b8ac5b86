package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// CategoryOther is the fallback category assigned when a transaction is
// created without one. Transactions may also reference categories that are
// not in the account's category set; membership is not enforced.
const CategoryOther = "Outros"

// Transaction is a single ledger entry. Amount is always non-negative; the
// direction is carried by Type. Date is kept as an ISO "YYYY-MM-DD" string so
// that period grouping is a plain prefix comparison.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ValidType reports whether t is one of the two known transaction types
func ValidType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}
