package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings holds per-account presentation preferences. They are stored and
// returned as-is; the engine never computes anything from them.
type Settings struct {
	Currency      string `json:"currency"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// DefaultSettings returns the settings applied to a freshly registered account
func DefaultSettings() Settings {
	return Settings{
		Currency:      "BRL",
		Theme:         "light",
		Notifications: true,
	}
}

// DefaultCategories are seeded into every new account's category set.
// The list is append-only afterwards; "Outros" doubles as the fallback
// category for transactions created without one.
var DefaultCategories = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Saúde",
	"Educação",
	"Lazer",
	"Vestuário",
	CategoryOther,
}

// Account is one user's ledger: profile data plus the transactions, fixed
// monthly incomes and category set it exclusively owns.
type Account struct {
	ID            uuid.UUID                  `json:"id"`
	Name          string                     `json:"name"`
	Email         string                     `json:"email"`
	CreatedAt     time.Time                  `json:"createdAt"`
	LastLoginAt   time.Time                  `json:"lastLoginAt"`
	Settings      Settings                   `json:"settings"`
	MonthlyIncome map[string]decimal.Decimal `json:"monthlyIncome"`
	Transactions  []*Transaction             `json:"transactions"`
	Categories    []string                   `json:"categories"`
}

// NormalizeEmail canonicalizes an email for identity purposes
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccountIDForEmail derives the stable account identifier from a normalized
// email. The same email always maps to the same ID.
func AccountIDForEmail(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(NormalizeEmail(email)))
}

// AccountRepository defines persistence operations over the account table.
// Mutating methods rewrite the whole persisted snapshot.
type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(id uuid.UUID) (*Account, error)
	GetByEmail(email string) (*Account, error)
	Update(account *Account) error
	ActiveAccount() *Account
	SetActive(id *uuid.UUID) error
}
