package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/util"
	"github.com/carteira-app/carteira-backend/internal/websocket"
)

// LedgerService owns mutation and retrieval of one account's transactions,
// fixed monthly incomes and category set. The account handle is passed
// explicitly into every call; a nil handle makes read accessors return
// zero/empty defaults and mutators fail with ErrNoActiveAccount.
type LedgerService struct {
	accounts       domain.AccountRepository
	eventPublisher websocket.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(accounts domain.AccountRepository, eventPublisher websocket.EventPublisher) *LedgerService {
	return &LedgerService{
		accounts:       accounts,
		eventPublisher: eventPublisher,
	}
}

func (s *LedgerService) publishEvent(accountID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(accountID, event)
	}
}

// normalizeAmount coerces raw input into a finite non-negative decimal.
// Unparsable or negative input becomes zero rather than being stored.
func normalizeAmount(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// SetMonthlyIncome stores the fixed income for a period. The period must be
// a valid "YYYY-MM" key; the amount is normalized, invalid input coercing to
// zero. The mutation is applied in memory before the persistence attempt.
func (s *LedgerService) SetMonthlyIncome(account *domain.Account, period, amount string) (decimal.Decimal, error) {
	if account == nil {
		return decimal.Zero, domain.ErrNoActiveAccount
	}
	if _, _, err := util.ParsePeriod(period); err != nil {
		return decimal.Zero, err
	}

	value := normalizeAmount(amount)
	if account.MonthlyIncome == nil {
		account.MonthlyIncome = make(map[string]decimal.Decimal)
	}
	account.MonthlyIncome[period] = value

	if err := s.accounts.Update(account); err != nil {
		log.Error().Err(err).Str("period", period).Msg("Failed to persist monthly income")
		return value, err
	}

	s.publishEvent(account.ID, websocket.IncomeUpdated(map[string]string{
		"period": period,
		"amount": value.String(),
	}))
	return value, nil
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Description string
	Amount      string
	Type        domain.TransactionType
	Category    string
	Date        string
}

// AddTransaction validates the input, assigns a fresh id and inserts the
// record at the front of the sequence: most-recent-first ordering is a
// store-level invariant, not a view-level sort. On a persistence failure the
// created record is returned alongside the error; memory stays mutated.
func (s *LedgerService) AddTransaction(account *domain.Account, input CreateTransactionInput) (*domain.Transaction, error) {
	if account == nil {
		return nil, domain.ErrNoActiveAccount
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}
	if strings.TrimSpace(input.Amount) == "" {
		return nil, domain.ErrAmountRequired
	}
	if !domain.ValidType(input.Type) {
		return nil, domain.ErrInvalidType
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.CategoryOther
	}

	// Dates are validated at write time so the prefix match at read time
	// never silently mis-filters
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if !util.ValidDate(date) {
		return nil, domain.ErrInvalidDate
	}

	transaction := &domain.Transaction{
		ID:          uuid.New(),
		Description: description,
		Amount:      normalizeAmount(input.Amount),
		Type:        input.Type,
		Category:    category,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	account.Transactions = append([]*domain.Transaction{transaction}, account.Transactions...)

	if err := s.accounts.Update(account); err != nil {
		log.Error().Err(err).Str("transaction_id", transaction.ID.String()).Msg("Failed to persist transaction")
		return transaction, err
	}

	s.publishEvent(account.ID, websocket.TransactionCreated(transaction))
	return transaction, nil
}

// RemoveTransaction removes a transaction by id. An unknown id is a failure
// result, never a panic, and leaves the sequence untouched.
func (s *LedgerService) RemoveTransaction(account *domain.Account, id uuid.UUID) error {
	if account == nil {
		return domain.ErrNoActiveAccount
	}

	index := -1
	for i, tx := range account.Transactions {
		if tx.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return domain.ErrTransactionNotFound
	}

	removed := account.Transactions[index]
	account.Transactions = append(account.Transactions[:index], account.Transactions[index+1:]...)

	if err := s.accounts.Update(account); err != nil {
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Failed to persist transaction removal")
		return err
	}

	s.publishEvent(account.ID, websocket.TransactionDeleted(removed))
	return nil
}

// AddCategory appends a category name to the account's set. Blank names and
// exact (case-sensitive) duplicates are rejected.
func (s *LedgerService) AddCategory(account *domain.Account, name string) (string, error) {
	if account == nil {
		return "", domain.ErrNoActiveAccount
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrCategoryRequired
	}
	for _, existing := range account.Categories {
		if existing == name {
			return "", domain.ErrCategoryExists
		}
	}

	account.Categories = append(account.Categories, name)

	if err := s.accounts.Update(account); err != nil {
		log.Error().Err(err).Str("category", name).Msg("Failed to persist category")
		return name, err
	}

	s.publishEvent(account.ID, websocket.CategoryCreated(map[string]string{"name": name}))
	return name, nil
}

// GetMonthlyIncome returns the fixed income set for a period, zero when none
// was set or no account is active
func (s *LedgerService) GetMonthlyIncome(account *domain.Account, period string) decimal.Decimal {
	if account == nil {
		return decimal.Zero
	}
	if amount, ok := account.MonthlyIncome[period]; ok {
		return amount
	}
	return decimal.Zero
}

// GetCategories returns a copy of the account's category set in insertion
// order, empty when no account is active
func (s *LedgerService) GetCategories(account *domain.Account) []string {
	if account == nil {
		return []string{}
	}
	return append([]string{}, account.Categories...)
}

// TransactionsForPeriod returns every transaction whose date prefix equals
// the period key, preserving the store's most-recent-first order
func (s *LedgerService) TransactionsForPeriod(account *domain.Account, period string) []*domain.Transaction {
	if account == nil {
		return []*domain.Transaction{}
	}

	matched := []*domain.Transaction{}
	for _, tx := range account.Transactions {
		if util.MatchesPeriod(tx.Date, period) {
			matched = append(matched, tx)
		}
	}
	return matched
}
