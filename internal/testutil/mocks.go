package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira-backend/internal/domain"
)

// MockBlobStore is a mock implementation of domain.BlobStore with
// injectable failures
type MockBlobStore struct {
	Blobs    map[string][]byte
	GetErr   error
	SetErr   error
	SetCalls int
}

// NewMockBlobStore creates a new MockBlobStore
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Blobs: make(map[string][]byte)}
}

// Get returns the blob stored under key
func (m *MockBlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	value, ok := m.Blobs[key]
	return value, ok, nil
}

// Set stores value under key
func (m *MockBlobStore) Set(_ context.Context, key string, value []byte) error {
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Blobs[key] = value
	return nil
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts     map[uuid.UUID]*domain.Account
	ActiveID     *uuid.UUID
	CreateErr    error
	UpdateErr    error
	SetActiveErr error
	UpdateCalls  int
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{Accounts: make(map[uuid.UUID]*domain.Account)}
}

// Create adds a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if _, exists := m.Accounts[account.ID]; exists {
		return nil, domain.ErrAccountExists
	}
	m.Accounts[account.ID] = account
	if m.CreateErr != nil {
		return account, m.CreateErr
	}
	return account, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id uuid.UUID) (*domain.Account, error) {
	if account, ok := m.Accounts[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetByEmail retrieves an account by email
func (m *MockAccountRepository) GetByEmail(email string) (*domain.Account, error) {
	return m.GetByID(domain.AccountIDForEmail(email))
}

// Update records the persistence attempt
func (m *MockAccountRepository) Update(account *domain.Account) error {
	m.UpdateCalls++
	if _, ok := m.Accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Accounts[account.ID] = account
	return nil
}

// ActiveAccount returns the account the session points at
func (m *MockAccountRepository) ActiveAccount() *domain.Account {
	if m.ActiveID == nil {
		return nil
	}
	return m.Accounts[*m.ActiveID]
}

// SetActive points the session at the given account
func (m *MockAccountRepository) SetActive(id *uuid.UUID) error {
	if m.SetActiveErr != nil {
		return m.SetActiveErr
	}
	if id != nil {
		if _, ok := m.Accounts[*id]; !ok {
			return domain.ErrAccountNotFound
		}
	}
	m.ActiveID = id
	return nil
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.Accounts[account.ID] = account
}

// NewTestAccount builds a registered account with the default category set
// (helper for tests)
func NewTestAccount(name, email string) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		ID:            domain.AccountIDForEmail(email),
		Name:          name,
		Email:         domain.NormalizeEmail(email),
		CreatedAt:     now,
		LastLoginAt:   now,
		Settings:      domain.DefaultSettings(),
		MonthlyIncome: make(map[string]decimal.Decimal),
		Transactions:  []*domain.Transaction{},
		Categories:    append([]string{}, domain.DefaultCategories...),
	}
}
