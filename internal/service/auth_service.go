package service

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/carteira-app/carteira-backend/internal/domain"
)

// AuthService handles registration and the session lifecycle. There is no
// credential verification: knowing the email is enough to log in.
type AuthService struct {
	accounts domain.AccountRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts domain.AccountRepository) *AuthService {
	return &AuthService{accounts: accounts}
}

// RegisterInput holds the profile data for a new account
type RegisterInput struct {
	Name     string
	Email    string
	Settings *domain.Settings
}

// Register creates a new account with the default category set. The account
// id is derived from the normalized email, so the same email always maps to
// the same account.
func (s *AuthService) Register(input RegisterInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	if _, err := s.accounts.GetByEmail(email); err == nil {
		return nil, domain.ErrAccountExists
	}

	settings := domain.DefaultSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:            domain.AccountIDForEmail(email),
		Name:          name,
		Email:         email,
		CreatedAt:     now,
		LastLoginAt:   now,
		Settings:      settings,
		MonthlyIncome: make(map[string]decimal.Decimal),
		Transactions:  []*domain.Transaction{},
		Categories:    append([]string{}, domain.DefaultCategories...),
	}

	created, err := s.accounts.Create(account)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to register account")
		return created, err
	}

	log.Info().Str("account_id", created.ID.String()).Msg("Account registered")
	return created, nil
}

// Login activates the session for the account behind email and stamps its
// last-login time. The stamp rides along in the activation write.
func (s *AuthService) Login(email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	account.LastLoginAt = time.Now().UTC()
	id := account.ID
	if err := s.accounts.SetActive(&id); err != nil {
		return account, err
	}

	log.Info().Str("account_id", account.ID.String()).Msg("Account logged in")
	return account, nil
}

// Logout clears the active session. Logging out with no session is a no-op.
func (s *AuthService) Logout() error {
	return s.accounts.SetActive(nil)
}

// CurrentUser returns the active account, or nil when no session is active
func (s *AuthService) CurrentUser() *domain.Account {
	return s.accounts.ActiveAccount()
}

// IsLoggedIn reports whether a session is active
func (s *AuthService) IsLoggedIn() bool {
	return s.accounts.ActiveAccount() != nil
}
