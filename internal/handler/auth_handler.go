package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/service"
)

// AuthHandler handles registration and session HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SettingsPayload mirrors domain.Settings in API requests and responses
type SettingsPayload struct {
	Currency      string `json:"currency"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Settings *SettingsPayload `json:"settings,omitempty"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email string `json:"email"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	CreatedAt   string          `json:"createdAt"`
	LastLoginAt string          `json:"lastLoginAt"`
	Settings    SettingsPayload `json:"settings"`
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID.String(),
		Name:        account.Name,
		Email:       account.Email,
		CreatedAt:   account.CreatedAt.Format(time.RFC3339),
		LastLoginAt: account.LastLoginAt.Format(time.RFC3339),
		Settings: SettingsPayload{
			Currency:      account.Settings.Currency,
			Theme:         account.Settings.Theme,
			Notifications: account.Settings.Notifications,
		},
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.RegisterInput{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.Settings != nil {
		input.Settings = &domain.Settings{
			Currency:      req.Settings.Currency,
			Theme:         req.Settings.Theme,
			Notifications: req.Settings.Notifications,
		}
	}

	account, err := h.authService.Register(input)
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrEmailRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "email", Message: "Email is required"},
		})
	case errors.Is(err, domain.ErrAccountExists):
		return NewConflictError(c, "An account with this email already exists")
	case errors.Is(err, domain.ErrPersistenceFailed):
		log.Error().Err(err).Msg("Register persisted in memory only")
		return NewInternalError(c, "Account created but not saved")
	case err != nil:
		return NewInternalError(c, "Failed to register account")
	}

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.authService.Login(req.Email)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return NewNotFoundError(c, "No account with this email")
	case errors.Is(err, domain.ErrPersistenceFailed):
		log.Error().Err(err).Msg("Login persisted in memory only")
		return NewInternalError(c, "Login applied but not saved")
	case err != nil:
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(); err != nil {
		log.Error().Err(err).Msg("Logout persisted in memory only")
		return NewInternalError(c, "Logout applied but not saved")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	account := h.authService.CurrentUser()
	if account == nil {
		return NewUnauthorizedError(c, "No active session")
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}
