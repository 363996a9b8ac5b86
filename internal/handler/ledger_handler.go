package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/service"
)

// LedgerHandler handles income, transaction and category HTTP requests
type LedgerHandler struct {
	authService   *service.AuthService
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(authService *service.AuthService, ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		authService:   authService,
		ledgerService: ledgerService,
	}
}

// SetIncomeRequest represents the set monthly income request body
type SetIncomeRequest struct {
	Amount string `json:"amount"`
}

// IncomeResponse represents a monthly income in API responses
type IncomeResponse struct {
	Period string `json:"period"`
	Amount string `json:"amount"`
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		Description: tx.Description,
		Amount:      tx.Amount.String(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}

// AddCategoryRequest represents the add category request body
type AddCategoryRequest struct {
	Name string `json:"name"`
}

// SetIncome handles PUT /api/v1/income/:period
func (h *LedgerHandler) SetIncome(c echo.Context) error {
	account := h.authService.CurrentUser()
	if account == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	var req SetIncomeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	period := c.Param("period")
	amount, err := h.ledgerService.SetMonthlyIncome(account, period, req.Amount)
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "period", Message: "Must be in YYYY-MM format"},
		})
	case errors.Is(err, domain.ErrPersistenceFailed):
		log.Error().Err(err).Str("period", period).Msg("Income persisted in memory only")
		return NewInternalError(c, "Income applied but not saved")
	case err != nil:
		return NewInternalError(c, "Failed to set income")
	}

	return c.JSON(http.StatusOK, IncomeResponse{Period: period, Amount: amount.String()})
}

// GetIncome handles GET /api/v1/income/:period
func (h *LedgerHandler) GetIncome(c echo.Context) error {
	account := h.authService.CurrentUser()
	period := c.Param("period")
	amount := h.ledgerService.GetMonthlyIncome(account, period)
	return c.JSON(http.StatusOK, IncomeResponse{Period: period, Amount: amount.String()})
}

// CreateTransaction handles POST /api/v1/transactions
func (h *LedgerHandler) CreateTransaction(c echo.Context) error {
	account := h.authService.CurrentUser()
	if account == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	tx, err := h.ledgerService.AddTransaction(account, service.CreateTransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        domain.TransactionType(req.Type),
		Category:    req.Category,
		Date:        req.Date,
	})
	switch {
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrAmountRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount is required"},
		})
	case errors.Is(err, domain.ErrInvalidType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Must be one of: income, expense"},
		})
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	case errors.Is(err, domain.ErrPersistenceFailed):
		log.Error().Err(err).Msg("Transaction persisted in memory only")
		return NewInternalError(c, "Transaction applied but not saved")
	case err != nil:
		return NewInternalError(c, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *LedgerHandler) DeleteTransaction(c echo.Context) error {
	account := h.authService.CurrentUser()
	if account == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction id", []ValidationError{
			{Field: "id", Message: "Must be a valid UUID"},
		})
	}

	err = h.ledgerService.RemoveTransaction(account, id)
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	case errors.Is(err, domain.ErrPersistenceFailed):
		log.Error().Err(err).Str("transaction_id", id.String()).Msg("Removal persisted in memory only")
		return NewInternalError(c, "Removal applied but not saved")
	case err != nil:
		return NewInternalError(c, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCategories handles GET /api/v1/categories
func (h *LedgerHandler) GetCategories(c echo.Context) error {
	account := h.authService.CurrentUser()
	return c.JSON(http.StatusOK, h.ledgerService.GetCategories(account))
}

// AddCategory handles POST /api/v1/categories
func (h *LedgerHandler) AddCategory(c echo.Context) error {
	account := h.authService.CurrentUser()
	if account == nil {
		return NewUnauthorizedError(c, "No active session")
	}

	var req AddCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	name, err := h.ledgerService.AddCategory(account, req.Name)
	switch {
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Category name is required"},
		})
	case errors.Is(err, domain.ErrCategoryExists):
		return NewConflictError(c, "Category already exists")
	case errors.Is(err, domain.ErrPersistenceFailed):
		log.Error().Err(err).Msg("Category persisted in memory only")
		return NewInternalError(c, "Category applied but not saved")
	case err != nil:
		return NewInternalError(c, "Failed to add category")
	}

	return c.JSON(http.StatusCreated, map[string]string{"name": name})
}
