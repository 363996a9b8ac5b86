package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/service"
	"github.com/carteira-app/carteira-backend/internal/util"
)

// SummaryHandler handles summary and comparison HTTP requests
type SummaryHandler struct {
	authService    *service.AuthService
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(authService *service.AuthService, summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		authService:    authService,
		summaryService: summaryService,
	}
}

// SummaryResponse represents a period summary in API responses
type SummaryResponse struct {
	Period             string                `json:"period"`
	MonthlyIncome      string                `json:"monthlyIncome"`
	TotalIncome        string                `json:"totalIncome"`
	TotalExpenses      string                `json:"totalExpenses"`
	Balance            string                `json:"balance"`
	TransactionCount   int                   `json:"transactionCount"`
	ExpensesByCategory map[string]string     `json:"expensesByCategory"`
	Transactions       []TransactionResponse `json:"transactions"`
}

// DeltaResponse represents the comparison delta block in API responses
type DeltaResponse struct {
	Income          string `json:"income"`
	IncomePercent   string `json:"incomePercent"`
	Expenses        string `json:"expenses"`
	ExpensesPercent string `json:"expensesPercent"`
	Balance         string `json:"balance"`
	BalancePercent  string `json:"balancePercent"`
}

// ComparisonResponse represents a period comparison in API responses
type ComparisonResponse struct {
	From  SummaryResponse `json:"from"`
	To    SummaryResponse `json:"to"`
	Delta DeltaResponse   `json:"delta"`
}

func toSummaryResponse(s *domain.Summary) SummaryResponse {
	byCategory := make(map[string]string, len(s.ExpensesByCategory))
	for category, amount := range s.ExpensesByCategory {
		byCategory[category] = amount.String()
	}

	transactions := make([]TransactionResponse, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		transactions = append(transactions, toTransactionResponse(tx))
	}

	return SummaryResponse{
		Period:             s.Period,
		MonthlyIncome:      s.MonthlyIncome.String(),
		TotalIncome:        s.TotalIncome.String(),
		TotalExpenses:      s.TotalExpenses.String(),
		Balance:            s.Balance.String(),
		TransactionCount:   s.TransactionCount,
		ExpensesByCategory: byCategory,
		Transactions:       transactions,
	}
}

func toComparisonResponse(cmp *domain.Comparison) ComparisonResponse {
	return ComparisonResponse{
		From: toSummaryResponse(cmp.From),
		To:   toSummaryResponse(cmp.To),
		Delta: DeltaResponse{
			Income:          cmp.Delta.Income.String(),
			IncomePercent:   cmp.Delta.IncomePercent.String(),
			Expenses:        cmp.Delta.Expenses.String(),
			ExpensesPercent: cmp.Delta.ExpensesPercent.String(),
			Balance:         cmp.Delta.Balance.String(),
			BalancePercent:  cmp.Delta.BalancePercent.String(),
		},
	}
}

// GetSummary handles GET /api/v1/summary/:period
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	period := c.Param("period")
	if _, _, err := util.ParsePeriod(period); err != nil {
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "period", Message: "Must be in YYYY-MM format"},
		})
	}

	summary := h.summaryService.Summarize(h.authService.CurrentUser(), period)
	if summary == nil {
		return NewUnauthorizedError(c, "No active session")
	}
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// ComparePrevious handles GET /api/v1/summary/:period/compare
// The given period is compared against the one before it.
func (h *SummaryHandler) ComparePrevious(c echo.Context) error {
	period := c.Param("period")
	previous, err := util.PreviousPeriod(period)
	if errors.Is(err, domain.ErrInvalidPeriod) {
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "period", Message: "Must be in YYYY-MM format"},
		})
	}

	comparison := h.summaryService.Compare(h.authService.CurrentUser(), previous, period)
	if comparison == nil {
		return NewUnauthorizedError(c, "No active session")
	}
	return c.JSON(http.StatusOK, toComparisonResponse(comparison))
}

// Compare handles GET /api/v1/compare?from=YYYY-MM&to=YYYY-MM
func (h *SummaryHandler) Compare(c echo.Context) error {
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if _, _, err := util.ParsePeriod(from); err != nil {
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "from", Message: "Must be in YYYY-MM format"},
		})
	}
	if _, _, err := util.ParsePeriod(to); err != nil {
		return NewValidationError(c, "Invalid period", []ValidationError{
			{Field: "to", Message: "Must be in YYYY-MM format"},
		})
	}

	comparison := h.summaryService.Compare(h.authService.CurrentUser(), from, to)
	if comparison == nil {
		return NewUnauthorizedError(c, "No active session")
	}
	return c.JSON(http.StatusOK, toComparisonResponse(comparison))
}
