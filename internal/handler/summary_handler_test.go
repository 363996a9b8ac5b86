package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/service"
	"github.com/carteira-app/carteira-backend/internal/testutil"
)

func newSummaryHandlerFixture(t *testing.T, loggedIn bool) (*echo.Echo, *SummaryHandler, *service.LedgerService, *domain.Account) {
	t.Helper()
	e := echo.New()
	repo := testutil.NewMockAccountRepository()
	authService := service.NewAuthService(repo)
	ledgerService := service.NewLedgerService(repo, nil)
	summaryService := service.NewSummaryService(ledgerService)

	account, err := authService.Register(service.RegisterInput{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if loggedIn {
		if _, err := authService.Login("ana@example.com"); err != nil {
			t.Fatalf("login: %v", err)
		}
	}

	return e, NewSummaryHandler(authService, summaryService), ledgerService, account
}

func TestGetSummary_Success(t *testing.T) {
	e, handler, ledgerService, account := newSummaryHandlerFixture(t, true)

	if _, err := ledgerService.SetMonthlyIncome(account, "2024-01", "5000"); err != nil {
		t.Fatalf("set income: %v", err)
	}
	if _, err := ledgerService.AddTransaction(account, service.CreateTransactionInput{
		Description: "Groceries", Amount: "200", Type: domain.TransactionTypeExpense,
		Category: "Alimentação", Date: "2024-01-15",
	}); err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary/2024-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("period")
	c.SetParamValues("2024-01")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.TotalIncome != "5000" {
		t.Errorf("Expected total income '5000', got %s", response.TotalIncome)
	}
	if response.TotalExpenses != "200" {
		t.Errorf("Expected total expenses '200', got %s", response.TotalExpenses)
	}
	if response.Balance != "4800" {
		t.Errorf("Expected balance '4800', got %s", response.Balance)
	}
	if response.ExpensesByCategory["Alimentação"] != "200" {
		t.Errorf("Expected category fold '200', got %s", response.ExpensesByCategory["Alimentação"])
	}
}

func TestGetSummary_InvalidPeriod(t *testing.T) {
	e, handler, _, _ := newSummaryHandlerFixture(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary/2024-13", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("period")
	c.SetParamValues("2024-13")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSummary_NoSession(t *testing.T) {
	e, handler, _, _ := newSummaryHandlerFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary/2024-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("period")
	c.SetParamValues("2024-01")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestComparePrevious_Success(t *testing.T) {
	e, handler, ledgerService, account := newSummaryHandlerFixture(t, true)

	if _, err := ledgerService.SetMonthlyIncome(account, "2023-12", "1000"); err != nil {
		t.Fatalf("set income: %v", err)
	}
	if _, err := ledgerService.SetMonthlyIncome(account, "2024-01", "1500"); err != nil {
		t.Fatalf("set income: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary/2024-01/compare", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("period")
	c.SetParamValues("2024-01")

	if err := handler.ComparePrevious(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response ComparisonResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	// The baseline month rolls back across the year boundary
	if response.From.Period != "2023-12" {
		t.Errorf("Expected from period '2023-12', got %s", response.From.Period)
	}
	if response.Delta.Income != "500" {
		t.Errorf("Expected income delta '500', got %s", response.Delta.Income)
	}
	if response.Delta.IncomePercent != "50" {
		t.Errorf("Expected income percent '50', got %s", response.Delta.IncomePercent)
	}
}

func TestCompare_InvalidQuery(t *testing.T) {
	e, handler, _, _ := newSummaryHandlerFixture(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compare?from=2024-01&to=bogus", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Compare(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
