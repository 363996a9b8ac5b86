package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authHandler *AuthHandler, ledgerHandler *LedgerHandler, summaryHandler *SummaryHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	// Monthly income routes
	income := api.Group("/income")
	income.PUT("/:period", ledgerHandler.SetIncome)
	income.GET("/:period", ledgerHandler.GetIncome)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", ledgerHandler.CreateTransaction)
	transactions.DELETE("/:id", ledgerHandler.DeleteTransaction)

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", ledgerHandler.GetCategories)
	categories.POST("", ledgerHandler.AddCategory)

	// Summary routes
	summary := api.Group("/summary")
	summary.GET("/:period", summaryHandler.GetSummary)
	summary.GET("/:period/compare", summaryHandler.ComparePrevious)
	api.GET("/compare", summaryHandler.Compare)

	// WebSocket events
	e.GET("/ws", wsHandler.HandleWS)
}
