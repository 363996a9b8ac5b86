package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carteira-app/carteira-backend/internal/config"
	"github.com/carteira-app/carteira-backend/internal/domain"
	"github.com/carteira-app/carteira-backend/internal/handler"
	"github.com/carteira-app/carteira-backend/internal/middleware"
	"github.com/carteira-app/carteira-backend/internal/repository/blobstore"
	"github.com/carteira-app/carteira-backend/internal/repository/ledger"
	"github.com/carteira-app/carteira-backend/internal/service"
	"github.com/carteira-app/carteira-backend/internal/websocket"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	// Build the blob store backend
	blobs, cleanup, err := buildBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage).Msg("Failed to initialize blob store")
	}
	defer cleanup()
	log.Info().Str("storage", cfg.Storage).Msg("Blob store ready")

	// Load the ledger snapshot
	accountRepo, err := ledger.NewRepository(ctx, blobs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load ledger")
	}

	// WebSocket hub for ledger change events
	hub := websocket.NewHub()

	// Initialize services
	authService := service.NewAuthService(accountRepo)
	ledgerService := service.NewLedgerService(accountRepo, hub)
	summaryService := service.NewSummaryService(ledgerService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	ledgerHandler := handler.NewLedgerHandler(authService, ledgerService)
	summaryHandler := handler.NewSummaryHandler(authService, summaryService)
	wsHandler := handler.NewWebSocketHandler(hub, authService, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, authHandler, ledgerHandler, summaryHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// buildBlobStore constructs the configured blob store backend. The returned
// cleanup releases any held connections.
func buildBlobStore(ctx context.Context, cfg *config.Config) (domain.BlobStore, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store, err := blobstore.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	case config.StorageS3:
		store, err := blobstore.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	default:
		return blobstore.NewMemoryStore(), func() {}, nil
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
