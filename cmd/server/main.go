package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "silent-library-backend/internal/api/http"
	"silent-library-backend/internal/config"
	"silent-library-backend/internal/logger"
	"silent-library-backend/internal/repository/postgres"
	"silent-library-backend/internal/security"
	"silent-library-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Silent Library Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	policy := service.FinePolicy{
		PeriodDays:    cfg.Loans.PeriodDays,
		DailyFineRate: cfg.DailyFineRate(),
	}

	authSvc := service.NewAuthService(store.UserRepository, store.PasswordResetRepository, tokenManager, emailSvc)
	userSvc := service.NewUserService(store.UserRepository)
	catalogSvc := service.NewCatalogService(store.BookRepository, store.AuthorRepository, store.GenreRepository)
	loanSvc := service.NewLoanService(store.LoanRepository, store.BookRepository, store.FineRepository, policy)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.BookRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	overdueSvc := service.NewOverdueService(
		store.LoanRepository,
		store.BookRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		policy,
	)

	// Initialize Router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:     httpapi.NewAuthHandler(authSvc),
		User:     httpapi.NewUserHandler(userSvc, noteSvc),
		Book:     httpapi.NewBookHandler(catalogSvc, reviewSvc),
		Loan:     httpapi.NewLoanHandler(loanSvc),
		Staff:    httpapi.NewStaffHandler(catalogSvc, loanSvc, overdueSvc),
		TokenMgr: tokenManager,
		DB:       db,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
