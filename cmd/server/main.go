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

	httpapi "github.com/ez2source-sys/ez2source-sub001/internal/api/http"
	"github.com/ez2source-sys/ez2source-sub001/internal/config"
	"github.com/ez2source-sys/ez2source-sub001/internal/llm"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
	"github.com/ez2source-sys/ez2source-sub001/internal/mail"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository/postgres"
	"github.com/ez2source-sys/ez2source-sub001/internal/security"
	"github.com/ez2source-sys/ez2source-sub001/internal/service"
	"github.com/ez2source-sys/ez2source-sub001/internal/validate"
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
	logger.Info("Starting Ez2source Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Mail configuration", "provider", cfg.Mail.Provider, "host", cfg.Mail.Host, "port", cfg.Mail.Port)

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

	// Initialize Mail Delivery
	transport := mail.NewTransport(cfg.Mail)
	templates := mail.NewRegistry(cfg.Mail.TemplateDir)

	// Initialize AI Client
	llmClient := llm.NewClient(cfg.OpenAI)

	// Initialize Validation
	validator := validate.NewEngine(validate.NewUserStore(store.UserRepository))

	// Initialize Services
	emailSvc := service.NewEmailService(
		transport,
		templates,
		store.EmailNotificationRepository,
		store.PreferenceRepository,
		cfg.Platform,
	)
	registrationSvc := service.NewRegistrationService(
		store.UserRepository,
		store.OrganizationRepository,
		emailSvc,
		cfg.Platform,
	)
	decisionSvc := service.NewDecisionService(
		store.FeedbackRepository,
		store.AssignmentRepository,
		store.InterviewRepository,
		store.UserRepository,
		store.OrganizationRepository,
		emailSvc,
	)
	messagingSvc := service.NewMessagingService(
		store.MessageRepository,
		store.UserRepository,
		store.OrganizationRepository,
	)
	summarySvc := service.NewSummaryService(
		store.ResponseRepository,
		store.InterviewRepository,
		store.UserRepository,
		llmClient,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Handlers{
		Registration: registrationSvc,
		Decisions:    decisionSvc,
		Messaging:    messagingSvc,
		Summaries:    summarySvc,
		Email:        emailSvc,
		Validator:    validator,
		TokenManager: tokenManager,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down cleanly", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
