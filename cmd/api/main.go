package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/logger"
	"github.com/joho/godotenv"

	"github.com/caribelotto/results-backend/api/routes"
	"github.com/caribelotto/results-backend/internal/config"
	"github.com/caribelotto/results-backend/internal/handlers"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
	mongorepo "github.com/caribelotto/results-backend/internal/repositories/mongodb"
	"github.com/caribelotto/results-backend/internal/services"
	"github.com/caribelotto/results-backend/pkg/identity"
	"github.com/caribelotto/results-backend/pkg/mongodb"
	"github.com/caribelotto/results-backend/pkg/resultsapi"
)

func main() {
	// Load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	lg := logger.Init("results-backend", true, false, os.Stderr)
	defer lg.Close()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var accountRepo repositories.AccountRepository = mongorepo.NewAccountRepository(db)
	var submissionRepo repositories.SubmissionRepository = mongorepo.NewSubmissionRepository(db)
	var resultRepo repositories.ResultRepository = mongorepo.NewResultRepository(db)

	// Identity provider and upstream results client
	provider := identity.NewStoreProvider(accountRepo)
	apiClient := resultsapi.NewClient(cfg.ResultsAPI.BaseURL, cfg.ResultsAPI.APIKey, cfg.ResultsAPI.MockAPI)

	// Services
	authService := services.NewAuthService(provider, cfg.Auth.AdminEmails)
	gameService := services.NewGameService(cfg.ResultsAPI.RequiredGames)
	resultsService := services.NewResultsService(apiClient, gameService, resultRepo, models.DefaultIslands)
	submissionService := services.NewSubmissionService(submissionRepo)
	accountService := services.NewAccountService(accountRepo)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService, accountService, cfg),
		ResultsHandler:    handlers.NewResultsHandler(resultsService),
		SubmissionHandler: handlers.NewSubmissionHandler(submissionService),
	}

	router := routes.SetupRouter(cfg, authService, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.Infof("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exiting")
}
