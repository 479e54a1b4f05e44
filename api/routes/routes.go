package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/caribelotto/results-backend/internal/authz"
	"github.com/caribelotto/results-backend/internal/config"
	"github.com/caribelotto/results-backend/internal/handlers"
	"github.com/caribelotto/results-backend/internal/middleware"
	"github.com/caribelotto/results-backend/internal/services"
)

// HandlerDependencies groups the handlers the router wires up.
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	ResultsHandler    *handlers.ResultsHandler
	SubmissionHandler *handlers.SubmissionHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, auth *services.AuthService, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.SessionMiddleware(cfg, auth))

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", deps.ResultsHandler.Health)

		// Auth routes
		authGroup := public.Group("/auth")
		{
			authGroup.POST("/login", deps.AuthHandler.Login)
			authGroup.POST("/logout", deps.AuthHandler.Logout)
			authGroup.GET("/session", deps.AuthHandler.Session)
		}

		// Result routes, readable by everyone
		public.GET("/islands", deps.ResultsHandler.GetIslands)
		public.GET("/results", deps.ResultsHandler.GetAllSummaries)
		public.GET("/results/:island/latest", deps.ResultsHandler.GetLatest)
		public.GET("/results/:island/history", deps.ResultsHandler.GetHistory)
		public.GET("/statistics", deps.ResultsHandler.GetStatistics)
	}

	// Routes for signed-in users
	authenticated := router.Group("/api/v1")
	authenticated.Use(middleware.Gate(authz.RequireAuthenticated))
	{
		submissions := authenticated.Group("/submissions")
		{
			submissions.POST("", deps.SubmissionHandler.Create)
			submissions.GET("/mine", deps.SubmissionHandler.ListMine)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1")
	admin.Use(middleware.Gate(authz.RequireAdmin))
	{
		submissions := admin.Group("/submissions")
		{
			submissions.GET("", deps.SubmissionHandler.ListByStatus)
			submissions.POST("/:id/approve", deps.SubmissionHandler.Approve)
			submissions.POST("/:id/reject", deps.SubmissionHandler.Reject)
		}

		admin.POST("/results/manual", deps.ResultsHandler.SubmitManualResult)

		accounts := admin.Group("/accounts")
		{
			accounts.POST("", deps.AuthHandler.Register)
			accounts.GET("", deps.AuthHandler.ListAccounts)
		}
	}

	return router
}
