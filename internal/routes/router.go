package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartiq-backend/internal/config"
	"smartiq-backend/internal/delivery/http/handler"
	"smartiq-backend/internal/email"
	"smartiq-backend/internal/infrastructure/database/postgres"
	"smartiq-backend/internal/logger"
	"smartiq-backend/internal/middleware"
	"smartiq-backend/internal/usecase/auth"
	"smartiq-backend/internal/usecase/exam"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := postgres.NewUserRepository(db)
	resetTokenRepository := postgres.NewResetTokenRepository(db)
	notifier := email.NewSMTPNotifier(&cfg.SMTP)
	authService := auth.NewService(userRepository, resetTokenRepository, notifier, cfg)
	authHandler := handler.NewAuthHandler(authService)

	examRepository := postgres.NewExamRepository(db)
	examService := exam.NewService(examRepository)
	examHandler := handler.NewExamHandler(examService)

	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		examHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				examHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
