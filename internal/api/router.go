package api

import (
	"net/http"
	"time"

	"github.com/club-portal-api/internal/config"
	"github.com/club-portal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	profileHandler := NewProfileHandler(services, log)
	boardHandler := NewBoardHandler(services, log)
	projectHandler := NewProjectHandler(services, cfg, log)

	authRequired := authMiddleware(services.Auth)

	// Health check
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authRequired, authHandler.Logout)

		profiles := api.Group("/profiles")
		{
			profiles.GET("", profileHandler.List)
			profiles.GET("/:user_id", profileHandler.Get)
			profiles.PATCH("/:user_id", authRequired, profileHandler.Update)
		}

		boards := api.Group("/boards")
		{
			boards.GET("", boardHandler.List)
			boards.POST("", authRequired, boardHandler.Create)
			boards.GET("/:id", boardHandler.Get)
			boards.PATCH("/:id", authRequired, boardHandler.Update)
			boards.DELETE("/:id", authRequired, boardHandler.Delete)
			boards.GET("/:id/comments", boardHandler.ListComments)
			boards.POST("/:id/comments", authRequired, boardHandler.AddComment)
			boards.DELETE("/:id/comments/:comment_id", authRequired, boardHandler.DeleteComment)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.POST("", authRequired, projectHandler.Create)
			projects.GET("/:id", projectHandler.Get)
			projects.PATCH("/:id", authRequired, projectHandler.Update)
			projects.DELETE("/:id", authRequired, projectHandler.Delete)
			projects.GET("/:id/comments", projectHandler.ListComments)
			projects.POST("/:id/comments", authRequired, projectHandler.AddComment)
			projects.DELETE("/:id/comments/:comment_id", authRequired, projectHandler.DeleteComment)
			projects.GET("/:id/code-preview", projectHandler.Preview)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "club-portal-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
