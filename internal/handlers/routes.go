package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bookshelf-api/internal/middleware"
	"bookshelf-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	BookService    services.BookService
	MessageService services.MessageService
	Logger         *logrus.Logger
	HealthCheck    func(ctx context.Context) error
	EnableSwagger  bool
}

// MiddlewareConfig holds the global middleware settings
type MiddlewareConfig struct {
	Logger            *logrus.Logger
	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	bookHandler := NewBookHandler(config.BookService, config.Logger)
	messageHandler := NewMessageHandler(config.MessageService, config.Logger)

	if config.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":    "healthy",
			"service":   "bookshelf-api",
			"timestamp": time.Now().UTC(),
		}

		if config.HealthCheck != nil {
			if err := config.HealthCheck(c.Request.Context()); err != nil {
				config.Logger.WithError(err).Warn("Health check failed")
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
			}
		}

		c.JSON(status, body)
	})

	// Every method reaches the handler so that unsupported ones get the
	// collection's own 404 body. OPTIONS is the exception when SetupMiddleware
	// is in place: CORS answers preflight requests with 204 first.
	books := router.Group("/books")
	{
		books.Any("", bookHandler.Handle)
		books.Any("/:id", bookHandler.Handle)
	}

	router.GET("/message", messageHandler.Echo)
	router.POST("/message", messageHandler.Echo)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: services.MessageNotFound})
	})
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, config *MiddlewareConfig) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(config.Logger))
	router.Use(middleware.StructuredLogger(config.Logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	router.Use(middleware.RateLimiter(config.RequestsPerSecond, config.Burst, config.Logger))
}
