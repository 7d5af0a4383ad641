package http

import (
	"github.com/boticario/catalog-proxy/config"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger logrus.FieldLogger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	requireKey := APIKeyMiddleware(cfg.Auth.APIKey)

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Unknown paths and methods are authenticated too, so a caller without
	// the key cannot probe which routes exist
	router.NoRoute(requireKey, handler.NotFound)

	api := router.Group("/api")
	{
		api.GET("/health", handler.HealthCheck)

		protected := api.Group("", requireKey)
		{
			// Catalog endpoints
			protected.GET("/products", handler.SearchProducts)
			protected.GET("/product-link", handler.ProductLink)
			protected.GET("/products/:id", handler.GetProduct)
			protected.GET("/products/:id/variants", handler.ListVariants)
			protected.GET("/promos", handler.Promos)

			// Order endpoints
			protected.GET("/orders/:id", handler.GetOrder)
			protected.GET("/orders/:id/items", handler.GetOrderItems)
			protected.GET("/orders/:id/shipping", handler.GetOrderShipping)
		}
	}

	return router
}
