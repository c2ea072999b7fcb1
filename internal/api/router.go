package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/api/handlers"
	"github.com/kehilianouar/gymdada-api/internal/api/middleware"
	"github.com/kehilianouar/gymdada-api/internal/cart"
	"github.com/kehilianouar/gymdada-api/internal/config"
	"github.com/kehilianouar/gymdada-api/internal/repository"
	"github.com/kehilianouar/gymdada-api/internal/service"
)

// Services bundles the service layer handed to the router
type Services struct {
	Settings *service.SettingsService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, carts *cart.Manager, svcs *Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Gym Dada Store API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/products",
				"GET /v1/products/search",
				"GET /v1/products/:id",
				"GET /v1/categories",
				"GET /v1/banners",
				"GET /v1/settings/checkout",
				"GET /v1/cart",
				"POST /v1/cart/items",
				"PUT /v1/cart/items/:productId",
				"DELETE /v1/cart/items/:productId",
				"DELETE /v1/cart",
				"POST /v1/checkout/quote",
				"POST /v1/checkout",
				"GET /v1/orders/:id",
				"GET /v1/admin/orders",
				"PATCH /v1/admin/orders/:id/status",
				"GET /v1/admin/orders/:id/events",
				"GET /v1/admin/settings",
				"PUT /v1/admin/settings",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	submitGuard := middleware.NewSubmitGuard()

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public catalog and storefront configuration
		v1.GET("/products", handlers.HandleListProducts(repos, logger))
		v1.GET("/products/search", handlers.HandleSearchProducts(repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(repos, logger))
		v1.GET("/categories", handlers.HandleListCategories(repos, logger))
		v1.GET("/banners", handlers.HandleListBanners(repos, logger))
		v1.GET("/settings/checkout", handlers.HandleGetCheckoutSettings(svcs.Settings, logger))

		// Order confirmation page lookup
		v1.GET("/orders/:id", handlers.HandleGetOrder(svcs.Orders, logger))

		// Shopper routes (cart session resolved per request)
		shopperRoutes := v1.Group("")
		shopperRoutes.Use(middleware.SessionMiddleware())
		{
			shopperRoutes.GET("/cart", handlers.HandleGetCart(carts, logger))
			shopperRoutes.POST("/cart/items", handlers.HandleAddCartItem(carts, repos, logger))
			shopperRoutes.PUT("/cart/items/:productId", handlers.HandleUpdateCartItem(carts, logger))
			shopperRoutes.DELETE("/cart/items/:productId", handlers.HandleRemoveCartItem(carts, logger))
			shopperRoutes.DELETE("/cart", handlers.HandleClearCart(carts, logger))
			shopperRoutes.POST("/checkout/quote", handlers.HandleCheckoutQuote(carts, svcs.Checkout, logger))
			shopperRoutes.POST("/checkout", submitGuard.Handler(), handlers.HandleCheckoutSubmit(carts, svcs.Checkout, logger))
		}

		// Back-office routes (require an admin API key)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(svcs.Orders, logger))
			adminRoutes.PATCH("/orders/:id/status", handlers.HandleUpdateOrderStatus(svcs.Orders, logger))
			adminRoutes.GET("/orders/:id/events", handlers.HandleGetOrderEvents(svcs.Orders, logger))
			adminRoutes.GET("/settings", handlers.HandleGetStoreSettings(svcs.Settings, logger))
			adminRoutes.PUT("/settings", handlers.HandleUpdateStoreSettings(svcs.Settings, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
