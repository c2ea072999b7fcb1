package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/service"
)

// HandleGetCheckoutSettings handles GET /v1/settings/checkout. The public
// slice of the store configuration the checkout page needs: serviceable
// wilayas with prices, the free shipping threshold and payment methods.
func HandleGetCheckoutSettings(settings *service.SettingsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := settings.Get(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"storeName":             cfg.StoreName,
			"wilayas":               cfg.AvailableWilayas(),
			"freeShippingThreshold": cfg.Shipping.FreeShippingThreshold,
			"paymentMethods":        cfg.PaymentMethods,
			"contactInfo":           cfg.Contact,
		})
	}
}

// HandleGetStoreSettings handles GET /v1/admin/settings, the full document
func HandleGetStoreSettings(settings *service.SettingsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := settings.Get(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

// HandleUpdateStoreSettings handles PUT /v1/admin/settings. The document is
// replaced whole, matching how the back office edits it.
func HandleUpdateStoreSettings(settings *service.SettingsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cfg domain.StoreSettings
		if err := c.ShouldBindJSON(&cfg); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := settings.Update(c.Request.Context(), &cfg); err != nil {
			respondError(c, logger, err)
			return
		}

		logger.Info("Store settings updated")
		c.JSON(http.StatusOK, &cfg)
	}
}
