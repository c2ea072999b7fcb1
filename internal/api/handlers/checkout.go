package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/api/middleware"
	"github.com/kehilianouar/gymdada-api/internal/cart"
	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/service"
)

// QuoteRequest asks for shipping pricing against the current cart
type QuoteRequest struct {
	Wilaya       string `json:"wilaya" binding:"required"`
	ShippingType string `json:"shippingType" binding:"required"`
}

// HandleCheckoutQuote handles POST /v1/checkout/quote
func HandleCheckoutQuote(carts *cart.Manager, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store := carts.Session(c.Request.Context(), sessionID)
		quote, err := checkout.Quote(c.Request.Context(), store.Cart(), req.Wilaya, domain.ShippingType(req.ShippingType))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

// HandleCheckoutSubmit handles POST /v1/checkout. The submit guard upstream
// keeps one submission per session in flight at a time.
func HandleCheckoutSubmit(carts *cart.Manager, checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store := carts.Session(c.Request.Context(), sessionID)
		order, err := checkout.Submit(c.Request.Context(), store, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId":      order.ID,
			"status":       order.Status,
			"subtotal":     order.Subtotal,
			"shippingCost": order.ShippingCost,
			"total":        order.Total,
		})
	}
}
