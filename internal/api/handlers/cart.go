package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/api/middleware"
	"github.com/kehilianouar/gymdada-api/internal/cart"
	"github.com/kehilianouar/gymdada-api/internal/repository"
)

// AddCartItemRequest adds a product to the session cart
type AddCartItemRequest struct {
	ProductID        string            `json:"productId" binding:"required"`
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selectedVariants"`
}

// UpdateCartItemRequest sets the quantity of a product across its slots
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}
		store := carts.Session(c.Request.Context(), sessionID)
		c.JSON(http.StatusOK, store.Cart())
	}
}

// HandleAddCartItem handles POST /v1/cart/items. The product snapshot is
// fetched from the catalog and denormalized into the line item; a product
// with variant axes requires one selected value per axis.
func HandleAddCartItem(carts *cart.Manager, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}

		product, err := repos.Product.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var missing []string
		for _, axis := range product.VariantAxes() {
			if req.SelectedVariants[axis] == "" {
				missing = append(missing, axis)
			}
		}
		if len(missing) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "variant selection required",
				"details": missing,
			})
			return
		}

		store := carts.Session(c.Request.Context(), sessionID)
		updated := store.Add(c.Request.Context(), *product, req.Quantity, req.SelectedVariants)
		c.JSON(http.StatusOK, updated)
	}
}

// HandleUpdateCartItem handles PUT /v1/cart/items/:productId. Quantity zero
// or below removes the product.
func HandleUpdateCartItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store := carts.Session(c.Request.Context(), sessionID)
		updated := store.SetQuantity(c.Request.Context(), c.Param("productId"), req.Quantity)
		c.JSON(http.StatusOK, updated)
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:productId. Removes
// every variant slot of the product.
func HandleRemoveCartItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}
		store := carts.Session(c.Request.Context(), sessionID)
		updated := store.Remove(c.Request.Context(), c.Param("productId"))
		c.JSON(http.StatusOK, updated)
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := middleware.GetSessionID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart session"})
			return
		}
		store := carts.Session(c.Request.Context(), sessionID)
		c.JSON(http.StatusOK, store.Clear(c.Request.Context()))
	}
}
