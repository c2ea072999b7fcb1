package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/domain"
	"github.com/kehilianouar/gymdada-api/internal/service"
)

// UpdateOrderStatusRequest moves an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleGetOrder handles GET /v1/orders/:id. Public so the confirmation page
// can show the order by the id it was handed at submission.
func HandleGetOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		order, err := orders.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleListOrders handles GET /v1/admin/orders with an optional status filter
func HandleListOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context(),
			domain.OrderStatus(c.Query("status")),
			queryInt(c, "limit", 0),
			queryInt(c, "offset", 0))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders": list,
			"count":  len(list),
		})
	}
}

// HandleUpdateOrderStatus handles PATCH /v1/admin/orders/:id/status
func HandleUpdateOrderStatus(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		order, err := orders.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleGetOrderEvents handles GET /v1/admin/orders/:id/events
func HandleGetOrderEvents(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		events, err := orders.Events(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}
