package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/pkg/errors"
)

// respondError maps domain errors to HTTP responses. Anything unrecognized
// is a 500 with the detail kept out of the response body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrValidation:
		body := gin.H{"error": e.Message}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case *errors.ErrRegionNotServiceable:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  e.Error(),
			"wilaya": e.Wilaya,
		})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": e.Error(),
			"from":  e.From,
			"to":    e.To,
		})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
