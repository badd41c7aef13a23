package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-food-diary/internal/core/domain"
)

// handleError maps core error categories to status codes. Server side
// failures are attached to the context so the error logger reports them.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passcode"})

	case errors.Is(err, domain.ErrLookupFailed):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "product lookup failed",
			"message": "the product catalogue could not be reached, try again later",
		})

	case errors.Is(err, domain.ErrPersistence):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "storage unavailable",
			"message": "your diary could not be read or saved",
		})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
