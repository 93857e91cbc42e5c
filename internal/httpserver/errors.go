package httpserver

import (
	"context"
	"errors"
	"net/http"

	"balaji-storefront/internal/domain"
	"balaji-storefront/internal/service/checkout"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// writeError maps service errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrors(verrs)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
	case errors.Is(err, checkout.ErrStepIncomplete),
		errors.Is(err, checkout.ErrOrderInFlight),
		errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; nothing useful to send.
		c.Status(499)
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindJSON binds the body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(c, err)
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
