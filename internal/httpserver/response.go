package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-api/internal/domain"
)

// validationResponse writes the aggregated field failures of a request.
// Returns false when err is not a validation error so the caller can
// keep mapping.
func validationResponse(c *gin.Context, err error) bool {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return true
	}
	return false
}

// serverError hides internal failures behind a generic message.
func serverError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}
