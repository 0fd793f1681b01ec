package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-api/internal/domain"
	usersvc "marketplace-api/internal/service/user"
)

func profileHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.Profile(c.Request.Context(), callerID(c))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			serverError(c)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func updateProfileHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req usersvc.UpdateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": bindingDetails(err)})
			return
		}

		u, err := users.UpdateProfile(c.Request.Context(), callerID(c), req)
		if err != nil {
			switch {
			case validationResponse(c, err):
			case errors.Is(err, domain.ErrAlreadyExists):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			default:
				serverError(c)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    u,
		})
	}
}
