package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-api/internal/domain"
	authsvc "marketplace-api/internal/service/auth"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func registerHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": bindingDetails(err)})
			return
		}

		user, token, err := auth.Register(c.Request.Context(), authsvc.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Username: req.Username,
		})
		if err != nil {
			if validationResponse(c, err) {
				return
			}
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
				return
			}
			serverError(c)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"token":   token,
			"user":    user,
		})
	}
}

func loginHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": bindingDetails(err)})
			return
		}

		user, token, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
				return
			}
			serverError(c)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}
