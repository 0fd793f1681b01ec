package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-api/internal/domain"
	cartsvc "marketplace-api/internal/service/cart"
)

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addToCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": bindingDetails(err)})
			return
		}

		err := carts.Add(c.Request.Context(), callerID(c), req.ProductID, req.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			serverError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product added to cart"})
	}
}

func getCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := carts.Items(c.Request.Context(), callerID(c))
		if err != nil {
			serverError(c)
			return
		}
		if lines == nil {
			lines = []cartsvc.Line{}
		}
		c.JSON(http.StatusOK, lines)
	}
}

func removeFromCartHandler(carts CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := carts.Remove(c.Request.Context(), callerID(c), c.Param("productId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
				return
			}
			serverError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}
