package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-api/internal/domain"
)

func checkoutHandler(purchases PurchaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := purchases.Checkout(c.Request.Context(), callerID(c))
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
				return
			}
			serverError(c)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Purchase completed successfully",
			"purchase": p,
		})
	}
}

func purchaseHistoryHandler(purchases PurchaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := purchases.History(c.Request.Context(), callerID(c))
		if err != nil {
			serverError(c)
			return
		}
		if history == nil {
			history = []domain.Purchase{}
		}
		c.JSON(http.StatusOK, history)
	}
}
