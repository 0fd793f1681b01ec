package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-api/internal/domain"
	productsvc "marketplace-api/internal/service/product"
)

func createProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productsvc.Input
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": bindingDetails(err)})
			return
		}

		p, err := products.Create(c.Request.Context(), callerID(c), req)
		if err != nil {
			if validationResponse(c, err) {
				return
			}
			serverError(c)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"product": p,
		})
	}
}

func listProductsHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := intQuery(c, "page", 1)
		limit := intQuery(c, "limit", 10)

		result, err := products.List(c.Request.Context(), c.Query("category"), c.Query("search"), page, limit)
		if err != nil {
			serverError(c)
			return
		}

		items := result.Products
		if items == nil {
			items = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{
			"products":   items,
			"total":      result.Total,
			"page":       result.Page,
			"totalPages": result.TotalPages,
		})
	}
}

func getProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			serverError(c)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func myProductsHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.ListBySeller(c.Request.Context(), callerID(c))
		if err != nil {
			serverError(c)
			return
		}
		if list == nil {
			list = []domain.Product{}
		}
		c.JSON(http.StatusOK, list)
	}
}

func updateProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productsvc.Input
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": bindingDetails(err)})
			return
		}

		p, err := products.Update(c.Request.Context(), c.Param("id"), callerID(c), req)
		if err != nil {
			switch {
			case validationResponse(c, err):
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.Is(err, domain.ErrForbidden):
				c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this product"})
			default:
				serverError(c)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"product": p,
		})
	}
}

func deleteProductHandler(products ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := products.Delete(c.Request.Context(), c.Param("id"), callerID(c))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.Is(err, domain.ErrForbidden):
				c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this product"})
			default:
				serverError(c)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
