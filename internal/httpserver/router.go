package httpserver

import (
	"context"
	"errors"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"marketplace-api/internal/domain"
	authsvc "marketplace-api/internal/service/auth"
	cartsvc "marketplace-api/internal/service/cart"
	productsvc "marketplace-api/internal/service/product"
	usersvc "marketplace-api/internal/service/user"
)

// AuthService issues and verifies bearer tokens.
type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Verify(token string) (string, error)
}

// UserService reads and patches profiles.
type UserService interface {
	Profile(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in usersvc.UpdateInput) (*domain.User, error)
}

// ProductService owns the catalog.
type ProductService interface {
	Create(ctx context.Context, sellerID string, in productsvc.Input) (*domain.Product, error)
	List(ctx context.Context, category, search string, page, limit int) (*productsvc.Page, error)
	Get(ctx context.Context, id string) (*productsvc.Detail, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, id, callerID string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id, callerID string) error
}

// CartService manages per-user carts.
type CartService interface {
	Add(ctx context.Context, userID, productID string, quantity int) error
	Items(ctx context.Context, userID string) ([]cartsvc.Line, error)
	Remove(ctx context.Context, userID, productID string) error
}

// PurchaseService turns carts into receipts.
type PurchaseService interface {
	Checkout(ctx context.Context, userID string) (*domain.Purchase, error)
	History(ctx context.Context, userID string) ([]domain.Purchase, error)
}

// Deps collects the services the router wires handlers to.
type Deps struct {
	Auth      AuthService
	Users     UserService
	Products  ProductService
	Carts     CartService
	Purchases PurchaseService
}

// buildRouter wires routes for the API.
func buildRouter(logger *logrus.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.Auth == nil || deps.Users == nil || deps.Products == nil || deps.Carts == nil || deps.Purchases == nil {
		return nil, errors.New("httpserver: all services must be set")
	}
	configureValidator()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if opts.AccessLog {
		router.Use(gin.LoggerWithWriter(logger.Writer()))
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	if opts.UploadDir != "" {
		if err := os.MkdirAll(opts.UploadDir, 0o755); err != nil {
			return nil, err
		}
		router.Static("/uploads", opts.UploadDir)
	}

	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/health", healthHandler)
	api.GET("/categories", categoriesHandler)

	api.POST("/auth/register", registerHandler(deps.Auth))
	api.POST("/auth/login", loginHandler(deps.Auth))

	api.GET("/products", listProductsHandler(deps.Products))
	api.GET("/products/:id", getProductHandler(deps.Products))

	authed := api.Group("", authRequired(deps.Auth))
	authed.GET("/user/profile", profileHandler(deps.Users))
	authed.PUT("/user/profile", updateProfileHandler(deps.Users))
	authed.GET("/user/products", myProductsHandler(deps.Products))

	authed.POST("/products", createProductHandler(deps.Products))
	authed.PUT("/products/:id", updateProductHandler(deps.Products))
	authed.DELETE("/products/:id", deleteProductHandler(deps.Products))

	authed.POST("/cart", addToCartHandler(deps.Carts))
	authed.GET("/cart", getCartHandler(deps.Carts))
	authed.DELETE("/cart/:productId", removeFromCartHandler(deps.Carts))

	authed.POST("/purchases", checkoutHandler(deps.Purchases))
	authed.GET("/purchases", purchaseHistoryHandler(deps.Purchases))

	if opts.UploadDir != "" {
		authed.POST("/upload", uploadHandler(logger, opts.UploadDir, opts.MaxUploadBytes))
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func categoriesHandler(c *gin.Context) {
	c.JSON(200, domain.Categories)
}
