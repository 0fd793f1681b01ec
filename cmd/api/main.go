package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"marketplace-api/internal/config"
	"marketplace-api/internal/db"
	"marketplace-api/internal/httpserver"
	cartrepo "marketplace-api/internal/repository/cart"
	productrepo "marketplace-api/internal/repository/product"
	purchaserepo "marketplace-api/internal/repository/purchase"
	userrepo "marketplace-api/internal/repository/user"
	authsvc "marketplace-api/internal/service/auth"
	cartsvc "marketplace-api/internal/service/cart"
	productsvc "marketplace-api/internal/service/product"
	purchasesvc "marketplace-api/internal/service/purchase"
	usersvc "marketplace-api/internal/service/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()

	var (
		users     userrepo.Repository
		products  productrepo.Repository
		carts     cartrepo.Repository
		purchases purchaserepo.Repository
	)
	var pool *pgxpool.Pool
	if cfg.DBConnString != "" {
		p, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer p.Close()
		pool = p
		users = userrepo.NewPostgres(p, logger)
		products = productrepo.NewPostgres(p, logger)
		carts = cartrepo.NewPostgres(p, logger)
		purchases = purchaserepo.NewPostgres(p, logger)
		logger.Info("storage backend: postgres")
	} else {
		users = userrepo.NewMemory()
		products = productrepo.NewMemory()
		carts = cartrepo.NewMemory()
		purchases = purchaserepo.NewMemory()
		logger.Info("storage backend: in-memory (state is lost on restart)")
	}

	authService := authsvc.New(users, cfg.JWTSecret, cfg.TokenTTL)
	userService := usersvc.New(users)
	productService := productsvc.New(products, users)
	cartService := cartsvc.New(carts, products)
	purchaseService := purchasesvc.New(purchases, cartService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		Auth:      authService,
		Users:     userService,
		Products:  productService,
		Carts:     cartService,
		Purchases: purchaseService,
	}, httpserver.Options{
		CORSOrigins:    cfg.CORSOrigins(),
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AccessLog:      cfg.HTTPLogEnabled,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
}
