package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"marketplace-api/internal/config"
	"marketplace-api/internal/db"
	productrepo "marketplace-api/internal/repository/product"
	userrepo "marketplace-api/internal/repository/user"
	"marketplace-api/internal/seed"
	authsvc "marketplace-api/internal/service/auth"
	productsvc "marketplace-api/internal/service/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := logrus.New()

	if cfg.DBConnString == "" {
		logger.Fatal("seed requires DB_DSN to be set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgres(pool, logger)
	products := productrepo.NewPostgres(pool, logger)
	auth := authsvc.New(users, cfg.JWTSecret, cfg.TokenTTL)
	productService := productsvc.New(products, users)

	if err := seed.Apply(ctx, users, auth, productService); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Info("seed applied")
}
