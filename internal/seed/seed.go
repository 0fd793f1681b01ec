package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"marketplace-api/internal/domain"
	userrepo "marketplace-api/internal/repository/user"
	authsvc "marketplace-api/internal/service/auth"
	productsvc "marketplace-api/internal/service/product"
)

type accountSeed struct {
	Email    string
	Password string
	Username string
	Listings []listingSeed
}

type listingSeed struct {
	Title       string
	Description string
	Category    string
	Price       string
}

var demoAccounts = []accountSeed{
	{
		Email:    "demo@marketplace.local",
		Password: "demo-pass",
		Username: "demo",
		Listings: []listingSeed{
			{
				Title:       "City Bike",
				Description: "Well-kept commuter bike, 21 gears",
				Category:    "Sports",
				Price:       "120.00",
			},
			{
				Title:       "Paperback Bundle",
				Description: "Five novels in good condition",
				Category:    "Books",
				Price:       "15.50",
			},
		},
	},
	{
		Email:    "seller@marketplace.local",
		Password: "seller-pass",
		Username: "seller",
		Listings: []listingSeed{
			{
				Title:       "Bluetooth Speaker",
				Description: "Portable speaker, barely used",
				Category:    "Electronics",
				Price:       "34.99",
			},
		},
	},
}

// Apply inserts demo accounts and listings for manual testing. It is
// idempotent: existing accounts are reused and listings are matched by
// title per seller.
func Apply(ctx context.Context, users userrepo.Repository, auth *authsvc.Service, products *productsvc.Service) error {
	for _, a := range demoAccounts {
		u, err := users.GetByEmail(ctx, a.Email)
		if errors.Is(err, domain.ErrNotFound) {
			u, _, err = auth.Register(ctx, authsvc.RegisterInput{
				Email:    a.Email,
				Password: a.Password,
				Username: a.Username,
			})
		}
		if err != nil {
			return fmt.Errorf("ensure account %s: %w", a.Email, err)
		}

		existing, err := products.ListBySeller(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("list listings for %s: %w", a.Email, err)
		}
		have := make(map[string]bool, len(existing))
		for _, p := range existing {
			have[p.Title] = true
		}

		for _, l := range a.Listings {
			if have[l.Title] {
				continue
			}
			price, err := decimal.NewFromString(l.Price)
			if err != nil {
				return fmt.Errorf("parse price for %q: %w", l.Title, err)
			}
			if _, err := products.Create(ctx, u.ID, productsvc.Input{
				Title:       l.Title,
				Description: l.Description,
				Category:    l.Category,
				Price:       price,
			}); err != nil {
				return fmt.Errorf("create listing %q: %w", l.Title, err)
			}
		}
	}
	return nil
}
