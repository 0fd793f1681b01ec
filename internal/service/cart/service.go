package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"marketplace-api/internal/domain"
	cartrepo "marketplace-api/internal/repository/cart"
	productrepo "marketplace-api/internal/repository/product"
)

// Service manages per-user carts. Product references are validated on
// add; on read, lines whose product has since been deleted are dropped
// silently rather than surfaced as errors.
type Service struct {
	repo     cartrepo.Repository
	products productrepo.Repository
}

func New(repo cartrepo.Repository, products productrepo.Repository) *Service {
	return &Service{repo: repo, products: products}
}

// Add puts quantity units of the product in the user's cart, merging
// into an existing line when one exists. Quantities below one are
// treated as one.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	_, err := s.repo.Add(ctx, domain.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	})
	return err
}

// Line is a cart item joined with its current listing.
type Line struct {
	domain.CartItem
	Product domain.Product `json:"product"`
}

// Items returns the user's cart joined against the catalog. Dangling
// lines are excluded from the result and left in the store.
func (s *Service) Items(ctx context.Context, userID string) ([]Line, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var lines []Line
	for _, item := range items {
		p, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if err == domain.ErrNotFound {
				continue
			}
			return nil, err
		}
		lines = append(lines, Line{CartItem: item, Product: *p})
	}
	return lines, nil
}

// Remove deletes the line for (user, product); ErrNotFound when no such
// line exists.
func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	return s.repo.Remove(ctx, userID, productID)
}

// Clear empties the user's cart. Used by checkout.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}
