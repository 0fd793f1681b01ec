package cart

import (
	"context"

	"marketplace-api/internal/domain"
)

// Repository persists cart lines. Add is an atomic insert-or-increment:
// when a line for (user, product) already exists its quantity grows by
// item.Quantity and the stored line keeps its original ID and AddedAt.
type Repository interface {
	Add(ctx context.Context, item domain.CartItem) (*domain.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error)
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}
