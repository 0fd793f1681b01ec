package product

import (
	"context"

	"marketplace-api/internal/domain"
)

// Filter narrows a catalog listing. Category is an exact match and is
// ignored when empty; Search is a case-insensitive substring match
// against title or description. Offset/Limit slice the filtered set.
type Filter struct {
	Category string
	Search   string
	Offset   int
	Limit    int
}

// Repository persists product listings. List returns the requested page
// in creation order plus the total count of matches before slicing.
type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	List(ctx context.Context, f Filter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
