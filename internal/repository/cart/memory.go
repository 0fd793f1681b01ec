package cart

import (
	"context"
	"sync"

	"marketplace-api/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	items []domain.CartItem
}

// NewMemory returns a Repository holding cart lines in process memory.
func NewMemory() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Add(_ context.Context, item domain.CartItem) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			r.items[i].Quantity += item.Quantity
			out := r.items[i]
			return &out, nil
		}
	}
	r.items = append(r.items, item)
	out := item
	return &out, nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID string) ([]domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *memoryRepo) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memoryRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}
