package product

import (
	"context"
	"strings"
	"sync"

	"marketplace-api/internal/domain"
)

type memoryRepo struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemory returns a Repository holding listings in process memory in
// creation order.
func NewMemory() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, p)
	out := p
	return &out, nil
}

func (r *memoryRepo) List(_ context.Context, f Filter) ([]domain.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Product
	search := strings.ToLower(f.Search)
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := f.Offset
	if start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	page := make([]domain.Product, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) ListBySeller(_ context.Context, sellerID string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *memoryRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
