package purchase

import (
	"context"
	"sync"

	"marketplace-api/internal/domain"
)

type memoryRepo struct {
	mu        sync.RWMutex
	purchases []domain.Purchase
}

// NewMemory returns a Repository holding purchases in process memory in
// creation order.
func NewMemory() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, p domain.Purchase) (*domain.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy the items so later edits to the caller's slice cannot reach
	// the ledger.
	items := make([]domain.PurchaseItem, len(p.Items))
	copy(items, p.Items)
	p.Items = items

	r.purchases = append(r.purchases, p)
	out := p
	return &out, nil
}

func (r *memoryRepo) ListByUser(_ context.Context, userID string) ([]domain.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}
