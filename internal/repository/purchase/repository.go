package purchase

import (
	"context"

	"marketplace-api/internal/domain"
)

// Repository is an append-only ledger of completed purchases. Records
// are never mutated or deleted after Create.
type Repository interface {
	Create(ctx context.Context, p domain.Purchase) (*domain.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error)
}
