package purchase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketplace-api/internal/domain"
	purchaserepo "marketplace-api/internal/repository/purchase"
	cartsvc "marketplace-api/internal/service/cart"
)

// Carts is the slice of the cart service checkout needs.
type Carts interface {
	Items(ctx context.Context, userID string) ([]cartsvc.Line, error)
	Clear(ctx context.Context, userID string) error
}

// Service turns carts into immutable purchase receipts.
type Service struct {
	repo   purchaserepo.Repository
	carts  Carts
	logger *logrus.Logger
}

func New(repo purchaserepo.Repository, carts Carts, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Service{repo: repo, carts: carts, logger: logger}
}

// Checkout snapshots every valid cart line at its current price and
// title, appends the purchase to the ledger, then clears the cart. The
// purchase is recorded before the clear: if clearing fails the receipt
// still stands and the failure is only logged.
func (s *Service) Checkout(ctx context.Context, userID string) (*domain.Purchase, error) {
	lines, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]domain.PurchaseItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, domain.PurchaseItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
			Title:     line.Product.Title,
		})
	}

	created, err := s.repo.Create(ctx, domain.Purchase{
		ID:           uuid.NewString(),
		UserID:       userID,
		Items:        items,
		TotalAmount:  total,
		PurchaseDate: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Warnf("checkout: purchase %s recorded but cart clear failed for user %s: %v", created.ID, userID, err)
	}
	return created, nil
}

// History returns the user's purchases in creation order.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Purchase, error) {
	return s.repo.ListByUser(ctx, userID)
}
