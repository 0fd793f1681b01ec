package cart

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"marketplace-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewPostgres returns a Repository backed by Postgres. The unique index
// on (user_id, product_id) drives the insert-or-increment upsert.
func NewPostgres(pool *pgxpool.Pool, logger *logrus.Logger) Repository {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Add(ctx context.Context, item domain.CartItem) (*domain.CartItem, error) {
	const q = `
INSERT INTO cart_items (id, user_id, product_id, quantity, added_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id::text, user_id::text, product_id::text, quantity, added_at
`
	var out domain.CartItem
	err := r.pool.QueryRow(ctx, q, item.ID, item.UserID, item.ProductID, item.Quantity, item.AddedAt).
		Scan(&out.ID, &out.UserID, &out.ProductID, &out.Quantity, &out.AddedAt)
	if err != nil {
		r.logger.Errorf("cart repo: add user_id=%s product_id=%s error=%v", item.UserID, item.ProductID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartItem, error) {
	const q = `
SELECT id::text, user_id::text, product_id::text, quantity, added_at
FROM cart_items
WHERE user_id = $1
ORDER BY added_at, id
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Errorf("cart repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		r.logger.Errorf("cart repo: remove user_id=%s product_id=%s error=%v", userID, productID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.logger.Errorf("cart repo: clear user_id=%s error=%v", userID, err)
		return err
	}
	return nil
}
