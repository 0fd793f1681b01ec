package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"marketplace-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewPostgres returns a Repository backed by Postgres. Item snapshots
// are stored as JSONB since they are opaque copies, never queried by
// column.
func NewPostgres(pool *pgxpool.Pool, logger *logrus.Logger) Repository {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Purchase) (*domain.Purchase, error) {
	itemsJSON, err := json.Marshal(p.Items)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO purchases (id, user_id, items, total_amount, purchase_date)
VALUES ($1, $2, $3, $4::numeric, $5)
RETURNING id::text, user_id::text, items, total_amount::text, purchase_date
`
	return r.scanPurchase(r.pool.QueryRow(ctx, q, p.ID, p.UserID, itemsJSON, p.TotalAmount.String(), p.PurchaseDate))
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error) {
	const q = `
SELECT id::text, user_id::text, items, total_amount::text, purchase_date
FROM purchases
WHERE user_id = $1
ORDER BY purchase_date, id
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Errorf("purchase repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Purchase
	for rows.Next() {
		p, err := r.scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var p domain.Purchase
	var itemsJSON []byte
	var total string
	err := row.Scan(&p.ID, &p.UserID, &itemsJSON, &total, &p.PurchaseDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Errorf("purchase repo: scan error=%v", err)
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &p.Items); err != nil {
			return nil, err
		}
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	p.TotalAmount = d
	return &p, nil
}
