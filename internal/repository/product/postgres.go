package product

import (
	"context"
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

// NewPostgres returns a Repository backed by Postgres. Prices are stored
// as NUMERIC and travel as text to avoid float rounding.
func NewPostgres(pool *pgxpool.Pool, logger *logrus.Logger) Repository {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, title, COALESCE(description, ''), category, price::text, image_url, seller_id::text, created_at`

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, title, description, category, price, image_url, seller_id, created_at)
VALUES ($1, $2, NULLIF($3, ''), $4, $5::numeric, $6, $7, $8)
RETURNING ` + productColumns
	return r.scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Title, p.Description, p.Category, p.Price.String(), p.ImageURL, p.SellerID, p.CreatedAt,
	))
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Product, int, error) {
	const where = `
WHERE ($1 = '' OR category = $1)
  AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
`
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products `+where, f.Category, f.Search).Scan(&total); err != nil {
		r.logger.Errorf("product repo: count error=%v", err)
		return nil, 0, err
	}

	q := `SELECT ` + productColumns + ` FROM products ` + where + ` ORDER BY created_at, id LIMIT $3 OFFSET $4`
	limit := f.Limit
	if limit <= 0 {
		limit = total
	}
	rows, err := r.pool.Query(ctx, q, f.Category, f.Search, limit, f.Offset)
	if err != nil {
		r.logger.Errorf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanProducts(rows)
	if err != nil {
		r.logger.Errorf("product repo: list rows error=%v", err)
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`
	return r.scanProduct(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, q, sellerID)
	if err != nil {
		r.logger.Errorf("product repo: list by seller error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET title = $2, description = NULLIF($3, ''), category = $4, price = $5::numeric, image_url = $6
WHERE id = $1
RETURNING ` + productColumns
	return r.scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Title, p.Description, p.Category, p.Price.String(), p.ImageURL,
	))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Errorf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanProduct(row pgx.Row) (*domain.Product, error) {
	p, err := scanProductRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Errorf("product repo: scan error=%v", err)
		return nil, err
	}
	return p, nil
}

func scanProductRow(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var price string
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &price, &p.ImageURL, &p.SellerID, &p.CreatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	p.Price = d
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		p, err := scanProductRow(rows)
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
