package cart

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-api/internal/domain"
	"marketplace-api/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE cart_items, purchases, products, users CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func insertUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO users (id, email, username, password_hash) VALUES ($1, $2, 'tester', 'hash')`, id, id+"@x.com")
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func TestPostgres_AddMergesOnConflict(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	userID := insertUser(ctx, t, pool)
	productID := uuid.NewString()
	repo := NewPostgres(pool, nil)

	first, err := repo.Add(ctx, domain.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		AddedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("first Add: %v", err)
	}

	second, err := repo.Add(ctx, domain.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  2,
		AddedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the existing line to be kept, got new id %s", second.ID)
	}
	if second.Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", second.Quantity)
	}

	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
}

func TestPostgres_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	userID := insertUser(ctx, t, pool)
	repo := NewPostgres(pool, nil)

	if err := repo.Remove(ctx, userID, uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	productID := uuid.NewString()
	if _, err := repo.Add(ctx, domain.CartItem{ID: uuid.NewString(), UserID: userID, ProductID: productID, Quantity: 1, AddedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Remove(ctx, userID, productID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := repo.Add(ctx, domain.CartItem{ID: uuid.NewString(), UserID: userID, ProductID: uuid.NewString(), Quantity: 1, AddedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Clear(ctx, userID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
}
