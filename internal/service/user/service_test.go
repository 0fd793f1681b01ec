package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-api/internal/domain"
	userrepo "marketplace-api/internal/repository/user"
)

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (*Service, *domain.User) {
	t.Helper()
	repo := userrepo.NewMemory()
	u, err := repo.Create(context.Background(), domain.User{
		ID:        "user-1",
		Email:     "a@x.com",
		Username:  "alice",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return New(repo), u
}

func TestProfile_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Profile(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile_PartialPatch(t *testing.T) {
	svc, u := newTestService(t)

	updated, err := svc.UpdateProfile(context.Background(), u.ID, UpdateInput{Username: strPtr("alice2")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "alice2" {
		t.Fatalf("expected username alice2, got %q", updated.Username)
	}
	if updated.Email != "a@x.com" {
		t.Fatalf("expected email untouched, got %q", updated.Email)
	}
}

func TestUpdateProfile_ValidatesPatchFields(t *testing.T) {
	svc, u := newTestService(t)

	_, err := svc.UpdateProfile(context.Background(), u.ID, UpdateInput{
		Username: strPtr("ab"),
		Email:    strPtr("not-an-email"),
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["username"]; !ok {
		t.Fatalf("expected username failure, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Fatalf("expected email failure, got %v", verr.Fields)
	}
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	repo := userrepo.NewMemory()
	ctx := context.Background()
	if _, err := repo.Create(ctx, domain.User{ID: "user-1", Email: "a@x.com", Username: "alice"}); err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	if _, err := repo.Create(ctx, domain.User{ID: "user-2", Email: "b@x.com", Username: "bob"}); err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	svc := New(repo)

	_, err := svc.UpdateProfile(ctx, "user-2", UpdateInput{Email: strPtr("a@x.com")})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Re-submitting your own email is not a conflict.
	if _, err := svc.UpdateProfile(ctx, "user-2", UpdateInput{Email: strPtr("b@x.com")}); err != nil {
		t.Fatalf("same email: %v", err)
	}
}
