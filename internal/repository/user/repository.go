package user

import (
	"context"

	"marketplace-api/internal/domain"
)

// Repository persists and fetches users. Emails are unique across the
// whole store; Create and Update return domain.ErrAlreadyExists when a
// different user already holds the email.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, u domain.User) (*domain.User, error)
}
