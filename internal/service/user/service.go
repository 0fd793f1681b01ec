package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"marketplace-api/internal/domain"
	userrepo "marketplace-api/internal/repository/user"
)

// Service exposes profile reads and partial profile updates.
type Service struct {
	repo        userrepo.Repository
	usernameMin int
}

func New(repo userrepo.Repository) *Service {
	return &Service{repo: repo, usernameMin: 3}
}

// Profile returns the account for id.
func (s *Service) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput carries the optional profile patch. Nil fields are left
// unchanged.
type UpdateInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// UpdateProfile applies the patch and re-checks email uniqueness when
// the email changes.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateInput) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if len(username) < s.usernameMin {
			fields["username"] = fmt.Sprintf("must be at least %d characters", s.usernameMin)
		} else {
			u.Username = username
		}
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			fields["email"] = "must be a valid email"
		} else {
			u.Email = email
		}
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	return s.repo.Update(ctx, *u)
}
