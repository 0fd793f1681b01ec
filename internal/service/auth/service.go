package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"marketplace-api/internal/domain"
	userrepo "marketplace-api/internal/repository/user"
)

// Service handles registration, login, and bearer-token verification.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	passwordMin int
	usernameMin int
}

// New creates a Service issuing tokens valid for ttl.
func New(repo userrepo.Repository, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(secret, ttl),
		passwordMin: 6,
		usernameMin: 3,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Register creates an account and returns it with a fresh token. All
// failing fields are reported together in one ValidationError.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	fields := map[string]string{}
	if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "must be a valid email"
	}
	if len(in.Password) < s.passwordMin {
		fields["password"] = fmt.Sprintf("must be at least %d characters", s.passwordMin)
	}
	if len(username) < s.usernameMin {
		fields["username"] = fmt.Sprintf("must be at least %d characters", s.usernameMin)
	}
	if len(fields) > 0 {
		return nil, "", &domain.ValidationError{Fields: fields}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	created, err := s.repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login validates credentials and returns the user with a fresh token.
// Unknown email and wrong password yield the same error so callers
// cannot probe which addresses are registered.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Verify returns the user ID bound to a valid token. It touches no
// state and never consults the user store.
func (s *Service) Verify(token string) (string, error) {
	return s.tokens.Validate(token)
}
