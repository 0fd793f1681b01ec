package user

import (
	"context"
	"strings"
	"sync"

	"marketplace-api/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewMemory returns a Repository holding users in process memory.
// State lives for the lifetime of the process only.
func NewMemory() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = normalizeEmail(u.Email)
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrAlreadyExists
		}
	}
	r.users = append(r.users, u)
	out := u
	return &out, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = normalizeEmail(email)
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Update(_ context.Context, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = normalizeEmail(u.Email)
	idx := -1
	for i, existing := range r.users {
		if existing.ID == u.ID {
			idx = i
			continue
		}
		if existing.Email == u.Email {
			return nil, domain.ErrAlreadyExists
		}
	}
	if idx == -1 {
		return nil, domain.ErrNotFound
	}
	r.users[idx] = u
	out := u
	return &out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
