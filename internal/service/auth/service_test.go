package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace-api/internal/domain"
	userrepo "marketplace-api/internal/repository/user"
)

func newTestService() *Service {
	return New(userrepo.NewMemory(), "test-secret", 24*time.Hour)
}

func TestRegister_AggregatesAllFieldFailures(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Password: "short",
		Username: "ab",
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"email", "password", "username"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected failure for field %q, got %v", field, verr.Fields)
		}
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1", Username: "alice"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Same address with different casing must still collide.
	_, _, err := svc.Register(ctx, RegisterInput{Email: "A@X.COM", Password: "secret2", Username: "alice2"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	svc := newTestService()

	u, token, err := svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1", Username: "alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != u.ID {
		t.Fatalf("expected user id %s, got %s", u.ID, id)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1", Username: "alice"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errUnknown := svc.Login(ctx, "nobody@x.com", "secret1")
	_, _, errWrongPwd := svc.Login(ctx, "a@x.com", "wrong-pass")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPwd, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPwd)
	}
}

func TestLogin_Succeeds(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "secret1", Username: "alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	u, token, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, u.ID)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("verify login token: %v", err)
	}
}

func TestVerify_RejectsGarbageAndExpiredTokens(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("garbage token: expected ErrInvalidToken, got %v", err)
	}

	expiring := New(userrepo.NewMemory(), "test-secret", -time.Minute)
	_, token, err := expiring.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1", Username: "alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := expiring.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expired token: expected ErrInvalidToken, got %v", err)
	}
}
