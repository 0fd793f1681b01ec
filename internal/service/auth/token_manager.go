package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"marketplace-api/internal/domain"
)

// tokenManager issues and validates the signed bearer tokens handed out
// on registration and login. Validation is stateless: nothing is stored
// server-side, expiry is checked from the claims.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func newTokenManager(secret string, ttl time.Duration) *tokenManager {
	return &tokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *tokenManager) Issue(userID, email string) (string, error) {
	now := time.Now()
	c := &claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Validate returns the user ID bound to a well-formed, unexpired token.
func (m *tokenManager) Validate(tokenStr string) (string, error) {
	c := &claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid || c.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return c.Subject, nil
}
