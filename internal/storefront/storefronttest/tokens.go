package storefronttest

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/five82/vitrine/internal/storefront"
)

const minPasswordLength = 5

var errTokenRevoked = errors.New("access token revoked")

func hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func checkPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// issueToken signs a customer access token for email.
func (b *Backend) issueToken(email string) (*storefront.CustomerAccessToken, error) {
	expires := time.Now().Add(b.opts.TokenTTL).UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.opts.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &storefront.CustomerAccessToken{
		AccessToken: signed,
		ExpiresAt:   expires.Format(time.RFC3339),
	}, nil
}

// verifyToken returns the email a live token was issued for.
func (b *Backend) verifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return b.opts.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse access token: %w", err)
	}
	if !parsed.Valid {
		return "", errors.New("invalid access token")
	}

	b.mu.Lock()
	revoked := b.revoked[token]
	b.mu.Unlock()
	if revoked {
		return "", errTokenRevoked
	}
	return claims.Subject, nil
}
