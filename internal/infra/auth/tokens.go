// Package auth issues and verifies HMAC-signed access tokens.
// The token subject is the owner ID that scopes every storage query.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clientive/clientive/internal/domain"
)

// Issuer is the iss claim of every token.
const Issuer = "clientive"

// Ensure TokenManager implements domain.TokenService.
var _ domain.TokenService = (*TokenManager)(nil)

// TokenManager signs tokens with HS256.
type TokenManager struct {
	now    func() time.Time
	secret []byte
}

// NewTokenManager creates a TokenManager for the given secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed token for owner that expires after ttl.
func (m *TokenManager) Issue(owner string, ttl time.Duration) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, errors.New("auth secret not configured")
	}
	if owner == "" {
		return "", time.Time{}, domain.ErrNoOwner
	}
	now := m.now()
	expiresAt := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": owner,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": Issuer,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses token and returns its subject.
func (m *TokenManager) Verify(token string) (string, error) {
	if len(m.secret) == 0 || token == "" {
		return "", domain.ErrUnauthorized
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}
	return sub, nil
}
