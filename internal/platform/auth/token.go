package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// resetTokenTTL is the fixed lifetime of password-reset tokens. Reset tokens
// use the same signer and encoding as session tokens; only the expiry differs.
const resetTokenTTL = 10 * time.Minute

// TokenIssuer signs and verifies HS256 tokens carrying a single subject id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue produces a signed session token for the given subject.
func (t *TokenIssuer) Issue(id uuid.UUID) (string, error) {
	return t.sign(id, t.ttl)
}

// IssueReset produces a short-lived password-reset token. There is no
// single-use store: a reset token stays valid until expiry even after a
// successful reset.
func (t *TokenIssuer) IssueReset(id uuid.UUID) (string, error) {
	return t.sign(id, resetTokenTTL)
}

func (t *TokenIssuer) sign(id uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its subject id. It fails when the
// signature is invalid, the token is malformed, or it has expired.
func (t *TokenIssuer) Verify(tokenStr string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject")
	}
	return id, nil
}
