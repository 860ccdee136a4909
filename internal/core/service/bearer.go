package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fleetworks/account-service/internal/core/domain"
)

// TokenTTL is the fixed validity window of issued bearer tokens.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the signed payload of a bearer token. Subject carries the
// account id.
type Claims struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Active        bool   `json:"active"`
	Approved      bool   `json:"approved"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates bearer tokens with a process-wide secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer builds an issuer. An empty secret is a startup error, not a
// per-call one; callers must treat it as fatal.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token issuer: signing secret is required")
	}
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window tokens are issued with.
func (i *TokenIssuer) TTL() time.Duration { return i.ttl }

// Issue signs a bearer token carrying the account's identity and lifecycle
// flags, valid for the issuer's window.
func (i *TokenIssuer) Issue(a *domain.Account) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		Email:         a.Email,
		Name:          a.Name,
		Role:          a.Role,
		Active:        a.Active,
		Approved:      a.Approved,
		EmailVerified: a.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate parses and verifies a signed token. Malformed input, a wrong
// signature and expiry all collapse into the single domain.ErrTokenInvalid
// so the boundary cannot leak which check failed.
func (i *TokenIssuer) Validate(signed string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
