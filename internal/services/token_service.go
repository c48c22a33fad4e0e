package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("token is not valid")
)

// PrincipalKind discriminates the two account kinds sharing the API.
type PrincipalKind string

const (
	PrincipalUser    PrincipalKind = "user"
	PrincipalCompany PrincipalKind = "company"
)

// Principal is the authenticated identity attached to a request: exactly one
// account kind and its ID, never both.
type Principal struct {
	Kind PrincipalKind
	ID   uint64
}

// IsUser reports whether the principal is a user account.
func (p Principal) IsUser() bool { return p.Kind == PrincipalUser }

// IsCompany reports whether the principal is a company account.
func (p Principal) IsCompany() bool { return p.Kind == PrincipalCompany }

type tokenClaims struct {
	Kind PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed session tokens. Tokens are
// stateless; verification depends only on the signing secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with an explicitly injected secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue produces a signed token embedding the principal kind and ID.
func (s *TokenService) Issue(principal Principal) (string, error) {
	if principal.Kind != PrincipalUser && principal.Kind != PrincipalCompany {
		return "", fmt.Errorf("unknown principal kind: %q", principal.Kind)
	}

	now := time.Now()
	claims := tokenClaims{
		Kind: principal.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(principal.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token and returns the embedded principal.
// Any failure, bad signature, malformed payload, expiry or unknown kind,
// collapses to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (Principal, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	if claims.Kind != PrincipalUser && claims.Kind != PrincipalCompany {
		return Principal{}, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	return Principal{Kind: claims.Kind, ID: id}, nil
}
