// Package auth implements the stateless bearer-token service: signed,
// time-limited JWTs bound to a user id. There is no server-side token
// state, so logout is purely a client-side discard and issued tokens
// remain valid until they expire.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, expired, malformed, or wrong algorithm.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload. UserID mirrors the wire field "userId".
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256-signed session tokens.
type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

// New creates a token service with the given secret and the default
// 7-day expiry.
func New(secret string) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: DefaultTTL}
}

// Issue signs a token for the given user id, expiring TTL from now.
func (t *Tokens) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

// Verify parses and validates a token, returning the user id it was
// issued for. Any failure maps to ErrInvalidToken.
func (t *Tokens) Verify(tokenStr string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return t.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
