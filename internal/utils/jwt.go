package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aidesk/saas-backend/internal/model"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, malformed payload or expiry. Callers do not get to distinguish
// them; an expired token and a forged one are rejected the same way.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the payload of a short-lived access token. UserID is the
// hex object id of the account; Role authorizes the request through the
// role gate without a store lookup.
type AccessClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token. It carries only the user
// id; the role is re-read from the store when a new access token is minted,
// so a role change takes effect on the next refresh.
type RefreshClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// NewAccessToken signs an HS256 access token for the user.
func NewAccessToken(secret, userID string, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := AccessClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// NewRefreshToken signs an HS256 refresh token for the user. Refresh tokens
// are never persisted or rotated; any token that verifies is honored until
// it expires.
func NewRefreshToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAccessToken checks the signature and expiry of an access token and
// returns its claims.
func VerifyAccessToken(secret, raw string) (AccessClaims, error) {
	var claims AccessClaims
	if err := verify(secret, raw, &claims); err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

// VerifyRefreshToken checks the signature and expiry of a refresh token and
// returns its claims.
func VerifyRefreshToken(secret, raw string) (RefreshClaims, error) {
	var claims RefreshClaims
	if err := verify(secret, raw, &claims); err != nil {
		return RefreshClaims{}, err
	}
	return claims, nil
}

func verify(secret, raw string, claims jwt.Claims) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// Pin the signing method to HMAC; reject tokens using anything else.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return ErrInvalidToken
	}
	return nil
}
