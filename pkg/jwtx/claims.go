package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "type" claim. A token of one kind must never
// be accepted where the other is required.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Default token TTLs. Short-lived access tokens, long-lived refresh
// tokens; both can be overridden per-service via config.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 15 * 24 * time.Hour
)

// Claims is the signed claims set: registered sub/iat/exp plus the token
// kind and, for access tokens only, the subject's email (informational).
type Claims struct {
	jwt.RegisteredClaims

	// Kind is the token kind, "access" or "refresh".
	Kind string `json:"type,omitempty"`

	// Email is set on access tokens only.
	Email string `json:"email,omitempty"`
}

// UserID parses the subject claim as the integer user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidClaims
	}
	return id, nil
}

func newClaims(userID int64, kind, email string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind:  kind,
		Email: email,
	}
}
