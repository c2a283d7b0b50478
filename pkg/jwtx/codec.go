package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("jwtx: malformed token")
	ErrInvalidSignature = errors.New("jwtx: invalid signature")
	ErrExpired          = errors.New("jwtx: token expired")
	ErrInvalidClaims    = errors.New("jwtx: invalid claims")

	// ErrWrongKind reports a structurally valid token of the wrong kind,
	// e.g. a refresh token presented where an access token is required.
	// It is deliberately distinct from the decode errors above: the HTTP
	// boundary maps it to a different response.
	ErrWrongKind = errors.New("jwtx: wrong token kind")
)

// Codec encodes and decodes signed, expiring claims sets using a
// pre-shared symmetric secret. Decode validates signature, structure and
// expiry only; kind checking is a distinct step (VerifyKind).
type Codec struct {
	secret []byte
	method jwt.SigningMethod

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewCodec builds a Codec for the given HMAC algorithm (HS256, HS384 or
// HS512). Zero TTLs fall back to the package defaults.
func NewCodec(secret []byte, algorithm string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: signing secret must not be empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("jwtx: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("jwtx: algorithm %q is not a symmetric HMAC method", algorithm)
	}

	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}

	return &Codec{
		secret:     secret,
		method:     method,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}, nil
}

// EncodeAccess mints an access token for the user, carrying the email as
// an informational claim.
func (c *Codec) EncodeAccess(userID int64, email string, now time.Time) (string, error) {
	return c.encode(newClaims(userID, KindAccess, email, now.UTC(), c.AccessTTL))
}

// EncodeRefresh mints a refresh token for the user.
func (c *Codec) EncodeRefresh(userID int64, now time.Time) (string, error) {
	return c.encode(newClaims(userID, KindRefresh, "", now.UTC(), c.RefreshTTL))
}

func (c *Codec) encode(claims Claims) (string, error) {
	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: signing failed: %w", err)
	}
	return signed, nil
}

// Decode validates the signature and expiry and returns the claims.
// Expired tokens surface as ErrExpired, distinct from generic
// invalid-signature or malformed tokens. Decode does not check the token
// kind; callers that require a specific kind use VerifyKind.
func (c *Codec) Decode(token string) (Claims, error) {
	claims := Claims{}
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		default:
			return Claims{}, ErrMalformed
		}
	}
	return claims, nil
}

// VerifyKind checks the decoded kind claim against the expected kind and
// returns the subject user id. Mismatch yields ErrWrongKind.
func (c *Codec) VerifyKind(claims Claims, expected string) (int64, error) {
	if claims.Kind != expected {
		return 0, ErrWrongKind
	}
	return claims.UserID()
}
