package service

import (
	"context"
	"errors"
	"time"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/internal/directory/store"
	"github.com/tabcorehq/directoryd/pkg/jwtx"
)

type TokenService struct {
	Codec *jwtx.Codec
	Users *UserService
}

// Login authenticates the credentials and mints a fresh access/refresh
// pair. Any credential failure surfaces as ErrInvalidCredentials.
func (s *TokenService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	u, err := s.Users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	access, err := s.Codec.EncodeAccess(u.ID, u.Email, now)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Codec.EncodeRefresh(u.ID, now)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated; it stays valid until expiry.
//
// Decode failures pass through as jwtx errors so callers can tell an
// expired token from a malformed one. An access token presented here is
// jwtx.ErrWrongKind. A subject that no longer resolves to a live user
// is ErrInvalidCredentials.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Codec.Decode(refreshToken)
	if err != nil {
		return "", err
	}

	userID, err := s.Codec.VerifyKind(claims, jwtx.KindRefresh)
	if err != nil {
		return "", err
	}

	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return s.Codec.EncodeAccess(u.ID, u.Email, time.Now())
}
