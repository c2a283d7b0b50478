package http

import (
	"errors"
	"net/http"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/internal/directory/service"
	"github.com/tabcorehq/directoryd/internal/directory/store"
	"github.com/tabcorehq/directoryd/pkg/dirsdk"
	"github.com/tabcorehq/directoryd/pkg/jwtx"
	"github.com/tabcorehq/directoryd/pkg/slogx"
)

// toUser maps the persistence model to the wire shape. The password
// hash never leaves this boundary.
func toUser(u *domain.User) dirsdk.User {
	return dirsdk.User{
		ID:                  u.ID,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		PhoneNumber:         u.PhoneNumber,
		ExternalDirectoryID: u.ExternalDirectoryID,
		NotificationToken:   u.NotificationToken,
		CreatedUserID:       u.CreatedUserID,
		CreatedAt:           u.CreatedAt,
		UpdatedUserID:       u.UpdatedUserID,
		UpdatedAt:           u.UpdatedAt,
	}
}

// writeError translates a domain error into exactly one wire error.
// Anything outside the taxonomy becomes a 500 with the detail logged
// server-side; the X-Request-ID response header is the correlation
// handle back into the logs.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		dirsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, store.ErrDuplicateEmail):
		dirsdk.ErrDuplicateEmail.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		dirsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, jwtx.ErrExpired):
		dirsdk.ErrTokenExpired.WriteError(w)
	case errors.Is(err, jwtx.ErrWrongKind):
		dirsdk.ErrRefreshTokenRequired.WriteError(w)
	case errors.Is(err, jwtx.ErrMalformed),
		errors.Is(err, jwtx.ErrInvalidSignature),
		errors.Is(err, jwtx.ErrInvalidClaims):
		dirsdk.ErrInvalidToken.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		dirsdk.ErrServerError.WriteError(w)
	}
}
