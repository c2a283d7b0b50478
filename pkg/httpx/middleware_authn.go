package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tabcorehq/directoryd/pkg/jwtx"
	"github.com/tabcorehq/directoryd/pkg/slogx"
)

// BearerToken extracts the bearer credential from the Authorization
// header. Returns the empty string when no bearer token is present.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}

// Identity best-effort decodes any bearer token and binds the subject as
// the acting user for the request. Decode failures of any sort leave the
// actor unset rather than failing the request: identity extraction never
// aborts a request, route protection is RequireAccess's job.
func Identity(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := BearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := codec.Decode(raw)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			id, err := claims.UserID()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), id)))
		})
	}
}

// RequireAccess enforces a valid, non-expired access-kind token. Missing
// or cryptographically invalid tokens yield 401; a well-formed token that
// is expired or of the wrong kind yields 400, since those are distinct,
// user-correctable failures.
func RequireAccess(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := BearerToken(r)
			if raw == "" {
				writeBearerError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
				return
			}

			claims, err := codec.Decode(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, http.StatusBadRequest, "token_expired", "token expired")
					return
				}
				log.Warn("access token verification failed", "err", err)
				writeBearerError(w, http.StatusUnauthorized, "invalid_token", "token verification failed")
				return
			}

			userID, err := codec.VerifyKind(claims, jwtx.KindAccess)
			if err != nil {
				writeBearerError(w, http.StatusBadRequest, "wrong_token_type",
					"invalid token type, access token required")
				return
			}

			ctx = WithActor(ctx, userID)
			ctx = WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-style error response for bearer auth failures.
func writeBearerError(w http.ResponseWriter, status int, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	WriteJSON(w, status, map[string]string{
		"error":             code,
		"error_description": desc,
	})
}
