package dirsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tabcorehq/directoryd/pkg/httpx"
)

// Error codes used in the "error" field of error responses.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeWrongTokenType     = "wrong_token_type"
	ErrorCodeDuplicateEmail     = "duplicate_email"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// Error is the service's wire error shape. It implements the error
// interface and is shared by the server (to write responses) and the
// SDK client (to surface them).
type Error struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this Error to an HTTP response writer.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or
	// missing required fields.
	ErrInvalidRequest = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	// ErrInvalidCredentials is returned for any login or refresh failure
	// tied to the presented credentials. It never says which part failed.
	ErrInvalidCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrInvalidToken is returned when a bearer token is missing,
	// malformed, or carries a bad signature.
	ErrInvalidToken = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid token",
	}

	// ErrTokenExpired is returned for a structurally valid token past its
	// expiry, distinct from ErrInvalidToken.
	ErrTokenExpired = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeTokenExpired,
		Description: "token expired",
	}

	// ErrAccessTokenRequired is returned when a refresh token is presented
	// where an access token is required.
	ErrAccessTokenRequired = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWrongTokenType,
		Description: "invalid token type, access token required",
	}

	// ErrRefreshTokenRequired is returned when an access token is presented
	// where a refresh token is required.
	ErrRefreshTokenRequired = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWrongTokenType,
		Description: "invalid token type, refresh token required",
	}

	// ErrDuplicateEmail is returned when a create or update collides with
	// a live user's email.
	ErrDuplicateEmail = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicateEmail,
		Description: "user with this email already exists",
	}

	// ErrNotFound is returned when the requested entity does not exist or
	// has been deleted.
	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}

	// ErrServerError is returned for unexpected failures. The detail stays
	// in the server logs, cross-referenced by the X-Request-ID header.
	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
