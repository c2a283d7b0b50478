package http

import (
	"encoding/json"
	"net/http"

	"github.com/tabcorehq/directoryd/internal/directory/service"
	"github.com/tabcorehq/directoryd/pkg/dirsdk"
	"github.com/tabcorehq/directoryd/pkg/httpx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	TokenService *service.TokenService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dirsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.TokenService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dirsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// RefreshHandler serves POST /v1/auth/refresh. The refresh token is the
// bearer credential; no body is read.
type RefreshHandler struct {
	TokenService *service.TokenService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := httpx.BearerToken(r)
	if raw == "" {
		dirsdk.ErrInvalidToken.WriteError(w)
		return
	}

	access, err := h.TokenService.Refresh(r.Context(), raw)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dirsdk.AccessTokenResponse{
		AccessToken: access,
	})
}
