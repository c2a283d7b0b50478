package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tabcorehq/directoryd/internal/directory/domain"
	"github.com/tabcorehq/directoryd/internal/directory/service"
	"github.com/tabcorehq/directoryd/pkg/dirsdk"
	"github.com/tabcorehq/directoryd/pkg/httpx"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// UsersHandler serves the protected /v1/users CRUD surface.
type UsersHandler struct {
	UserService *service.UserService
}

func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pagination(r)
	if !ok {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	users, err := h.UserService.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]dirsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dirsdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	created, err := h.UserService.Create(r.Context(), &domain.User{
		Email:               req.Email,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		PhoneNumber:         req.PhoneNumber,
		ExternalDirectoryID: req.ExternalDirectoryID,
		NotificationToken:   req.NotificationToken,
	}, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUser(created))
}

// HandlePut replaces the user's full state. An empty password field
// leaves the stored hash alone.
func (h *UsersHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var req dirsdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u.Email = req.Email
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.PhoneNumber = req.PhoneNumber
	u.ExternalDirectoryID = req.ExternalDirectoryID
	u.NotificationToken = req.NotificationToken
	if req.Password != "" {
		if err := h.UserService.SetPassword(u, req.Password); err != nil {
			writeError(w, r, err)
			return
		}
	}

	updated, err := h.UserService.Update(r.Context(), u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(updated))
}

// HandlePatch updates only the fields present in the body.
func (h *UsersHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var req dirsdk.PatchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.ExternalDirectoryID != nil {
		u.ExternalDirectoryID = *req.ExternalDirectoryID
	}
	if req.NotificationToken != nil {
		u.NotificationToken = *req.NotificationToken
	}
	if req.Password != nil {
		if err := h.UserService.SetPassword(u, *req.Password); err != nil {
			writeError(w, r, err)
			return
		}
	}

	updated, err := h.UserService.Update(r.Context(), u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(updated))
}

func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		dirsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.UserService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func pagination(r *http.Request) (skip, limit int, ok bool) {
	skip, limit = 0, defaultListLimit

	q := r.URL.Query()
	if raw := q.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		skip = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			return 0, 0, false
		}
		limit = n
	}
	return skip, limit, true
}
