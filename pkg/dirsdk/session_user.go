package dirsdk

import (
	"context"
	"fmt"
	"net/http"
)

// CreateUser registers a new user.
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	user := &User{}
	if err := s.doAuthRequest(ctx, http.MethodPost, "/v1/users", req, user, http.StatusCreated); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser fetches a user by id.
func (s *Session) GetUser(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	path := fmt.Sprintf("/v1/users/%d", id)
	if err := s.doAuthRequest(ctx, http.MethodGet, path, nil, user, http.StatusOK); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers fetches a page of users in id order.
func (s *Session) ListUsers(ctx context.Context, skip, limit int) ([]User, error) {
	users := []User{}
	path := fmt.Sprintf("/v1/users?skip=%d&limit=%d", skip, limit)
	if err := s.doAuthRequest(ctx, http.MethodGet, path, nil, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces the user's full state.
func (s *Session) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	user := &User{}
	path := fmt.Sprintf("/v1/users/%d", id)
	if err := s.doAuthRequest(ctx, http.MethodPut, path, req, user, http.StatusOK); err != nil {
		return nil, err
	}
	return user, nil
}

// PatchUser updates only the fields set in req.
func (s *Session) PatchUser(ctx context.Context, id int64, req PatchUserRequest) (*User, error) {
	user := &User{}
	path := fmt.Sprintf("/v1/users/%d", id)
	if err := s.doAuthRequest(ctx, http.MethodPatch, path, req, user, http.StatusOK); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes the user.
func (s *Session) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/v1/users/%d", id)
	return s.doAuthRequest(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
