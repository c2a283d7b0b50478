package dirsdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// Session is an authenticated handle on the directory service. When a
// request bounces with 401 the session refreshes its access token once
// and retries; a refresh failure surfaces the original error.
type Session struct {
	client *Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func newSession(c *Client, tokens *TokenResponse) *Session {
	return &Session{
		client:       c,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
	}
}

// AccessToken returns the session's current access token.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// RefreshToken returns the session's refresh token.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

func (s *Session) refresh(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.mu.Unlock()

	token, err := s.client.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = token.AccessToken
	s.mu.Unlock()
	return nil
}

// doAuthRequest performs a request with the session's access token,
// decoding the response into target on expectedStatus.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	body, target any,
	expectedStatus int,
) error {
	resp, err := s.client.doRequest(ctx, method, path, body, map[string]string{
		"Authorization": "Bearer " + s.AccessToken(),
	})
	if err != nil {
		return err
	}

	err = decodeJSON(resp, target, expectedStatus)

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		if refreshErr := s.refresh(ctx); refreshErr != nil {
			return err
		}
		resp, retryErr := s.client.doRequest(ctx, method, path, body, map[string]string{
			"Authorization": "Bearer " + s.AccessToken(),
		})
		if retryErr != nil {
			return retryErr
		}
		return decodeJSON(resp, target, expectedStatus)
	}
	return err
}
