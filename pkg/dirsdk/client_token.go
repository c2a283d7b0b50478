package dirsdk

import (
	"context"
	"net/http"
)

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	tokens := &TokenResponse{}
	if err := decodeJSON(resp, tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Refresh exchanges a refresh token, presented as the bearer
// credential, for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh", nil, map[string]string{
		"Authorization": "Bearer " + refreshToken,
	})
	if err != nil {
		return nil, err
	}

	token := &AccessTokenResponse{}
	if err := decodeJSON(resp, token, http.StatusOK); err != nil {
		return nil, err
	}
	return token, nil
}
