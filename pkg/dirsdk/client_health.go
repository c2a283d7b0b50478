package dirsdk

import (
	"context"
	"net/http"
)

// Livez reports whether the service process is up.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	health := &HealthResponse{}
	if err := decodeJSON(resp, health, http.StatusOK); err != nil {
		return nil, err
	}
	return health, nil
}

// Readyz reports whether the service and its dependencies can take
// traffic. A degraded service surfaces as a typed *Error with the 503
// status.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	health := &HealthResponse{}
	if err := decodeJSON(resp, health, http.StatusOK); err != nil {
		return nil, err
	}
	return health, nil
}
