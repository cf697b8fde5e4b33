package health

import (
	"context"
	"net/http"

	"notely/internal/platform/httpclient"
)

// Requester is the slice of httpclient.Client this package needs.
type Requester interface {
	Do(ctx context.Context, r httpclient.Request, out any) error
}

// Client checks the server's /health endpoint.
type Client struct {
	http Requester
}

// NewClient builds a checker for the server behind apiURL. It targets
// the server root (apiURL without its /api segment) and never sends the
// stored token.
func NewClient(apiURL string, opts ...httpclient.Option) *Client {
	return &Client{http: httpclient.New(httpclient.Origin(apiURL), nil, opts...)}
}

// Check returns the server's reported status.
func (c *Client) Check(ctx context.Context) (*Status, error) {
	var status Status
	err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Route: "/health", Path: "/health"}, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
