// Package client calls the /auth endpoints.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"notely/internal/auth/models"
	"notely/internal/platform/httpclient"
)

// Requester is the slice of httpclient.Client this package needs.
type Requester interface {
	Do(ctx context.Context, r httpclient.Request, out any) error
}

type Client struct {
	http Requester
}

func New(http Requester) *Client {
	return &Client{http: http}
}

// Login posts credentials and returns the issued token and user.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Route:  "/auth/login",
		Path:   "/auth/login",
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user the stored token belongs to. The backend may answer
// with {"user": {...}} or with the user object itself.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var raw json.RawMessage
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Route:  "/auth/me",
		Path:   "/auth/me",
	}, &raw)
	if err != nil {
		return nil, err
	}
	return decodeMe(raw)
}

func decodeMe(raw json.RawMessage) (*models.User, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty /auth/me response")
	}
	var wrapped models.MeResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode /auth/me response: %w", err)
	}
	if wrapped.User != nil {
		return wrapped.User, nil
	}
	var bare models.User
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("decode /auth/me response: %w", err)
	}
	return &bare, nil
}
