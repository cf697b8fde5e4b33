package admin

import (
	"context"
	"net/http"

	"notely/internal/admin/types"
	"notely/internal/platform/httpclient"
)

const (
	routeInvite      = "/users/invite"
	routeTenantUsers = "/users/tenant-users"
)

// Requester is the slice of httpclient.Client this package needs.
type Requester interface {
	Do(ctx context.Context, r httpclient.Request, out any) error
}

// Client calls the /users endpoints.
type Client struct {
	http Requester
}

func NewClient(http Requester) *Client {
	return &Client{http: http}
}

// Invite creates a user in the caller's tenant. An empty role is sent as member.
func (c *Client) Invite(ctx context.Context, req types.InviteRequest) (*types.InviteResult, error) {
	if req.Role == "" {
		req.Role = defaultInviteRole
	}
	var result types.InviteResult
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Route:  routeInvite,
		Path:   routeInvite,
		Body:   req,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTenantUsers returns every user of the caller's tenant.
func (c *Client) ListTenantUsers(ctx context.Context) ([]types.TenantUser, error) {
	var resp types.TenantUsersResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Route:  routeTenantUsers,
		Path:   routeTenantUsers,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}
