// Package client calls the /tenants endpoints.
package client

import (
	"context"
	"net/http"
	"net/url"

	"notely/internal/platform/httpclient"
	"notely/internal/tenant/models"
	id "notely/pkg/domain"
)

const routeUpgrade = "/tenants/:slug/upgrade"

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

// Upgrade moves the tenant to the pro plan. The request has no body.
func (c *Client) Upgrade(ctx context.Context, slug id.TenantSlug) (*models.UpgradeResponse, error) {
	var resp models.UpgradeResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Route:  routeUpgrade,
		Path:   "/tenants/" + url.PathEscape(slug.String()) + "/upgrade",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
