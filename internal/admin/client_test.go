package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notely/internal/admin/types"
	authmodels "notely/internal/auth/models"
	"notely/internal/platform/httpclient"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(httpclient.New(server.URL+"/api", nil, httpclient.WithHTTPClient(server.Client())))
}

func TestClientInvite(t *testing.T) {
	var sent types.InviteRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/invite", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"User invited","temporaryPassword":"abc123",
			"user":{"id":"u9","email":"new@acme.test","role":"member"}}`))
	})

	result, err := c.Invite(context.Background(), types.InviteRequest{Email: "new@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, authmodels.RoleMember, sent.Role)
	assert.Equal(t, "abc123", result.TemporaryPassword)
	require.NotNil(t, result.User)
	assert.Equal(t, "new@acme.test", result.User.Email)
}

func TestClientListTenantUsers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/tenant-users", r.URL.Path)
		_, _ = w.Write([]byte(`{"users":[{"id":"u1","email":"admin@acme.test","role":"admin"}]}`))
	})

	users, err := c.ListTenantUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, authmodels.RoleAdmin, users[0].Role)
}

func TestClientForbidden(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Admin access required"}`))
	})

	_, err := c.ListTenantUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Admin access required", httpclient.ServerMessage(err, "x"))
}
