package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notely/internal/auth/models"
	"notely/internal/platform/httpclient"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return New(httpclient.New(server.URL+"/api", nil, httpclient.WithHTTPClient(server.Client())))
}

func TestLogin(t *testing.T) {
	var got models.LoginRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"token":"jwt","user":{"id":"u1","email":"admin@acme.test","role":"admin",
			"tenant":{"id":"t1","name":"Acme","slug":"acme","plan":"free"}}}`))
	})

	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "admin@acme.test", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "admin@acme.test", got.Email)
	assert.Equal(t, "password", got.Password)
	assert.Equal(t, "jwt", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.Equal(t, "acme", resp.User.Tenant.Slug.String())
}

func TestLoginAcceptsNumericIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok","user":{"id":1,"email":"admin@acme.test","role":"admin",
			"tenant":{"id":7,"name":"Acme","slug":"acme","plan":"free"}}}`))
	})

	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "admin@acme.test", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.User.ID.String())
	assert.Equal(t, "7", resp.User.Tenant.ID.String())
}

func TestLoginFailurePassesErrorThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "x@acme.test", Password: "nope"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "Invalid credentials", httpclient.ServerMessage(err, "Login failed"))
}

func TestMeAcceptsWrappedAndBareBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrapped", `{"user":{"id":"u2","email":"user@globex.test","role":"member","tenant":{"slug":"globex","plan":"pro"}}}`},
		{"bare", `{"id":"u2","email":"user@globex.test","role":"member","tenant":{"slug":"globex","plan":"pro"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/me", r.URL.Path)
				_, _ = w.Write([]byte(tt.body))
			})

			user, err := c.Me(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "user@globex.test", user.Email)
			assert.Equal(t, models.PlanPro, user.Tenant.Plan)
		})
	}
}

func TestMeEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Me(context.Background())
	require.Error(t, err)
}
