package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	admintypes "notely/internal/admin/types"
	authmodels "notely/internal/auth/models"
	notemodels "notely/internal/notes/models"
	tenantmodels "notely/internal/tenant/models"
)

type ServerSuite struct {
	suite.Suite
	api *Server
	srv *httptest.Server
}

func (s *ServerSuite) SetupTest() {
	s.api = New("test-key", WithClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
	s.srv = NewTestServer(s.api)
}

func (s *ServerSuite) TearDownTest() {
	s.srv.Close()
}

func (s *ServerSuite) do(method, path, token string, body any, out any) int {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.srv.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *ServerSuite) login(email string) string {
	var resp authmodels.LoginResponse
	status := s.do(http.MethodPost, "/api/auth/login", "", authmodels.LoginRequest{Email: email, Password: authmodels.DemoPassword}, &resp)
	s.Require().Equal(http.StatusOK, status)
	return resp.Token
}

func (s *ServerSuite) TestLogin() {
	s.Run("demo account", func() {
		var resp authmodels.LoginResponse
		status := s.do(http.MethodPost, "/api/auth/login", "", authmodels.LoginRequest{Email: "Admin@Acme.test", Password: "password"}, &resp)

		s.Equal(http.StatusOK, status)
		s.NotEmpty(resp.Token)
		s.Require().NotNil(resp.User)
		s.Equal("admin@acme.test", resp.User.Email)
		s.Equal(authmodels.RoleAdmin, resp.User.Role)
		s.Equal("acme", resp.User.Tenant.Slug.String())
		s.Equal(authmodels.PlanFree, resp.User.Tenant.Plan)
	})

	s.Run("wrong password", func() {
		var body map[string]string
		status := s.do(http.MethodPost, "/api/auth/login", "", authmodels.LoginRequest{Email: "user@acme.test", Password: "nope"}, &body)

		s.Equal(http.StatusUnauthorized, status)
		s.Equal("Invalid credentials", body["message"])
	})

	s.Run("missing fields", func() {
		status := s.do(http.MethodPost, "/api/auth/login", "", authmodels.LoginRequest{Email: " "}, nil)
		s.Equal(http.StatusBadRequest, status)
	})
}

func (s *ServerSuite) TestMe() {
	token := s.login("user@globex.test")

	var resp authmodels.MeResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/auth/me", token, nil, &resp))
	s.Equal("user@globex.test", resp.User.Email)

	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", "", nil, nil))
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", "garbage", nil, nil))
}

func (s *ServerSuite) TestExpiredToken() {
	token := s.login("user@acme.test")
	s.api.Advance(DefaultTokenTTL + time.Minute)

	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/notes", token, nil, nil))
}

func (s *ServerSuite) TestNotesLifecycle() {
	token := s.login("user@acme.test")

	var created notemodels.Note
	status := s.do(http.MethodPost, "/api/notes", token, notemodels.NoteInput{Title: "  Groceries ", Content: "milk"}, &created)
	s.Require().Equal(http.StatusCreated, status)
	s.Equal("Groceries", created.Title)
	s.Require().NotNil(created.CreatedBy)
	s.Equal("user@acme.test", created.CreatedBy.Email)

	var fetched notemodels.Note
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/notes/"+created.ID.String(), token, nil, &fetched))
	s.Equal(created.ID, fetched.ID)

	var updated notemodels.Note
	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/notes/"+created.ID.String(), token, notemodels.NoteInput{Title: "Shopping", Content: "milk, eggs"}, &updated))
	s.Equal("Shopping", updated.Title)

	var list []notemodels.Note
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/notes", token, nil, &list))
	s.Len(list, 1)

	s.Equal(http.StatusOK, s.do(http.MethodDelete, "/api/notes/"+created.ID.String(), token, nil, nil))
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/notes/"+created.ID.String(), token, nil, nil))
	s.Equal(0, s.api.NoteCount("acme"))
}

func (s *ServerSuite) TestNotesAreTenantScoped() {
	acme := s.login("user@acme.test")
	globex := s.login("user@globex.test")

	var created notemodels.Note
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/notes", acme, notemodels.NoteInput{Title: "a", Content: "b"}, &created))

	var list []notemodels.Note
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/notes", globex, nil, &list))
	s.Empty(list)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/notes/"+created.ID.String(), globex, nil, nil))
}

func (s *ServerSuite) TestFreePlanNoteLimit() {
	token := s.login("user@acme.test")
	for i := range 3 {
		s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/notes", token, notemodels.NoteInput{Title: "t", Content: strings.Repeat("x", i+1)}, nil))
	}

	var body map[string]string
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/notes", token, notemodels.NoteInput{Title: "t", Content: "4"}, &body))
	s.Contains(body["message"], "Note limit reached")

	s.Require().NoError(s.api.SetPlan("acme", authmodels.PlanPro))
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/api/notes", token, notemodels.NoteInput{Title: "t", Content: "4"}, nil))
}

func (s *ServerSuite) TestOversizedNoteRejected() {
	token := s.login("user@acme.test")
	huge := notemodels.NoteInput{Title: "big", Content: strings.Repeat("x", maxBodyBytes+1)}

	var body map[string]string
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/notes", token, huge, &body))
	s.Equal("Invalid request body", body["message"])
	s.Zero(s.api.NoteCount("acme"))
}

func (s *ServerSuite) TestInvite() {
	admin := s.login("admin@acme.test")

	var result admintypes.InviteResult
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/users/invite", admin, admintypes.InviteRequest{Email: "new@acme.test"}, &result))
	s.NotEmpty(result.TemporaryPassword)
	s.Require().NotNil(result.User)
	s.Equal(authmodels.RoleMember, result.User.Role)

	var users admintypes.TenantUsersResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/users/tenant-users", admin, nil, &users))
	s.Len(users.Users, 3)

	var conflict map[string]string
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/users/invite", admin, admintypes.InviteRequest{Email: "new@acme.test"}, &conflict))
	s.Equal("User already exists", conflict["message"])

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/users/invite", admin, admintypes.InviteRequest{Email: "not-an-email"}, nil))

	// The invited user can log in with the temporary password.
	var resp authmodels.LoginResponse
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/auth/login", "", authmodels.LoginRequest{Email: "new@acme.test", Password: result.TemporaryPassword}, &resp))
}

func (s *ServerSuite) TestAdminRoutesRejectMembers() {
	member := s.login("user@acme.test")

	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/users/tenant-users", member, nil, nil))
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/users/invite", member, admintypes.InviteRequest{Email: "x@acme.test"}, nil))
	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/tenants/acme/upgrade", member, nil, nil))
}

func (s *ServerSuite) TestUpgrade() {
	admin := s.login("admin@acme.test")

	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/tenants/globex/upgrade", admin, nil, nil))

	var resp tenantmodels.UpgradeResponse
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/tenants/acme/upgrade", admin, nil, &resp))
	s.Require().NotNil(resp.Tenant)
	s.Equal(authmodels.PlanPro, resp.Tenant.Plan)

	plan, ok := s.api.Plan("acme")
	s.True(ok)
	s.Equal(authmodels.PlanPro, plan)
}

func (s *ServerSuite) TestFailNextAndRecording() {
	token := s.login("user@acme.test")
	s.api.ResetRequests()
	s.api.FailNext(http.StatusUnauthorized, "Session expired")

	var body map[string]string
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/notes", token, nil, &body))
	s.Equal("Session expired", body["message"])
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/notes", token, nil, nil))

	s.Equal(2, s.api.Calls(http.MethodGet, "/api/notes"))
	reqs := s.api.Requests()
	s.Require().Len(reqs, 2)
	s.Equal("Bearer "+token, reqs[1].Authorization)
}

func (s *ServerSuite) TestHealth() {
	var body map[string]any
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", "", nil, &body))
	s.Equal("healthy", body["status"])
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestTokenFor(t *testing.T) {
	api := New("k")
	token, user, err := api.TokenFor("admin@globex.test")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, authmodels.RoleAdmin, user.Role)

	_, _, err = api.TokenFor("nobody@globex.test")
	assert.Error(t, err)
}

func TestSeedIDsAreStable(t *testing.T) {
	first, second := New("k"), New("k")

	_, a, err := first.TokenFor("user@acme.test")
	require.NoError(t, err)
	_, b, err := second.TokenFor("user@acme.test")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, SeedUserID("USER@acme.test"), a.ID)
	assert.Equal(t, SeedTenantID("acme"), a.Tenant.ID)
	assert.NotEqual(t, SeedTenantID("acme"), SeedTenantID("globex"))
}

func TestRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	api := New("k", WithRegistry(reg))
	srv := NewTestServer(api)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/notes/abc")
	require.NoError(t, err)
	resp.Body.Close()
	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()

	requests := api.rec.metrics.requests
	assert.InDelta(t, 1, promtestutil.ToFloat64(requests.WithLabelValues("/api/notes/{id}", http.MethodGet, "401")), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(requests.WithLabelValues("/health", http.MethodGet, "200")), 0)
}
