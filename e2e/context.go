package e2e

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"notely/internal/admin"
	authclient "notely/internal/auth/client"
	authservice "notely/internal/auth/service"
	"notely/internal/auth/store/session"
	notesclient "notely/internal/notes/client"
	notesservice "notely/internal/notes/service"
	"notely/internal/platform/health"
	"notely/internal/platform/httpclient"
	tenantclient "notely/internal/tenant/client"
	tenantservice "notely/internal/tenant/service"
	"notely/pkg/testutil/fakeapi"
)

const signingKey = "e2e-signing-key"

// TestContext holds state between test steps
type TestContext struct {
	api    *fakeapi.Server
	srv    *httptest.Server
	dir    string
	apiURL string

	sessions session.Store
	auth     *authservice.Service
	notes    *notesservice.List
	admin    *admin.Service
	upgrades *tenantservice.UpgradeService
	health   *health.Client

	LastErr           error
	LastInvite        string
	unauthorizedHooks int
	planLimitPrompts  int
}

// Start resets tc, starts a seeded fake backend and wires a client against it.
func (tc *TestContext) Start() error {
	dir, err := os.MkdirTemp("", "notely-e2e-*")
	if err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	*tc = TestContext{
		api: fakeapi.New(signingKey),
		dir: dir,
	}
	tc.srv = fakeapi.NewTestServer(tc.api)
	tc.apiURL = tc.srv.URL + "/api"
	tc.sessions = session.NewFile(filepath.Join(dir, "session.json"))
	tc.wire()
	return nil
}

// wire builds a fresh set of services over the stored session, the way a
// new CLI invocation would.
func (tc *TestContext) wire() {
	client := httpclient.New(tc.apiURL, tc.sessions,
		httpclient.WithOnUnauthorized(func(context.Context) { tc.unauthorizedHooks++ }),
	)
	tc.auth = authservice.New(authclient.New(client), tc.sessions)
	tc.notes = notesservice.New(notesclient.New(client), tc.auth,
		notesservice.WithOnPlanLimitReached(func() { tc.planLimitPrompts++ }),
	)
	tc.admin = admin.NewService(admin.NewClient(client), tc.auth)
	tc.upgrades = tenantservice.NewUpgradeService(tenantclient.New(client), tc.auth)
	tc.health = health.NewClient(tc.apiURL)
}

// Close stops the backend and removes the session directory.
func (tc *TestContext) Close() {
	if tc.srv == nil {
		return
	}
	tc.srv.Close()
	tc.srv = nil
	_ = os.RemoveAll(tc.dir)
}

// Restart rewires the client, keeping the stored session.
func (tc *TestContext) Restart() {
	tc.wire()
}

// AdvanceServerClock moves token issuance and validation forward.
func (tc *TestContext) AdvanceServerClock(d time.Duration) {
	tc.api.Advance(d)
}

// Getter methods for step package interfaces

func (tc *TestContext) API() *fakeapi.Server {
	return tc.api
}

func (tc *TestContext) Sessions() session.Store {
	return tc.sessions
}

func (tc *TestContext) Auth() *authservice.Service {
	return tc.auth
}

func (tc *TestContext) Notes() *notesservice.List {
	return tc.notes
}

func (tc *TestContext) Admin() *admin.Service {
	return tc.admin
}

func (tc *TestContext) Upgrades() *tenantservice.UpgradeService {
	return tc.upgrades
}

func (tc *TestContext) Health() *health.Client {
	return tc.health
}

func (tc *TestContext) SetLastError(err error) {
	tc.LastErr = err
}

func (tc *TestContext) LastError() error {
	return tc.LastErr
}

func (tc *TestContext) SetLastInvitePassword(pw string) {
	tc.LastInvite = pw
}

func (tc *TestContext) LastInvitePassword() string {
	return tc.LastInvite
}

func (tc *TestContext) UnauthorizedHooks() int {
	return tc.unauthorizedHooks
}

func (tc *TestContext) PlanLimitPrompts() int {
	return tc.planLimitPrompts
}
