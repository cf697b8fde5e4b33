// Package fakeapi is an in-process notes backend for tests and local demos.
// It serves the REST surface the notely client consumes under /api, plus
// /health, with the four demo accounts seeded across two free tenants.
package fakeapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authmodels "notely/internal/auth/models"
	jwttoken "notely/internal/jwt_token"
	"notely/internal/platform/health"
	id "notely/pkg/domain"
	"notely/pkg/platform/middleware/auth"
	"notely/pkg/platform/middleware/request"
)

const (
	// DefaultTokenTTL matches the lifetime of tokens issued by the real backend.
	DefaultTokenTTL = 24 * time.Hour

	// Issuer is the iss claim of every token the fake backend mints.
	Issuer = "notely-fakeapi"

	maxBodyBytes = 1 << 20
)

var seedNamespace = uuid.MustParse("6f9c1a52-3c1e-4d7a-9b8e-2a41c7d0e5f3")

// SeedTenantID is the stable ID of a seeded tenant, so tokens minted
// elsewhere with the same key stay valid across restarts.
func SeedTenantID(slug id.TenantSlug) id.TenantID {
	return id.TenantID(uuid.NewSHA1(seedNamespace, []byte("tenant:"+slug.String())).String())
}

// SeedUserID is the stable ID of a seeded demo account.
func SeedUserID(email string) id.UserID {
	return id.UserID(uuid.NewSHA1(seedNamespace, []byte("user:"+normalizeEmail(email))).String())
}

// Server is a fake notes backend. The zero value is not usable; call New.
type Server struct {
	store     *store
	tokens    *jwttoken.JWTService
	health    *health.Handler
	logger    *slog.Logger
	noteLimit int

	clockMu sync.RWMutex
	now     time.Time
	frozen  bool

	rec recorder
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock freezes the server clock at now. Use Advance to move it.
func WithClock(now time.Time) Option {
	return func(s *Server) {
		s.now = now
		s.frozen = true
	}
}

// WithNoteLimit overrides the free plan note limit.
func WithNoteLimit(limit int) Option {
	return func(s *Server) {
		s.noteLimit = limit
	}
}

// New builds a seeded fake backend signing tokens with signingKey.
func New(signingKey string, opts ...Option) *Server {
	s := &Server{
		// MinCost keeps seeding fast; the hashes never leave the process.
		store:     newStore(bcrypt.MinCost),
		health:    health.NewHandler("notely-fakeapi"),
		logger:    slog.New(slog.DiscardHandler),
		noteLimit: authmodels.FreePlanNoteLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tokens = jwttoken.NewJWTService(signingKey, Issuer, DefaultTokenTTL)
	s.tokens.SetClock(s.clock)
	s.seed()
	return s
}

// NewTestServer starts s on an httptest server. The caller closes it.
// The API base URL is the returned server's URL + "/api".
func NewTestServer(s *Server) *httptest.Server {
	return httptest.NewServer(s.Handler())
}

func (s *Server) clock() time.Time {
	s.clockMu.RLock()
	defer s.clockMu.RUnlock()
	if s.frozen {
		return s.now
	}
	return time.Now()
}

// Advance moves a frozen clock forward, or freezes a running one at now+d.
func (s *Server) Advance(d time.Duration) {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	if !s.frozen {
		s.now = time.Now()
		s.frozen = true
	}
	s.now = s.now.Add(d)
}

// Handler returns the backend's router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(s.logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(s.logger))
	r.Use(s.rec.middleware)

	s.health.Register(r)

	r.Route("/api", func(r chi.Router) {
		r.Use(request.ContentTypeJSON)
		r.Use(request.BodyLimit(maxBodyBytes))
		r.Use(s.rec.injectFailures)

		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(jwttoken.NewJWTServiceAdapter(s.tokens), s.logger))

			r.Get("/auth/me", s.handleMe)

			r.Get("/notes", s.handleListNotes)
			r.Post("/notes", s.handleCreateNote)
			r.Get("/notes/{id}", s.handleGetNote)
			r.Put("/notes/{id}", s.handleUpdateNote)
			r.Delete("/notes/{id}", s.handleDeleteNote)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(string(authmodels.RoleAdmin), s.logger))
				r.Post("/users/invite", s.handleInvite)
				r.Get("/users/tenant-users", s.handleTenantUsers)
				r.Post("/tenants/{slug}/upgrade", s.handleUpgrade)
			})
		})
	})
	return r
}

func (s *Server) seed() {
	tenants := make(map[string]*authmodels.Tenant)
	for _, a := range authmodels.DemoAccounts {
		if _, ok := tenants[a.Tenant]; ok {
			continue
		}
		slug := id.TenantSlug(strings.ToLower(a.Tenant))
		tenants[a.Tenant] = s.store.addTenant(SeedTenantID(slug), a.Tenant, slug, authmodels.PlanFree)
	}
	for _, a := range authmodels.DemoAccounts {
		if _, err := s.store.addUser(SeedUserID(a.Email), a.Email, authmodels.DemoPassword, a.Role, tenants[a.Tenant].ID); err != nil {
			panic("fakeapi: seeding " + a.Email + ": " + err.Error())
		}
	}
}

// AddUser registers an extra account on an existing tenant.
func (s *Server) AddUser(email, password string, role authmodels.Role, slug id.TenantSlug) (*authmodels.User, error) {
	t, ok := s.store.tenantBySlug(slug)
	if !ok {
		return nil, errUnknownTenant(slug)
	}
	return s.store.addUser(id.UserID(uuid.NewString()), email, password, role, t.ID)
}

// SetPlan switches a tenant's plan directly.
func (s *Server) SetPlan(slug id.TenantSlug, plan authmodels.Plan) error {
	t, ok := s.store.tenantBySlug(slug)
	if !ok {
		return errUnknownTenant(slug)
	}
	s.store.setPlan(t.ID, plan)
	return nil
}

// Plan reports a tenant's current plan.
func (s *Server) Plan(slug id.TenantSlug) (authmodels.Plan, bool) {
	t, ok := s.store.tenantBySlug(slug)
	if !ok {
		return "", false
	}
	return t.Plan, true
}

// NoteCount reports how many notes a tenant holds.
func (s *Server) NoteCount(slug id.TenantSlug) int {
	t, ok := s.store.tenantBySlug(slug)
	if !ok {
		return 0
	}
	return s.store.countNotes(t.ID)
}

// TokenFor mints a token for an existing account without a login call.
func (s *Server) TokenFor(email string) (string, *authmodels.User, error) {
	s.store.mu.RLock()
	rec, ok := s.store.users[normalizeEmail(email)]
	s.store.mu.RUnlock()
	if !ok {
		return "", nil, errUnknownUser(email)
	}
	user, _ := s.store.userByID(rec.user.ID)
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Tenant.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
