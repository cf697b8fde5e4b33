// Package service owns the login session lifecycle: signing in, restoring
// the stored session at startup, refreshing the user and signing out.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"notely/internal/auth/models"
	sessionStore "notely/internal/auth/store/session"
	"notely/internal/platform/tracer"
	dErrors "notely/pkg/domain-errors"
)

// AuthAPI is the remote side of authentication.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// SessionStore persists the current session.
// Error Contract: Load returns session.ErrNoSession when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}

type Service struct {
	api      AuthAPI
	sessions SessionStore
	logger   *slog.Logger
	tracer   tracer.Tracer
	now      func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(api AuthAPI, sessions SessionStore, opts ...Option) *Service {
	svc := &Service{
		api:      api,
		sessions: sessions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	return svc
}

// Login exchanges credentials for a session and persists it. Nothing is
// stored unless the backend accepted the credentials.
func (s *Service) Login(ctx context.Context, email, password string) (_ *models.Session, err error) {
	req := models.LoginRequest{Email: email, Password: password}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "notely.auth.login",
		tracer.String(tracer.AttrEmailHash, tracer.HashEmail(req.Email)),
	)
	defer func() { span.End(err) }()

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.InfoContext(ctx, "login rejected", "email_hash", tracer.HashEmail(req.Email), "error", err)
		return nil, err
	}
	if resp.Token == "" || resp.User == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "login response is missing token or user")
	}

	session := &models.Session{Token: resp.Token, User: resp.User}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}
	span.SetAttributes(tracer.Bool(tracer.AttrIsAdmin, session.IsAdmin()))
	s.logger.InfoContext(ctx, "login succeeded",
		"user_id", resp.User.ID.String(),
		"tenant", resp.User.Tenant.Slug.String(),
	)
	return session, nil
}

// Logout removes the stored session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear session")
	}
	return nil
}

// Restore returns the stored session, or nil when signed out. A stored JWT
// that has already expired is cleared and reported as signed out.
func (s *Service) Restore(ctx context.Context) (*models.Session, error) {
	session, err := s.sessions.Load(ctx)
	if errors.Is(err, sessionStore.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if session.Expired(s.now()) {
		s.logger.InfoContext(ctx, "stored session expired, clearing")
		if err := s.sessions.Clear(ctx); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear expired session")
		}
		return nil, nil
	}
	return session, nil
}

// Require returns the stored session or a CodeUnauthorized error.
func (s *Service) Require(ctx context.Context) (*models.Session, error) {
	session, err := s.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsAuthenticated() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "You are not logged in. Run `notely login` first.")
	}
	return session, nil
}

// UpdateUser replaces the stored user, keeping the token.
func (s *Service) UpdateUser(ctx context.Context, user *models.User) (*models.Session, error) {
	if user == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user is required")
	}
	session, err := s.Require(ctx)
	if err != nil {
		return nil, err
	}
	session.User = user
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}
	return session, nil
}

// Refresh asks the backend who the token belongs to and stores the answer.
func (s *Service) Refresh(ctx context.Context) (*models.Session, error) {
	if _, err := s.Require(ctx); err != nil {
		return nil, err
	}
	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	return s.UpdateUser(ctx, user)
}

func (s *Service) IsAuthenticated(ctx context.Context) bool {
	session, _ := s.Restore(ctx)
	return session.IsAuthenticated()
}

func (s *Service) IsAdmin(ctx context.Context) bool {
	session, _ := s.Restore(ctx)
	return session.IsAdmin()
}

func (s *Service) IsFreePlan(ctx context.Context) bool {
	session, _ := s.Restore(ctx)
	return session.IsFreePlan()
}
