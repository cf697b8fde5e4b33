// Package service runs the free to pro plan upgrade on behalf of a tenant admin.
package service

import (
	"context"
	"log/slog"
	"time"

	authmodels "notely/internal/auth/models"
	"notely/internal/platform/httpclient"
	"notely/internal/platform/tracer"
	tenantmetrics "notely/internal/tenant/metrics"
	"notely/internal/tenant/models"
	id "notely/pkg/domain"
	dErrors "notely/pkg/domain-errors"
)

const (
	msgAdminsOnly    = "Only administrators can upgrade the tenant plan."
	msgUpgradeFailed = "Failed to upgrade tenant"
)

// TenantAPI is the remote tenants resource.
type TenantAPI interface {
	Upgrade(ctx context.Context, slug id.TenantSlug) (*models.UpgradeResponse, error)
}

// Sessions gives access to the signed-in user.
type Sessions interface {
	Require(ctx context.Context) (*authmodels.Session, error)
	UpdateUser(ctx context.Context, user *authmodels.User) (*authmodels.Session, error)
}

// UpgradeService orchestrates the plan upgrade.
type UpgradeService struct {
	api      TenantAPI
	sessions Sessions
	logger   *slog.Logger
	metrics  *tenantmetrics.Metrics
	tracer   tracer.Tracer
}

type Option func(*UpgradeService)

func WithLogger(logger *slog.Logger) Option {
	return func(s *UpgradeService) {
		s.logger = logger
	}
}

func WithMetrics(m *tenantmetrics.Metrics) Option {
	return func(s *UpgradeService) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *UpgradeService) {
		s.tracer = t
	}
}

func NewUpgradeService(api TenantAPI, sessions Sessions, opts ...Option) *UpgradeService {
	s := &UpgradeService{api: api, sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	return s
}

// Upgrade moves the signed-in user's tenant to the pro plan and records the
// new plan on the stored user. Non-admins are rejected before any request.
func (s *UpgradeService) Upgrade(ctx context.Context) (_ *authmodels.Session, err error) {
	session, err := s.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		s.record("forbidden")
		return nil, dErrors.New(dErrors.CodeForbidden, msgAdminsOnly)
	}
	slug, err := id.ParseTenantSlug(session.User.Tenant.Slug.String())
	if err != nil {
		s.record("invalid")
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "notely.tenant.upgrade", tracer.String("notely.tenant", slug.String()))
	defer func() { span.End(err) }()

	start := time.Now()
	_, err = s.api.Upgrade(ctx, slug)
	if s.metrics != nil {
		s.metrics.ObserveUpgrade(start)
	}
	if err != nil {
		s.record("failed")
		s.logger.ErrorContext(ctx, "tenant upgrade failed", "tenant", slug.String(), "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, httpclient.ServerMessage(err, msgUpgradeFailed))
	}
	s.record("succeeded")
	s.logger.InfoContext(ctx, "tenant upgraded", "tenant", slug.String())

	upgraded := session.WithPlan(authmodels.PlanPro)
	return s.sessions.UpdateUser(ctx, upgraded.User)
}

func (s *UpgradeService) record(result string) {
	if s.metrics != nil {
		s.metrics.IncrementUpgrade(result)
	}
}
