package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks TenantAPI,Sessions

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	authmodels "notely/internal/auth/models"
	sessionStore "notely/internal/auth/store/session"
	"notely/internal/platform/httpclient"
	"notely/internal/platform/logger"
	tenantmetrics "notely/internal/tenant/metrics"
	"notely/internal/tenant/models"
	"notely/internal/tenant/service/mocks"
	id "notely/pkg/domain"
	dErrors "notely/pkg/domain-errors"
)

type UpgradeSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockAPI      *mocks.MockTenantAPI
	mockSessions *mocks.MockSessions
	metrics      *tenantmetrics.Metrics
	service      *UpgradeService
	ctx          context.Context
}

func TestUpgradeSuite(t *testing.T) {
	suite.Run(t, new(UpgradeSuite))
}

func (s *UpgradeSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAPI = mocks.NewMockTenantAPI(s.ctrl)
	s.mockSessions = mocks.NewMockSessions(s.ctrl)
	s.metrics = tenantmetrics.New(prometheus.NewRegistry())
	s.ctx = context.Background()
	s.service = NewUpgradeService(s.mockAPI, s.mockSessions,
		WithLogger(logger.Discard()),
		WithMetrics(s.metrics),
	)
}

func (s *UpgradeSuite) TearDownTest() {
	s.ctrl.Finish()
}

func session(role authmodels.Role) *authmodels.Session {
	return &authmodels.Session{
		Token: "tok",
		User: &authmodels.User{
			ID:     "u1",
			Email:  "someone@acme.test",
			Role:   role,
			Tenant: authmodels.Tenant{ID: "t1", Name: "Acme", Slug: "acme", Plan: authmodels.PlanFree},
		},
	}
}

func (s *UpgradeSuite) TestNonAdminRejectedBeforeNetwork() {
	s.mockSessions.EXPECT().Require(gomock.Any()).Return(session(authmodels.RoleMember), nil)
	// No TenantAPI expectation: any call fails the test.

	_, err := s.service.Upgrade(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Equal("Only administrators can upgrade the tenant plan.", err.Error())
	s.InDelta(1, testutil.ToFloat64(s.metrics.Upgrades.WithLabelValues("forbidden")), 0)
}

func (s *UpgradeSuite) TestMissingSlugRejectedBeforeNetwork() {
	sess := session(authmodels.RoleAdmin)
	sess.User.Tenant.Slug = " "
	s.mockSessions.EXPECT().Require(gomock.Any()).Return(sess, nil)

	_, err := s.service.Upgrade(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.InDelta(1, testutil.ToFloat64(s.metrics.Upgrades.WithLabelValues("invalid")), 0)
}

func (s *UpgradeSuite) TestAdminUpgradeFlipsStoredPlan() {
	s.mockSessions.EXPECT().Require(gomock.Any()).Return(session(authmodels.RoleAdmin), nil)
	s.mockAPI.EXPECT().Upgrade(gomock.Any(), id.TenantSlug("acme")).Return(&models.UpgradeResponse{}, nil)
	s.mockSessions.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *authmodels.User) (*authmodels.Session, error) {
			s.Equal(authmodels.PlanPro, user.Tenant.Plan)
			s.Equal("acme", user.Tenant.Slug.String())
			return &authmodels.Session{Token: "tok", User: user}, nil
		})

	updated, err := s.service.Upgrade(s.ctx)
	s.Require().NoError(err)
	s.False(updated.IsFreePlan())
	s.InDelta(1, testutil.ToFloat64(s.metrics.Upgrades.WithLabelValues("succeeded")), 0)
}

func (s *UpgradeSuite) TestFailureKeepsPlan() {
	s.mockSessions.EXPECT().Require(gomock.Any()).Return(session(authmodels.RoleAdmin), nil).Times(2)

	s.T().Run("server message", func(t *testing.T) {
		s.mockAPI.EXPECT().Upgrade(gomock.Any(), gomock.Any()).
			Return(nil, &httpclient.ResponseError{StatusCode: http.StatusForbidden, Message: "Admin access required"})

		_, err := s.service.Upgrade(s.ctx)
		s.Equal("Admin access required", err.Error())
	})

	s.T().Run("fallback", func(t *testing.T) {
		s.mockAPI.EXPECT().Upgrade(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := s.service.Upgrade(s.ctx)
		s.Equal("Failed to upgrade tenant", err.Error())
	})
}

func (s *UpgradeSuite) TestSignedOut() {
	s.mockSessions.EXPECT().Require(gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "not logged in"))

	_, err := s.service.Upgrade(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

// The upgrade writes through to a real session store.
func TestUpgradeWithStoredSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTenantAPI(ctrl)
	api.EXPECT().Upgrade(gomock.Any(), id.TenantSlug("acme")).Return(&models.UpgradeResponse{}, nil)

	store := sessionStore.NewInMemory()
	ctx := context.Background()
	if err := store.Save(ctx, session(authmodels.RoleAdmin)); err != nil {
		t.Fatal(err)
	}
	sessions := &storeSessions{store: store}

	svc := NewUpgradeService(api, sessions, WithLogger(logger.Discard()))
	if _, err := svc.Upgrade(ctx); err != nil {
		t.Fatal(err)
	}

	stored, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stored.User.Tenant.Plan != authmodels.PlanPro {
		t.Fatalf("stored plan = %q, want pro", stored.User.Tenant.Plan)
	}
}

type storeSessions struct {
	store *sessionStore.InMemoryStore
}

func (s *storeSessions) Require(ctx context.Context) (*authmodels.Session, error) {
	return s.store.Load(ctx)
}

func (s *storeSessions) UpdateUser(ctx context.Context, user *authmodels.User) (*authmodels.Session, error) {
	sess, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	sess.User = user
	return sess, s.store.Save(ctx, sess)
}
