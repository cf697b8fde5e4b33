package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "notely/pkg/domain-errors"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func adminSession() *Session {
	return &Session{
		Token: "opaque-token",
		User: &User{
			ID:    "u-1",
			Email: "admin@acme.test",
			Role:  RoleAdmin,
			Tenant: Tenant{
				ID:   "t-1",
				Name: "Acme",
				Slug: "acme",
				Plan: PlanFree,
			},
		},
	}
}

func TestSessionPredicates(t *testing.T) {
	t.Run("nil session is anonymous", func(t *testing.T) {
		var s *Session
		assert.False(t, s.IsAuthenticated())
		assert.False(t, s.IsAdmin())
		assert.False(t, s.IsFreePlan())
	})

	t.Run("admin on free plan", func(t *testing.T) {
		s := adminSession()
		assert.True(t, s.IsAuthenticated())
		assert.True(t, s.IsAdmin())
		assert.True(t, s.IsFreePlan())
	})

	t.Run("member on pro plan", func(t *testing.T) {
		s := adminSession()
		s.User.Role = RoleMember
		s.User.Tenant.Plan = PlanPro
		assert.False(t, s.IsAdmin())
		assert.False(t, s.IsFreePlan())
	})

	t.Run("token without user is authenticated but has no role", func(t *testing.T) {
		s := &Session{Token: "t"}
		assert.True(t, s.IsAuthenticated())
		assert.False(t, s.IsAdmin())
	})
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now()

	t.Run("opaque token never expires client-side", func(t *testing.T) {
		s := adminSession()
		_, ok := s.ExpiresAt()
		assert.False(t, ok)
		assert.False(t, s.Expired(now))
	})

	t.Run("jwt with future exp", func(t *testing.T) {
		s := adminSession()
		s.Token = signedToken(t, now.Add(time.Hour))
		exp, ok := s.ExpiresAt()
		require.True(t, ok)
		assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)
		assert.False(t, s.Expired(now))
	})

	t.Run("jwt with past exp", func(t *testing.T) {
		s := adminSession()
		s.Token = signedToken(t, now.Add(-time.Minute))
		assert.True(t, s.Expired(now))
	})
}

func TestWithPlanCopies(t *testing.T) {
	s := adminSession()

	upgraded := s.WithPlan(PlanPro)

	assert.Equal(t, PlanPro, upgraded.User.Tenant.Plan)
	assert.Equal(t, PlanFree, s.User.Tenant.Plan, "original session must not change")
	assert.Equal(t, s.Token, upgraded.Token)
}

func TestLoginRequestValidate(t *testing.T) {
	req := &LoginRequest{Email: "  admin@acme.test ", Password: "password"}
	req.Normalize()
	assert.Equal(t, "admin@acme.test", req.Email)
	assert.NoError(t, req.Validate())

	empty := &LoginRequest{Email: "admin@acme.test"}
	err := empty.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleMember.IsValid())
	assert.False(t, Role("owner").IsValid())
}
