package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "notely/pkg/domain"
)

const (
	testUserID   = "u-550e8400"
	testTenantID = "t-acme"
)

// MockTokenValidator is a testify mock for TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(tokenString string) (*Claims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockHandler captures whether it was called and with which context
type mockHandler struct {
	called  bool
	context context.Context
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	m.context = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	validator   *MockTokenValidator
	logger      *slog.Logger
	nextHandler *mockHandler
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.validator = new(MockTokenValidator)
	s.logger = slog.New(slog.DiscardHandler)
	s.nextHandler = &mockHandler{}
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.validator.AssertExpectations(s.T())
}

func (s *AuthMiddlewareTestSuite) serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestValidToken() {
	expected := &Claims{UserID: testUserID, TenantID: testTenantID, Role: "member"}
	s.validator.On("ValidateToken", "valid-token").Return(expected, nil)

	w := s.serve(RequireAuth(s.validator, s.logger)(s.nextHandler), "Bearer valid-token")

	require.True(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	claims := GetClaims(s.nextHandler.context)
	require.NotNil(s.T(), claims)
	assert.Equal(s.T(), id.UserID(testUserID), claims.UserID)
	assert.Equal(s.T(), id.TenantID(testTenantID), claims.TenantID)
}

func (s *AuthMiddlewareTestSuite) TestMissingHeader() {
	w := s.serve(RequireAuth(s.validator, s.logger)(s.nextHandler), "")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.JSONEq(s.T(), `{"error":"unauthorized","message":"Missing or invalid Authorization header"}`, w.Body.String())
}

func (s *AuthMiddlewareTestSuite) TestWrongScheme() {
	w := s.serve(RequireAuth(s.validator, s.logger)(s.nextHandler), "Basic dXNlcjpwYXNz")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestInvalidToken() {
	s.validator.On("ValidateToken", "bad").Return(nil, errors.New("token expired"))

	w := s.serve(RequireAuth(s.validator, s.logger)(s.nextHandler), "Bearer bad")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Invalid or expired token")
}

func (s *AuthMiddlewareTestSuite) TestClaimsWithoutTenant() {
	s.validator.On("ValidateToken", "partial").Return(&Claims{UserID: testUserID}, nil)

	w := s.serve(RequireAuth(s.validator, s.logger)(s.nextHandler), "Bearer partial")

	assert.False(s.T(), s.nextHandler.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *AuthMiddlewareTestSuite) TestRequireRole() {
	s.Run("admin passes", func() {
		s.nextHandler = &mockHandler{}
		s.validator.On("ValidateToken", "admin-token").
			Return(&Claims{UserID: testUserID, TenantID: testTenantID, Role: "admin"}, nil).Once()

		h := RequireAuth(s.validator, s.logger)(RequireRole("admin", s.logger)(s.nextHandler))
		w := s.serve(h, "Bearer admin-token")

		assert.True(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusOK, w.Code)
	})

	s.Run("member is forbidden", func() {
		s.nextHandler = &mockHandler{}
		s.validator.On("ValidateToken", "member-token").
			Return(&Claims{UserID: testUserID, TenantID: testTenantID, Role: "member"}, nil).Once()

		h := RequireAuth(s.validator, s.logger)(RequireRole("admin", s.logger)(s.nextHandler))
		w := s.serve(h, "Bearer member-token")

		assert.False(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusForbidden, w.Code)
		assert.Contains(s.T(), w.Body.String(), "Admin access required")
	})

	s.Run("no claims is unauthorized", func() {
		s.nextHandler = &mockHandler{}
		w := s.serve(RequireRole("admin", s.logger)(s.nextHandler), "")

		assert.False(s.T(), s.nextHandler.called)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func TestGetClaimsEmptyContext(t *testing.T) {
	assert.Nil(t, GetClaims(context.Background()))
}
