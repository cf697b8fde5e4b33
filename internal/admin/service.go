// Package admin is the tenant administration panel: listing the tenant's
// users and inviting new ones. Only admins may use it.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"notely/internal/admin/types"
	authmodels "notely/internal/auth/models"
	"notely/internal/platform/httpclient"
	"notely/internal/platform/tracer"
	dErrors "notely/pkg/domain-errors"
)

const (
	defaultInviteRole = authmodels.RoleMember

	msgLoadFailed   = "Failed to load tenant users"
	msgEmailMissing = "Please enter an email address"
	msgInviteFailed = "Failed to invite user"
	msgAdminsOnly   = "Only administrators can manage tenant users."
)

// UsersAPI is the remote /users resource.
type UsersAPI interface {
	ListTenantUsers(ctx context.Context) ([]types.TenantUser, error)
	Invite(ctx context.Context, req types.InviteRequest) (*types.InviteResult, error)
}

// RoleChecker reports whether the signed-in user is a tenant admin.
type RoleChecker interface {
	IsAdmin(ctx context.Context) bool
}

// Service is the admin panel state. It is not safe for concurrent use.
type Service struct {
	api    UsersAPI
	roles  RoleChecker
	logger *slog.Logger

	users   []types.TenantUser
	loading bool
	err     string
	success string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the admin panel.
func NewService(api UsersAPI, roles RoleChecker, opts ...Option) *Service {
	s := &Service{api: api, roles: roles}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) Users() []types.TenantUser {
	out := make([]types.TenantUser, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Service) Loading() bool {
	return s.loading
}

// Error is the last failure shown in the panel.
func (s *Service) Error() string {
	return s.err
}

// Success is the confirmation of the last invitation.
func (s *Service) Success() string {
	return s.success
}

func (s *Service) requireAdmin(ctx context.Context) error {
	if !s.roles.IsAdmin(ctx) {
		return dErrors.New(dErrors.CodeForbidden, msgAdminsOnly)
	}
	return nil
}

// Load fetches the tenant's users.
func (s *Service) Load(ctx context.Context) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	s.loading = true
	s.err = ""
	defer func() { s.loading = false }()

	users, err := s.api.ListTenantUsers(ctx)
	if err != nil {
		s.err = msgLoadFailed
		s.logger.ErrorContext(ctx, "load tenant users failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, msgLoadFailed)
	}
	s.users = users
	return nil
}

// Invite validates the trimmed email, invites the user with role (member
// when empty) and refetches the user list.
func (s *Service) Invite(ctx context.Context, email string, role authmodels.Role) (*types.InviteResult, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	s.err = ""
	s.success = ""

	email = strings.TrimSpace(email)
	if email == "" {
		s.err = msgEmailMissing
		return nil, dErrors.New(dErrors.CodeValidation, msgEmailMissing)
	}
	if role == "" {
		role = defaultInviteRole
	}
	if !role.IsValid() {
		msg := fmt.Sprintf("Unknown role %q: use admin or member", role)
		s.err = msg
		return nil, dErrors.New(dErrors.CodeValidation, msg)
	}

	result, err := s.api.Invite(ctx, types.InviteRequest{Email: email, Role: role})
	if err != nil {
		s.err = httpclient.ServerMessage(err, msgInviteFailed)
		s.logger.ErrorContext(ctx, "invite user failed", "email_hash", tracer.HashEmail(email), "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, s.err)
	}
	s.success = "User invited successfully! Temporary password: " + result.TemporaryPassword
	s.logger.InfoContext(ctx, "user invited", "email_hash", tracer.HashEmail(email), "role", string(role))

	if err := s.Load(ctx); err != nil {
		s.logger.WarnContext(ctx, "refetch after invite failed", "error", err)
	}
	return result, nil
}
