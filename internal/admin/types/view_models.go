package types

import (
	"strings"

	authmodels "notely/internal/auth/models"
	id "notely/pkg/domain"
)

// TenantUser is one row of the tenant's user list.
// This is an admin-local DTO to avoid coupling to the session user.
type TenantUser struct {
	ID    id.UserID       `json:"id"`
	Email string          `json:"email"`
	Role  authmodels.Role `json:"role"`
}

// RoleLabel is the upper-cased role shown in listings.
func (u TenantUser) RoleLabel() string {
	return strings.ToUpper(string(u.Role))
}

// TenantUsersResponse is the body of GET /users/tenant-users.
type TenantUsersResponse struct {
	Users []TenantUser `json:"users"`
}

// InviteRequest is the body of POST /users/invite.
type InviteRequest struct {
	Email string          `json:"email" validate:"required,email,max=255"`
	Role  authmodels.Role `json:"role" validate:"omitempty,oneof=admin member"`
}

// InviteResult is the body returned by POST /users/invite. The temporary
// password is shown once and never persisted.
type InviteResult struct {
	TemporaryPassword string      `json:"temporaryPassword"`
	User              *TenantUser `json:"user,omitempty"`
	Message           string      `json:"message,omitempty"`
}
