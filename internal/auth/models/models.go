package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "notely/pkg/domain"
)

// Tenant is the customer account the signed-in user belongs to.
type Tenant struct {
	ID   id.TenantID   `json:"id"`
	Name string        `json:"name"`
	Slug id.TenantSlug `json:"slug"`
	Plan Plan          `json:"plan"`
}

// User is the signed-in user as reported by the backend.
type User struct {
	ID     id.UserID `json:"id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
	Tenant Tenant    `json:"tenant"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsFreePlan() bool {
	return u != nil && u.Tenant.Plan == PlanFree
}

// Session is the persisted client state: the bearer token and the user it
// belongs to. It mirrors the two values the browser kept in local storage.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User.IsAdmin()
}

func (s *Session) IsFreePlan() bool {
	return s != nil && s.User.IsFreePlan()
}

// ExpiresAt reads the exp claim when the token is a JWT. The signature is not
// verified; the backend remains the authority and will answer 401 regardless.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if !s.IsAuthenticated() {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim that is not after now.
// Opaque tokens never expire client-side.
func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !exp.After(now)
}

// WithPlan returns a copy of the session whose tenant is on plan.
func (s *Session) WithPlan(plan Plan) *Session {
	if s == nil || s.User == nil {
		return s
	}
	user := *s.User
	user.Tenant.Plan = plan
	return &Session{Token: s.Token, User: &user}
}
