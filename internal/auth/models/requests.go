package models

import (
	"strings"

	dErrors "notely/pkg/domain-errors"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "Please enter your email and password")
	}
	return nil
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// MeResponse is the body returned by GET /auth/me. Some backends return the
// user bare instead of wrapped; the client accepts both.
type MeResponse struct {
	User *User `json:"user"`
}
