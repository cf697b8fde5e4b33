package fakeapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	admintypes "notely/internal/admin/types"
	"notely/internal/auth/email"
	authmodels "notely/internal/auth/models"
	notemodels "notely/internal/notes/models"
	tenantmodels "notely/internal/tenant/models"
	id "notely/pkg/domain"
	dErrors "notely/pkg/domain-errors"
	"notely/pkg/platform/httputil"
	"notely/pkg/platform/middleware/auth"
	"notely/pkg/platform/middleware/request"
	"notely/pkg/secrets"
	"notely/pkg/validation"
)

func normalizeEmail(address string) string {
	return email.Normalize(address)
}

func errUnknownTenant(slug id.TenantSlug) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown tenant %q", slug))
}

func errUnknownUser(address string) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("unknown user %q", address))
}

// currentUser resolves the caller from the token claims. A token for a user
// that no longer exists is treated as unauthenticated.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*authmodels.User, bool) {
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Authentication required"))
		return nil, false
	}
	user, ok := s.store.userByID(claims.UserID)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "User not found"))
		return nil, false
	}
	return user, true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[authmodels.LoginRequest](w, r, s.logger)
	if !ok {
		return
	}
	user, ok := s.store.authenticate(req.Email, req.Password)
	if !ok {
		s.logger.InfoContext(ctx, "login rejected", "request_id", request.GetRequestID(ctx))
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials"))
		return
	}
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Tenant.ID, string(user.Role))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue token", "error", err, "request_id", request.GetRequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, authmodels.LoginResponse{Token: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, authmodels.MeResponse{User: user})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, s.store.listNotes(user.Tenant.ID))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	in, ok := httputil.DecodeAndPrepare[notemodels.NoteInput](w, r, s.logger)
	if !ok {
		return
	}
	note, err := s.store.createNote(*user, *in, s.noteLimit, s.clock())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, note)
}

func noteID(r *http.Request) id.NoteID {
	return id.NoteID(chi.URLParam(r, "id"))
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	note, err := s.store.getNote(user.Tenant.ID, noteID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	in, ok := httputil.DecodeAndPrepare[notemodels.NoteInput](w, r, s.logger)
	if !ok {
		return
	}
	note, err := s.store.updateNote(user.Tenant.ID, noteID(r), *in, s.clock())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	if err := s.store.deleteNote(user.Tenant.ID, noteID(r)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[admintypes.InviteRequest](w, r, s.logger)
	if !ok {
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	address := req.Email
	role := req.Role
	if role == "" {
		role = authmodels.RoleMember
	}

	password, err := secrets.TemporaryPassword()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	invited, err := s.store.addUser(id.UserID(uuid.NewString()), address, password, role, user.Tenant.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.logger.InfoContext(ctx, "user invited",
		"tenant", user.Tenant.Slug.String(),
		"role", string(role),
		"request_id", request.GetRequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, admintypes.InviteResult{
		TemporaryPassword: password,
		User:              &admintypes.TenantUser{ID: invited.ID, Email: invited.Email, Role: invited.Role},
		Message:           "User invited",
	})
}

func (s *Server) handleTenantUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	users := s.store.tenantUsers(user.Tenant.ID)
	resp := admintypes.TenantUsersResponse{Users: make([]admintypes.TenantUser, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, admintypes.TenantUser{ID: u.ID, Email: u.Email, Role: u.Role})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	slug := id.TenantSlug(chi.URLParam(r, "slug"))
	if slug != user.Tenant.Slug {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "You can only upgrade your own tenant"))
		return
	}
	tenant, ok := s.store.setPlan(user.Tenant.ID, authmodels.PlanPro)
	if !ok {
		httputil.WriteError(w, errUnknownTenant(slug))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tenantmodels.UpgradeResponse{
		Message: "Tenant upgraded to Pro",
		Tenant:  tenant,
	})
}
