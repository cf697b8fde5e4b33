package fakeapi

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notely/internal/auth/email"
	authmodels "notely/internal/auth/models"
	notemodels "notely/internal/notes/models"
	id "notely/pkg/domain"
	dErrors "notely/pkg/domain-errors"
	"notely/pkg/secrets"
)

type userRecord struct {
	user         authmodels.User
	passwordHash []byte
}

// store is the backend's in-memory state. Tenants are keyed by ID, users by
// lower-cased email, notes by ID.
type store struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]*authmodels.Tenant
	users   map[string]*userRecord
	notes   map[id.NoteID]*noteRecord
	order   []id.NoteID
	cost    int
}

type noteRecord struct {
	note     notemodels.Note
	tenantID id.TenantID
}

func newStore(cost int) *store {
	return &store{
		tenants: make(map[id.TenantID]*authmodels.Tenant),
		users:   make(map[string]*userRecord),
		notes:   make(map[id.NoteID]*noteRecord),
		cost:    cost,
	}
}

func (s *store) addTenant(tenantID id.TenantID, name string, slug id.TenantSlug, plan authmodels.Plan) *authmodels.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &authmodels.Tenant{ID: tenantID, Name: name, Slug: slug, Plan: plan}
	s.tenants[t.ID] = t
	return t
}

func (s *store) tenantBySlug(slug id.TenantSlug) (*authmodels.Tenant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tenants {
		if t.Slug == slug {
			out := *t
			return &out, true
		}
	}
	return nil, false
}

func (s *store) addUser(userID id.UserID, address, password string, role authmodels.Role, tenantID id.TenantID) (*authmodels.User, error) {
	hash, err := secrets.Hash(password, s.cost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := email.Normalize(address)
	if _, exists := s.users[key]; exists {
		return nil, dErrors.New(dErrors.CodeConflict, "User already exists")
	}
	tenant, ok := s.tenants[tenantID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "Tenant not found")
	}
	rec := &userRecord{
		user: authmodels.User{
			ID:     userID,
			Email:  key,
			Role:   role,
			Tenant: *tenant,
		},
		passwordHash: hash,
	}
	s.users[key] = rec
	u := rec.user
	return &u, nil
}

// authenticate checks the password and returns the user with its tenant's current state.
func (s *store) authenticate(address, password string) (*authmodels.User, bool) {
	s.mu.RLock()
	rec, ok := s.users[email.Normalize(address)]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if secrets.Verify(password, rec.passwordHash) != nil {
		return nil, false
	}
	return s.userByID(rec.user.ID)
}

func (s *store) userByID(userID id.UserID) (*authmodels.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if rec.user.ID == userID {
			u := rec.user
			if t, ok := s.tenants[u.Tenant.ID]; ok {
				u.Tenant = *t
			}
			return &u, true
		}
	}
	return nil, false
}

func (s *store) tenantUsers(tenantID id.TenantID) []authmodels.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []authmodels.User
	for _, rec := range s.users {
		if rec.user.Tenant.ID == tenantID {
			out = append(out, rec.user)
		}
	}
	slices.SortFunc(out, func(a, b authmodels.User) int { return strings.Compare(a.Email, b.Email) })
	return out
}

func (s *store) setPlan(tenantID id.TenantID, plan authmodels.Plan) (*authmodels.Tenant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[tenantID]
	if !ok {
		return nil, false
	}
	t.Plan = plan
	out := *t
	return &out, true
}

func (s *store) listNotes(tenantID id.TenantID) []notemodels.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]notemodels.Note, 0)
	// Newest first.
	for i := len(s.order) - 1; i >= 0; i-- {
		rec := s.notes[s.order[i]]
		if rec.tenantID == tenantID {
			out = append(out, rec.note)
		}
	}
	return out
}

func (s *store) countNotes(tenantID id.TenantID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, rec := range s.notes {
		if rec.tenantID == tenantID {
			n++
		}
	}
	return n
}

// createNote enforces the free plan limit under the same lock as the insert.
func (s *store) createNote(author authmodels.User, in notemodels.NoteInput, limit int, now time.Time) (*notemodels.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tenant, ok := s.tenants[author.Tenant.ID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "Tenant not found")
	}
	if tenant.Plan == authmodels.PlanFree {
		count := 0
		for _, rec := range s.notes {
			if rec.tenantID == tenant.ID {
				count++
			}
		}
		if count >= limit {
			return nil, dErrors.New(dErrors.CodePlanLimit, "Note limit reached. Upgrade to Pro for unlimited notes.")
		}
	}
	note := notemodels.Note{
		ID:        id.NoteID(uuid.NewString()),
		Title:     in.Title,
		Content:   in.Content,
		CreatedBy: &notemodels.Author{ID: author.ID, Email: author.Email},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes[note.ID] = &noteRecord{note: note, tenantID: tenant.ID}
	s.order = append(s.order, note.ID)
	return &note, nil
}

func (s *store) getNote(tenantID id.TenantID, noteID id.NoteID) (*notemodels.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.notes[noteID]
	if !ok || rec.tenantID != tenantID {
		return nil, dErrors.New(dErrors.CodeNotFound, "Note not found")
	}
	n := rec.note
	return &n, nil
}

func (s *store) updateNote(tenantID id.TenantID, noteID id.NoteID, in notemodels.NoteInput, now time.Time) (*notemodels.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.notes[noteID]
	if !ok || rec.tenantID != tenantID {
		return nil, dErrors.New(dErrors.CodeNotFound, "Note not found")
	}
	rec.note.Title = in.Title
	rec.note.Content = in.Content
	rec.note.UpdatedAt = now
	n := rec.note
	return &n, nil
}

func (s *store) deleteNote(tenantID id.TenantID, noteID id.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.notes[noteID]
	if !ok || rec.tenantID != tenantID {
		return dErrors.New(dErrors.CodeNotFound, "Note not found")
	}
	delete(s.notes, noteID)
	s.order = slices.DeleteFunc(s.order, func(n id.NoteID) bool { return n == noteID })
	return nil
}
