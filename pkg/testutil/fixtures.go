package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authmodels "notely/internal/auth/models"
	notemodels "notely/internal/notes/models"
	id "notely/pkg/domain"
)

// TestIDs provides fixed identifiers for deterministic test data.
var TestIDs = struct {
	UserID1   id.UserID
	UserID2   id.UserID
	TenantID1 id.TenantID
	TenantID2 id.TenantID
	NoteID1   id.NoteID
	NoteID2   id.NoteID
}{
	UserID1:   "64f000000000000000000001",
	UserID2:   "64f000000000000000000002",
	TenantID1: "64fa00000000000000000001",
	TenantID2: "64fa00000000000000000002",
	NoteID1:   "64fb00000000000000000001",
	NoteID2:   "64fb00000000000000000002",
}

// UserBuilder provides a fluent interface for building test users.
type UserBuilder struct {
	user *authmodels.User
}

// NewUserBuilder returns a member of a free "acme" tenant.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		user: &authmodels.User{
			ID:    TestIDs.UserID1,
			Email: "user@acme.test",
			Role:  authmodels.RoleMember,
			Tenant: authmodels.Tenant{
				ID:   TestIDs.TenantID1,
				Name: "Acme",
				Slug: "acme",
				Plan: authmodels.PlanFree,
			},
		},
	}
}

func (b *UserBuilder) WithID(userID id.UserID) *UserBuilder {
	b.user.ID = userID
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

func (b *UserBuilder) Admin() *UserBuilder {
	b.user.Role = authmodels.RoleAdmin
	return b
}

func (b *UserBuilder) WithPlan(plan authmodels.Plan) *UserBuilder {
	b.user.Tenant.Plan = plan
	return b
}

func (b *UserBuilder) WithTenant(tenant authmodels.Tenant) *UserBuilder {
	b.user.Tenant = tenant
	return b
}

func (b *UserBuilder) Build() *authmodels.User {
	u := *b.user
	return &u
}

// SessionBuilder provides a fluent interface for building test sessions.
type SessionBuilder struct {
	token string
	user  *authmodels.User
}

// NewSessionBuilder returns an opaque-token session for the default user.
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		token: "test-token",
		user:  NewUserBuilder().Build(),
	}
}

func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.token = token
	return b
}

func (b *SessionBuilder) WithUser(user *authmodels.User) *SessionBuilder {
	b.user = user
	return b
}

// ExpiresAt replaces the token with a signed JWT carrying exp.
func (b *SessionBuilder) ExpiresAt(exp time.Time) *SessionBuilder {
	b.token = MustJWT(exp)
	return b
}

func (b *SessionBuilder) Build() *authmodels.Session {
	return &authmodels.Session{Token: b.token, User: b.user}
}

// MustJWT signs a throwaway HS256 token expiring at exp.
func MustJWT(exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   TestIDs.UserID1.String(),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("fixture-key"))
	if err != nil {
		panic(err)
	}
	return signed
}

// NoteBuilder provides a fluent interface for building test notes.
type NoteBuilder struct {
	note notemodels.Note
}

func NewNoteBuilder() *NoteBuilder {
	created := time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	return &NoteBuilder{
		note: notemodels.Note{
			ID:        TestIDs.NoteID1,
			Title:     "Meeting notes",
			Content:   "Discuss the roadmap",
			CreatedBy: &notemodels.Author{ID: TestIDs.UserID1, Email: "user@acme.test"},
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func (b *NoteBuilder) WithID(noteID id.NoteID) *NoteBuilder {
	b.note.ID = noteID
	return b
}

func (b *NoteBuilder) WithTitle(title string) *NoteBuilder {
	b.note.Title = title
	return b
}

func (b *NoteBuilder) WithContent(content string) *NoteBuilder {
	b.note.Content = content
	return b
}

func (b *NoteBuilder) WithoutAuthor() *NoteBuilder {
	b.note.CreatedBy = nil
	return b
}

func (b *NoteBuilder) Build() notemodels.Note {
	return b.note
}

// NewTestNotes builds n notes with distinct IDs and titles.
func NewTestNotes(n int) []notemodels.Note {
	notes := make([]notemodels.Note, 0, n)
	for i := range n {
		notes = append(notes, NewNoteBuilder().
			WithID(id.NoteID("note-"+string(rune('a'+i)))).
			WithTitle("Note "+string(rune('A'+i))).
			Build())
	}
	return notes
}
