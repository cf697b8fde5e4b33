// Package models holds the note resource as the backend serves it.
package models

import (
	"encoding/json"
	"strings"
	"time"

	id "notely/pkg/domain"
	dErrors "notely/pkg/domain-errors"
)

// Author is the createdBy reference of a note. The backend sends either the
// populated user object or a bare string: the creator's email, or an
// unpopulated user id.
type Author struct {
	ID    id.UserID `json:"_id"`
	Email string    `json:"email"`
}

func (a *Author) UnmarshalJSON(data []byte) error {
	var ref string
	if err := json.Unmarshal(data, &ref); err == nil {
		if strings.Contains(ref, "@") {
			*a = Author{Email: ref}
		} else {
			*a = Author{ID: id.UserID(ref)}
		}
		return nil
	}
	type author Author
	var obj author
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*a = Author(obj)
	return nil
}

// Note is a single note owned by the tenant.
type Note struct {
	ID        id.NoteID `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy *Author   `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorEmail returns the creator's email, or "Unknown" when the backend
// did not populate it.
func (n Note) AuthorEmail() string {
	if n.CreatedBy == nil || n.CreatedBy.Email == "" {
		return "Unknown"
	}
	return n.CreatedBy.Email
}

// NoteInput is the body of POST /notes and PUT /notes/:id.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Normalize trims both fields; they are sent trimmed.
func (in *NoteInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
}

func (in *NoteInput) Validate() error {
	if in.Title == "" || in.Content == "" {
		return dErrors.New(dErrors.CodeValidation, "Please fill in both title and content")
	}
	return nil
}
