// Package domain provides typed identifiers so note, user and tenant references
// cannot be mixed up at compile time.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	dErrors "notely/pkg/domain-errors"
)

// The backend issues opaque identifiers (document ids and slugs); the client
// never interprets them beyond non-emptiness. Ids decode from JSON strings or
// numbers and are always held as strings.
type (
	NoteID     string
	UserID     string
	TenantID   string
	TenantSlug string
)

// Parse functions - use at trust boundaries (CLI arguments, decoded input).

func ParseNoteID(s string) (NoteID, error) {
	v, err := parseOpaque(s, "note ID")
	return NoteID(v), err
}

func ParseTenantSlug(s string) (TenantSlug, error) {
	v, err := parseOpaque(s, "tenant slug")
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(v, "/?#") {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid tenant slug format")
	}
	return TenantSlug(v), nil
}

func (id NoteID) String() string    { return string(id) }
func (id UserID) String() string    { return string(id) }
func (id TenantID) String() string  { return string(id) }
func (s TenantSlug) String() string { return string(s) }
func (id NoteID) IsNil() bool       { return id == "" }
func (id UserID) IsNil() bool       { return id == "" }
func (id TenantID) IsNil() bool     { return id == "" }
func (s TenantSlug) IsNil() bool    { return s == "" }

// parseOpaque trims surrounding whitespace and rejects empty values.
func parseOpaque(s, label string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	return v, nil
}

func (id *NoteID) UnmarshalJSON(data []byte) error {
	v, err := decodeOpaque(data)
	*id = NoteID(v)
	return err
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	v, err := decodeOpaque(data)
	*id = UserID(v)
	return err
}

func (id *TenantID) UnmarshalJSON(data []byte) error {
	v, err := decodeOpaque(data)
	*id = TenantID(v)
	return err
}

// decodeOpaque accepts a JSON string, number or null.
func decodeOpaque(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return "", nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", fmt.Errorf("identifier must be a string or number: %w", err)
		}
		return n.String(), nil
	}
}
