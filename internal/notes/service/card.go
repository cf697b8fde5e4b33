package service

import (
	"fmt"
	"time"

	authmodels "notely/internal/auth/models"
	"notely/internal/notes/models"
)

const (
	// ExcerptLength is the number of characters a card shows before truncating.
	ExcerptLength = 150
	dateLayout    = "Jan 2, 2006, 03:04 PM"
)

// Card is the display form of one note.
type Card struct {
	ID      string
	Title   string
	Excerpt string
	Author  string
	Created string
}

// NewCard formats n for display, rendering dates in loc.
func NewCard(n models.Note, loc *time.Location) Card {
	return Card{
		ID:      n.ID.String(),
		Title:   n.Title,
		Excerpt: Truncate(n.Content, ExcerptLength),
		Author:  n.AuthorEmail(),
		Created: FormatDate(n.CreatedAt, loc),
	}
}

// Truncate shortens s to limit characters and appends "..." when it had to cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// FormatDate renders t like "Jan 5, 2026, 02:30 PM". The zero time renders empty.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(dateLayout)
}

// UsageLabel describes how much of the plan the tenant uses.
func UsageLabel(count int, freePlan bool) string {
	if !freePlan {
		return fmt.Sprintf("%d notes", count)
	}
	label := fmt.Sprintf("%d/%d notes used", count, authmodels.FreePlanNoteLimit)
	if count >= authmodels.FreePlanNoteLimit {
		label += " (Upgrade to Pro for unlimited notes)"
	}
	return label
}

// Usage is UsageLabel for the loaded list.
func (l *List) Usage(freePlan bool) string {
	return UsageLabel(len(l.notes), freePlan)
}
