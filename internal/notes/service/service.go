// Package service is the notes list view model: the loaded notes, the plan
// gate in front of note creation and the create/update/delete flows with the
// messages the user sees when they fail.
package service

import (
	"context"
	"log/slog"

	authmodels "notely/internal/auth/models"
	"notely/internal/notes/models"
	"notely/internal/platform/httpclient"
	"notely/internal/platform/metrics"
	id "notely/pkg/domain"
	dErrors "notely/pkg/domain-errors"
)

const (
	msgLoadFailed   = "Failed to load notes"
	msgCreateFailed = "Failed to create note"
	msgUpdateFailed = "Failed to update note"
	msgDeleteFailed = "Failed to delete note. Please try again."
	msgPlanLimit    = "Free plan limit reached. Upgrade to Pro for unlimited notes."
)

// NotesAPI is the remote notes resource.
type NotesAPI interface {
	List(ctx context.Context) ([]models.Note, error)
	Create(ctx context.Context, in models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, noteID id.NoteID, in models.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, noteID id.NoteID) error
}

// PlanChecker reports whether the signed-in tenant is on the free plan.
type PlanChecker interface {
	IsFreePlan(ctx context.Context) bool
}

// List holds the notes of the current tenant. It is not safe for concurrent use.
type List struct {
	api                NotesAPI
	plan               PlanChecker
	logger             *slog.Logger
	metrics            *metrics.Metrics
	onPlanLimitReached func()

	notes   []models.Note
	loading bool
	err     string
}

type Option func(*List)

func WithLogger(logger *slog.Logger) Option {
	return func(l *List) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *List) {
		l.metrics = m
	}
}

// WithOnPlanLimitReached registers the hook fired when creation is blocked
// by the free plan limit (the upgrade prompt).
func WithOnPlanLimitReached(fn func()) Option {
	return func(l *List) {
		l.onPlanLimitReached = fn
	}
}

func New(api NotesAPI, plan PlanChecker, opts ...Option) *List {
	l := &List{api: api, plan: plan}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Notes returns a copy of the loaded notes.
func (l *List) Notes() []models.Note {
	out := make([]models.Note, len(l.notes))
	copy(out, l.notes)
	return out
}

func (l *List) Count() int {
	return len(l.notes)
}

func (l *List) Loading() bool {
	return l.loading
}

// Error returns the list-level error message, empty when the last load or
// delete succeeded.
func (l *List) Error() string {
	return l.err
}

// Load refetches the notes, replacing the local list on success.
func (l *List) Load(ctx context.Context) error {
	l.loading = true
	l.err = ""
	defer func() { l.loading = false }()

	notes, err := l.api.List(ctx)
	if err != nil {
		l.err = msgLoadFailed
		l.logger.ErrorContext(ctx, "load notes failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, msgLoadFailed)
	}
	l.notes = notes
	if l.metrics != nil {
		l.metrics.SetNotesListed(len(notes))
	}
	return nil
}

// AtPlanLimit reports whether a free tenant already holds the maximum number
// of notes.
func (l *List) AtPlanLimit(ctx context.Context) bool {
	return l.plan.IsFreePlan(ctx) && len(l.notes) >= authmodels.FreePlanNoteLimit
}

// BeginCreate is the gate in front of the create form. At the free plan
// limit it fires the upgrade hook and returns a CodePlanLimit error; the
// create call is never issued.
func (l *List) BeginCreate(ctx context.Context) error {
	if !l.AtPlanLimit(ctx) {
		return nil
	}
	if l.metrics != nil {
		l.metrics.IncrementPlanLimitHits()
	}
	l.logger.InfoContext(ctx, "note creation blocked by plan limit", "notes", len(l.notes))
	if l.onPlanLimitReached != nil {
		l.onPlanLimitReached()
	}
	return dErrors.New(dErrors.CodePlanLimit, msgPlanLimit)
}

// Create passes the plan gate, validates and trims the input, creates the
// note and refetches the list.
func (l *List) Create(ctx context.Context, title, content string) (*models.Note, error) {
	if err := l.BeginCreate(ctx); err != nil {
		return nil, err
	}
	in := models.NoteInput{Title: title, Content: content}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	note, err := l.api.Create(ctx, in)
	if err != nil {
		msg := httpclient.ServerMessage(err, msgCreateFailed)
		l.logger.ErrorContext(ctx, "create note failed", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
	l.refresh(ctx)
	return note, nil
}

// Update validates and trims the input, saves it and refetches the list.
func (l *List) Update(ctx context.Context, noteID id.NoteID, title, content string) (*models.Note, error) {
	if noteID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "note id is required")
	}
	in := models.NoteInput{Title: title, Content: content}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	note, err := l.api.Update(ctx, noteID, in)
	if err != nil {
		msg := httpclient.ServerMessage(err, msgUpdateFailed)
		l.logger.ErrorContext(ctx, "update note failed", "note_id", noteID.String(), "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
	l.refresh(ctx)
	return note, nil
}

// Delete removes the note remotely and then from the local list, without a
// refetch. On failure the note stays in the list.
func (l *List) Delete(ctx context.Context, noteID id.NoteID) error {
	if noteID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "note id is required")
	}
	if err := l.api.Delete(ctx, noteID); err != nil {
		l.err = msgDeleteFailed
		l.logger.ErrorContext(ctx, "delete note failed", "note_id", noteID.String(), "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, msgDeleteFailed)
	}
	l.err = ""
	kept := l.notes[:0:0]
	for _, n := range l.notes {
		if n.ID != noteID {
			kept = append(kept, n)
		}
	}
	l.notes = kept
	return nil
}

// refresh reloads after a successful mutation. A failed reload leaves the
// mutation in place and is reported through Error.
func (l *List) refresh(ctx context.Context) {
	if err := l.Load(ctx); err != nil {
		l.logger.WarnContext(ctx, "refetch after mutation failed", "error", err)
	}
}
