// Package dashboard assembles the signed-in landing view: the current user,
// the tenant's notes and, for admins, the tenant's users.
package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	admintypes "notely/internal/admin/types"
	authmodels "notely/internal/auth/models"
	notemodels "notely/internal/notes/models"
	"notely/internal/platform/httpclient"
	"notely/internal/platform/tracer"
)

// Sessions is the auth session the dashboard is built for.
type Sessions interface {
	Require(ctx context.Context) (*authmodels.Session, error)
	Refresh(ctx context.Context) (*authmodels.Session, error)
}

// NotesLoader is the notes list view model.
type NotesLoader interface {
	Load(ctx context.Context) error
	Notes() []notemodels.Note
	Usage(freePlan bool) string
	Error() string
}

// UsersLoader is the admin panel view model.
type UsersLoader interface {
	Load(ctx context.Context) error
	Users() []admintypes.TenantUser
	Error() string
}

// Dashboard loads a View. Only one Load may run at a time.
type Dashboard struct {
	sessions Sessions
	notes    NotesLoader
	users    UsersLoader
	logger   *slog.Logger
	tracer   tracer.Tracer
}

type Option func(*Dashboard)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(d *Dashboard) {
		d.tracer = t
	}
}

// New builds a dashboard. users may be nil when the admin panel is not wanted.
func New(sessions Sessions, notes NotesLoader, users UsersLoader, opts ...Option) *Dashboard {
	d := &Dashboard{sessions: sessions, notes: notes, users: users}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.tracer == nil {
		d.tracer = tracer.NewNoop()
	}
	return d
}

// Load refreshes the user, the notes and (for admins) the tenant users
// concurrently. Section failures land in the View; only a 401, which has
// already ended the session, or a missing session fails the whole load.
func (d *Dashboard) Load(ctx context.Context) (_ *View, err error) {
	sess, err := d.sessions.Require(ctx)
	if err != nil {
		return nil, err
	}
	isAdmin := sess.IsAdmin()

	ctx, span := d.tracer.Start(ctx, tracer.SpanDashboardLoad, tracer.Bool(tracer.AttrIsAdmin, isAdmin))
	defer func() { span.End(err) }()

	view := &View{User: sess.User}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		refreshed, err := d.sessions.Refresh(gctx)
		if err != nil {
			if httpclient.IsUnauthorized(err) {
				return err
			}
			d.logger.WarnContext(gctx, "refresh user failed, using stored user", "error", err)
			return nil
		}
		view.User = refreshed.User
		return nil
	})

	g.Go(func() error {
		if err := d.notes.Load(gctx); err != nil {
			if httpclient.IsUnauthorized(err) {
				return err
			}
			view.NotesError = d.notes.Error()
		}
		return nil
	})

	if isAdmin && d.users != nil {
		view.ShowAdmin = true
		g.Go(func() error {
			if err := d.users.Load(gctx); err != nil {
				if httpclient.IsUnauthorized(err) {
					return err
				}
				view.UsersError = d.users.Error()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.Notes = d.notes.Notes()
	view.Usage = d.notes.Usage(view.User.IsFreePlan())
	if view.ShowAdmin {
		view.Users = d.users.Users()
	}
	return view, nil
}
