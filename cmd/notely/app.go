package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"notely/internal/admin"
	authclient "notely/internal/auth/client"
	authservice "notely/internal/auth/service"
	"notely/internal/auth/store/session"
	"notely/internal/dashboard"
	notesclient "notely/internal/notes/client"
	notesservice "notely/internal/notes/service"
	"notely/internal/platform/config"
	"notely/internal/platform/health"
	"notely/internal/platform/httpclient"
	"notely/internal/platform/logger"
	"notely/internal/platform/metrics"
	"notely/internal/platform/redis"
	"notely/internal/platform/telemetry"
	"notely/internal/platform/tracer"
	tenantclient "notely/internal/tenant/client"
	tenantmetrics "notely/internal/tenant/metrics"
	tenantservice "notely/internal/tenant/service"
)

const (
	msgSessionEnded = "Your session has ended. Run `notely login` to sign in again."
	msgUpgradeAdmin = "Run `notely upgrade` to upgrade to Pro."
	msgUpgradeAsk   = "Ask a tenant administrator to upgrade to Pro."
)

// app is everything one CLI invocation needs, wired from config.
type app struct {
	cfg      config.Client
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	tracer   tracer.Tracer

	store  session.Store
	redis  *redis.Client
	http   *httpclient.Client
	auth   *authservice.Service
	notes  *notesservice.List
	notesC *notesclient.Client
	admin  *admin.Service
	tenant *tenantservice.UpgradeService
	health *health.Client
	dash   *dashboard.Dashboard

	shutdownTelemetry telemetry.ShutdownFunc
	sessionEnded      sync.Once
}

// lockedWriter serializes writes from the logger and the notices printed by
// hooks, which the dashboard may fire from several goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type appOptions struct {
	// quietUnauthorized drops the "session ended" notice; login uses it so a
	// rejected password is not reported as an ended session.
	quietUnauthorized bool
}

func newApp(ctx context.Context, cfg config.Client, stdout, stderr io.Writer, opts appOptions) (*app, error) {
	errOut := &lockedWriter{w: stderr}
	a := &app{
		cfg:      cfg,
		stdout:   stdout,
		stderr:   errOut,
		logger:   logger.NewWithWriter(errOut, cfg.LogLevel),
		registry: prometheus.NewRegistry(),
	}
	a.metrics = metrics.New(a.registry)
	a.shutdownTelemetry = telemetry.Setup(ctx, cfg, a.logger)
	if cfg.OTLPEndpoint != "" {
		a.tracer = tracer.NewOTel()
	} else {
		a.tracer = tracer.NewNoop()
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.store = store

	httpOpts := []httpclient.Option{
		httpclient.WithTimeout(cfg.HTTPTimeout),
		httpclient.WithLogger(a.logger),
		httpclient.WithTracer(a.tracer),
		httpclient.WithMetrics(a.metrics),
	}
	if !opts.quietUnauthorized {
		httpOpts = append(httpOpts, httpclient.WithOnUnauthorized(func(context.Context) {
			a.sessionEnded.Do(func() {
				fmt.Fprintln(a.stderr, msgSessionEnded)
			})
		}))
	}
	a.http = httpclient.New(cfg.APIURL, a.store, httpOpts...)

	a.auth = authservice.New(authclient.New(a.http), a.store,
		authservice.WithLogger(a.logger),
		authservice.WithTracer(a.tracer),
	)
	a.notesC = notesclient.New(a.http)
	a.notes = notesservice.New(a.notesC, a.auth,
		notesservice.WithLogger(a.logger),
		notesservice.WithMetrics(a.metrics),
		notesservice.WithOnPlanLimitReached(a.promptUpgrade),
	)
	a.admin = admin.NewService(admin.NewClient(a.http), a.auth, admin.WithLogger(a.logger))
	a.tenant = tenantservice.NewUpgradeService(tenantclient.New(a.http), a.auth,
		tenantservice.WithLogger(a.logger),
		tenantservice.WithMetrics(tenantmetrics.New(a.registry)),
		tenantservice.WithTracer(a.tracer),
	)
	a.health = health.NewClient(cfg.APIURL,
		httpclient.WithTimeout(cfg.HTTPTimeout),
		httpclient.WithLogger(a.logger),
		httpclient.WithMetrics(a.metrics),
	)
	a.dash = dashboard.New(a.auth, a.notes, a.admin,
		dashboard.WithLogger(a.logger),
		dashboard.WithTracer(a.tracer),
	)
	return a, nil
}

// openStore picks Redis when configured, the session file otherwise.
func (a *app) openStore(ctx context.Context) (session.Store, error) {
	if a.cfg.SessionRedis == "" {
		return session.NewFile(a.cfg.SessionFile, session.WithFileLogger(a.logger)), nil
	}
	client, err := redis.New(ctx, a.cfg.SessionRedis, a.registry)
	if err != nil {
		return nil, fmt.Errorf("connect session redis: %w", err)
	}
	a.redis = client
	return session.NewRedis(client, a.cfg.Profile), nil
}

// promptUpgrade follows the plan limit error with the next step for this role.
func (a *app) promptUpgrade() {
	if a.auth.IsAdmin(context.Background()) {
		fmt.Fprintln(a.stderr, msgUpgradeAdmin)
		return
	}
	fmt.Fprintln(a.stderr, msgUpgradeAsk)
}

// close flushes metrics and traces and releases connections.
func (a *app) close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.WarnContext(ctx, "closing redis failed", "error", err)
		}
	}
	if a.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			a.logger.WarnContext(ctx, "writing metrics file failed", "error", err, "path", a.cfg.MetricsFile)
		}
	}
	if err := a.shutdownTelemetry(ctx); err != nil {
		a.logger.WarnContext(ctx, "telemetry shutdown failed", "error", err)
	}
}
