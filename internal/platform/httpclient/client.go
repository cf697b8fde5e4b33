// Package httpclient is the authenticated JSON client every API call goes
// through. It attaches the stored bearer token, turns non-2xx answers into
// *ResponseError and treats any 401 as the end of the session.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"notely/internal/platform/metrics"
	"notely/internal/platform/tracer"
	dErrors "notely/pkg/domain-errors"
)

const (
	headerRequestID = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credentials is the view of the session store the client needs.
type Credentials interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Client issues JSON requests against the API base URL.
type Client struct {
	baseURL        string
	creds          Credentials
	doer           HTTPDoer
	timeout        time.Duration
	logger         *slog.Logger
	tracer         tracer.Tracer
	metrics        *metrics.Metrics
	onUnauthorized func(ctx context.Context)
	newRequestID   func() string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithOnUnauthorized registers the hook run after a 401 cleared the session.
func WithOnUnauthorized(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a client for baseURL. creds may be nil for endpoints that never
// carry a token, such as the health check.
func New(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		creds:        creds,
		logger:       slog.New(slog.DiscardHandler),
		tracer:       tracer.NewNoop(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return c
}

// Origin strips the first "/api" segment from an API base URL, yielding the
// server root where /health lives.
func Origin(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return strings.TrimRight(strings.Replace(baseURL, "/api", "", 1), "/")
	}
	u.Path = strings.TrimRight(strings.Replace(u.Path, "/api", "", 1), "/")
	u.RawPath = ""
	return u.String()
}

// Request describes one API call. Route is the path template used for
// metrics and span labels (e.g. "/notes/:id"); Path is the concrete path.
type Request struct {
	Method string
	Route  string
	Path   string
	Body   any
}

// Do sends r and decodes a 2xx JSON body into out when out is non-nil.
//
// Error Contract:
//   - 401 clears the session, runs the unauthorized hook and returns a
//     CodeUnauthorized domain error wrapping the *ResponseError
//   - any other non-2xx status returns *ResponseError
//   - transport and decode failures are wrapped with %w
func (c *Client) Do(ctx context.Context, r Request, out any) (err error) {
	if r.Route == "" {
		r.Route = r.Path
	}
	requestID := c.newRequestID()

	ctx, span := c.tracer.Start(ctx, tracer.SpanAPIRequest,
		tracer.String(tracer.AttrRoute, r.Route),
		tracer.String(tracer.AttrMethod, r.Method),
		tracer.String(tracer.AttrRequestID, requestID),
	)
	defer func() { span.End(err) }()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, r, requestID)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.observe(ctx, r, requestID, 0, start)
		return fmt.Errorf("%s %s: %w", r.Method, r.Route, err)
	}
	defer resp.Body.Close()

	c.observe(ctx, r, requestID, resp.StatusCode, start)
	span.SetAttributes(tracer.Int(tracer.AttrStatusCode, resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := newResponseError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateSession(ctx, span, requestID)
			return dErrors.Wrap(respErr, dErrors.CodeUnauthorized, unauthorizedMessage(respErr))
		}
		return respErr
	}

	if out == nil {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", r.Route, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.Route, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request, requestID string) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", r.Route, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", r.Route, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)

	if c.creds != nil {
		token, err := c.creds.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read session token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) invalidateSession(ctx context.Context, span tracer.Span, requestID string) {
	if c.creds != nil {
		if err := c.creds.Clear(ctx); err != nil {
			c.logger.WarnContext(ctx, "failed to clear session after 401",
				"request_id", requestID,
				"error", err,
			)
		}
	}
	span.AddEvent(tracer.EventSessionCleared)
	if c.metrics != nil {
		c.metrics.IncrementSessionInvalidations()
	}
	c.logger.InfoContext(ctx, "session cleared after unauthorized response", "request_id", requestID)
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

func (c *Client) observe(ctx context.Context, r Request, requestID string, status int, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(r.Route, r.Method, status, start)
	}
	c.logger.DebugContext(ctx, "api request completed",
		"request_id", requestID,
		"method", r.Method,
		"route", r.Route,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func unauthorizedMessage(err *ResponseError) string {
	if err.Message != "" {
		return err.Message
	}
	return "session expired, please sign in again"
}

// IsUnauthorized reports whether err came from a 401 answer.
func IsUnauthorized(err error) bool {
	return dErrors.HasCode(err, dErrors.CodeUnauthorized)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}
