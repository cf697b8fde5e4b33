// Package tracer provides a lightweight tracing abstraction for API calls.
//
// Callers depend on the Tracer interface rather than OpenTelemetry directly,
// so tests can use NoopTracer and production wires OTelTracer.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording err when non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashEmail returns a short SHA-256 prefix of a normalized email so traces can
// be correlated without carrying the address itself.
func HashEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(email))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanAPIRequest    = "notely.api.request"
	SpanDashboardLoad = "notely.dashboard.load"
)

// Attribute keys.
const (
	AttrRoute      = "notely.route"
	AttrMethod     = "http.request.method"
	AttrStatusCode = "http.response.status_code"
	AttrRequestID  = "notely.request_id"
	AttrEmailHash  = "notely.email_hash"
	AttrIsAdmin    = "notely.is_admin"
)

// Event names.
const (
	EventSessionCleared = "session.cleared"
)
