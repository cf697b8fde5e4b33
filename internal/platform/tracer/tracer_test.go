package tracer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"notely/internal/platform/tracer"
)

func TestNoopTracer_Start(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, "test.span", tracer.String("key", "value"))

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Bool("flag", true))
	span.AddEvent("test.event", tracer.Int64("count", 42))
	span.End(errors.New("ignored"))
}

func TestOTelTracer_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := tracer.NewOTel(tracer.WithOTelTracer(provider.Tracer("test")))

	_, span := tr.Start(context.Background(), tracer.SpanAPIRequest,
		tracer.String(tracer.AttrRoute, "/notes/:id"),
		tracer.Int(tracer.AttrStatusCode, 401),
	)
	span.AddEvent(tracer.EventSessionCleared)
	span.End(errors.New("unauthorized"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, tracer.SpanAPIRequest, ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 2) // session.cleared + recorded error
	assert.Equal(t, tracer.EventSessionCleared, ended[0].Events()[0].Name)
}

func TestHashEmail(t *testing.T) {
	assert.Empty(t, tracer.HashEmail(""))
	assert.Len(t, tracer.HashEmail("admin@acme.test"), 16)
	assert.Equal(t, tracer.HashEmail("Admin@Acme.test "), tracer.HashEmail("admin@acme.test"))
	assert.NotEqual(t, tracer.HashEmail("admin@acme.test"), tracer.HashEmail("user@acme.test"))
}
