// Package telemetry installs the OpenTelemetry trace pipeline when an OTLP
// endpoint is configured.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"notely/internal/platform/config"
)

// ShutdownFunc flushes and stops the trace pipeline.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup returns a no-op shutdown when no endpoint is configured. Exporter
// failures are logged and tracing stays disabled; they never stop the CLI.
func Setup(ctx context.Context, cfg config.Client, logger *slog.Logger) ShutdownFunc {
	if cfg.OTLPEndpoint == "" {
		return noop
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		logger.WarnContext(ctx, "otel exporter setup failed", "error", err)
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName("notely"),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		logger.WarnContext(ctx, "otel resource setup failed", "error", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown
}
