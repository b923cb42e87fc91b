// Package otel initializes the OpenTelemetry tracer provider used to export
// one span per supervised worker lifetime. With no OTLP endpoint configured
// it hands back a no-op tracer and exports nothing.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"sensorfleet/internal/config"
)

const initTimeout = 10 * time.Second

// InitProvider builds a tracer for worker lifecycle spans. When cfg has no
// endpoint the returned provider is nil and the tracer is a no-op; the
// returned shutdown func is always safe to call.
func InitProvider(cfg *config.OTELConfig) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.Enabled() {
		noopShutdown := func(context.Context) error { return nil }
		return noop.NewTracerProvider().Tracer("sensorfleet"), noopShutdown, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint()),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithTimeout(initTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	resourceOpts := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	}
	if custom := cfg.ParseResourceAttributes(); len(custom) > 0 {
		resourceOpts = append(resourceOpts, resource.WithAttributes(custom...))
	}

	res, err := resource.New(ctx, resourceOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	shutdown := func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down tracer provider: %w", err)
		}
		return nil
	}

	return tp.Tracer("sensorfleet"), shutdown, nil
}
