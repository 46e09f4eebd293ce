// Package observability wires OpenTelemetry trace export.
//
// Spans produced by Genkit (every flow and generate call) are exported
// over OTLP HTTP to whatever collector the endpoint points at — an
// otel-collector sidecar, a vendor agent, or a local jaeger. The
// collector handles authentication and forwarding, so the service only
// needs a plain endpoint.
//
// An empty endpoint disables export; flows still run, spans are
// simply dropped.
package observability

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/core/tracing"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hclsu/nextword/internal/log"
)

// Config for OTLP trace export.
type Config struct {
	// Endpoint is the OTLP HTTP host:port. Empty disables tracing.
	Endpoint string
	// Environment tags spans with deployment.environment.
	Environment string
	// ServiceName is the name shown in the tracing backend.
	ServiceName string
}

// Setup registers an OTLP exporter with Genkit's TracerProvider and
// returns a shutdown function that flushes pending spans.
//
// Call it before genkit.Init so the provider is ready when the first
// flow runs.
func Setup(ctx context.Context, cfg Config, logger log.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }

	if cfg.Endpoint == "" {
		logger.Debug("tracing disabled, no OTLP endpoint configured")
		return noop
	}

	// Genkit's TracerProvider reads service identity from the OTEL env
	// vars. Set exactly once during startup, before any goroutines.
	if cfg.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName)
	}
	if cfg.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+cfg.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(), // collectors are local or in-cluster
	)
	if err != nil {
		logger.Warn("creating OTLP exporter, tracing disabled", "error", err)
		return noop
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("tracing enabled",
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
		"environment", cfg.Environment,
	)

	return tracing.TracerProvider().Shutdown
}
