// Package otel wires opt-in OpenTelemetry tracing for console commands.
package otel

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName scopes spans emitted by console packages.
const instrumentationName = "github.com/myhome/console"

// Tracer returns the console tracer from the global provider. Spans are
// no-ops until Setup registers an exporter.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Config selects where console spans are exported.
type Config struct {
	// Endpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	Endpoint string `env:"CONSOLE_OTEL_ENDPOINT"`
	// Disabled turns tracing off even when Endpoint is set.
	Disabled bool `env:"CONSOLE_OTEL_DISABLED"`
	// SampleRatio is the share of root traces kept, in [0, 1].
	SampleRatio    float64 `env:"CONSOLE_OTEL_SAMPLE_RATIO" envDefault:"1"`
	ServiceVersion string  `env:"CONSOLE_VERSION" envDefault:"dev"`
	Environment    string  `env:"CONSOLE_ENVIRONMENT"`
}

// Enabled reports whether Setup would install an exporter.
func (c Config) Enabled() bool {
	return !c.Disabled && strings.TrimSpace(c.Endpoint) != ""
}

func (c Config) sampler() (sdktrace.Sampler, error) {
	switch {
	case c.SampleRatio < 0 || c.SampleRatio > 1:
		return nil, fmt.Errorf("otel sample ratio must be within [0, 1], got %v", c.SampleRatio)
	case c.SampleRatio == 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample()), nil
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio)), nil
	}
}

// Setup installs a global tracer provider for serviceName when cfg is
// enabled. Otherwise it returns a no-op shutdown and leaves the global
// provider untouched.
//
// The returned shutdown flushes pending spans and should be deferred.
func Setup(ctx context.Context, serviceName string, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled() {
		return noop, nil
	}
	sampler, err := cfg.sampler()
	if err != nil {
		return noop, err
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(cfg.Endpoint)),
	)
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}

	attrs := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	}
	if env := strings.TrimSpace(cfg.Environment); env != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.DeploymentEnvironment(env)))
	}
	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
