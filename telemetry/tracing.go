// Package telemetry sets up OpenTelemetry tracing for the performance_metrics feature.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/suborbital/necrosis/conditional"
	"github.com/suborbital/necrosis/options"
	"github.com/suborbital/necrosis/release"
	"github.com/suborbital/vektor/vlog"
)

const (
	ExporterCollector = "collector"
	ExporterHoneycomb = "honeycomb"
	ExporterNone      = "none"

	instrumentationName = "github.com/suborbital/necrosis"
)

// SetupTracing configures the tracer provider for the given config. Unknown tracer types fall back to a provider
// without an exporter. The caller owns the provider and must Shutdown it.
func SetupTracing(ctx context.Context, config options.TracerConfig, logger *vlog.Logger) (*sdktrace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	res := resource.NewSchemaless(
		attribute.String("service.name", config.ServiceName),
		attribute.String("service.version", release.DotVersion),
	)

	switch config.TracerType {
	case ExporterHoneycomb:
		if config.HoneycombConfig == nil {
			return nil, errors.New("missing honeycomb tracing config values")
		}

		logger.Debug("configuring honeycomb exporter for tracing")

		exporter, err := newExporter(ctx,
			otlptracegrpc.WithEndpoint(config.HoneycombConfig.Endpoint),
			otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
			otlptracegrpc.WithHeaders(map[string]string{
				"x-honeycomb-team":    config.HoneycombConfig.APIKey,
				"x-honeycomb-dataset": config.HoneycombConfig.Dataset,
			}),
		)
		if err != nil {
			return nil, errors.Wrap(err, "honeycomb newExporter")
		}

		logger.Debug("created honeycomb trace exporter")

		return newProvider(config, res, exporter), nil
	case ExporterCollector:
		if config.Collector == nil {
			return nil, errors.New("missing collector tracing config values")
		}

		logger.Debug("configuring collector exporter for tracing")

		exporter, err := newExporter(ctx,
			otlptracegrpc.WithEndpoint(config.Collector.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, errors.Wrap(err, "collector newExporter")
		}

		logger.Debug("created collector trace exporter")

		return newProvider(config, res, exporter), nil
	default:
		logger.Warn(fmt.Sprintf("unrecognised tracer type configuration [%s]. Defaulting to no tracer", config.TracerType))
		fallthrough
	case ExporterNone, "":
		logger.Debug("finished setting up default tracer without an exporter")

		return newProvider(config, res, nil), nil
	}
}

func newExporter(ctx context.Context, opts ...otlptracegrpc.Option) (*otlptrace.Exporter, error) {
	opts = append(opts, otlptracegrpc.WithDialOption(grpc.WithUserAgent("necrosis/"+release.DotVersion)))

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, errors.Wrap(err, "failed to otlptrace.New")
	}

	return exporter, nil
}

func newProvider(config options.TracerConfig, res *resource.Resource, exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.Probability))),
	}

	if exporter != nil {
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exporter))
	}

	otel.SetTextMapPropagator(propagation.TraceContext{})

	return sdktrace.NewTracerProvider(providerOpts...)
}

// Tracer returns the engine tracer from provider when g is on, and a no-op tracer otherwise. provider is not touched
// when g is off, so it may be nil.
func Tracer(g conditional.Gate, provider trace.TracerProvider) trace.Tracer {
	return conditional.ReturnFunc(g, func() trace.Tracer {
		return provider.Tracer(instrumentationName, trace.WithInstrumentationVersion(release.DotVersion))
	}, func() trace.Tracer {
		return trace.NewNoopTracerProvider().Tracer(instrumentationName)
	})
}
