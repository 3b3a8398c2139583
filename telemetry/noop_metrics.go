package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/instrument"
)

// NoopMetrics returns Metrics whose instruments drop everything.
func NoopMetrics() Metrics {
	return Metrics{
		CheatCommands: noopCounter{},
		EngineStartMs: noopHistogram{},
	}
}

type noopCounter struct {
	instrument.Synchronous
}

func (noopCounter) Add(context.Context, int64, ...attribute.KeyValue) {}

type noopHistogram struct {
	instrument.Synchronous
}

func (noopHistogram) Record(context.Context, int64, ...attribute.KeyValue) {}
