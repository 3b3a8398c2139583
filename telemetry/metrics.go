package telemetry

import (
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.opentelemetry.io/otel/metric/instrument/syncint64"
	"go.opentelemetry.io/otel/metric/unit"

	"github.com/suborbital/necrosis/conditional"
	"github.com/suborbital/necrosis/release"
)

// Metrics are the engine's meters. With performance metrics compiled out
// every instrument is a no-op.
type Metrics struct {
	CheatCommands syncint64.Counter
	EngineStartMs syncint64.Histogram
}

// Timer measures elapsed time for a histogram.
type Timer struct {
	start time.Time
}

// NewTimer returns a Timer started now.
func NewTimer() Timer {
	return Timer{start: time.Now()}
}

// ObserveMs returns the number of ms passed since NewTimer was called.
func (t Timer) ObserveMs() int64 {
	return time.Since(t.start).Milliseconds()
}

// NewMetrics returns meters from provider when g is on, and NoopMetrics
// otherwise. provider is not touched when g is off, so it may be nil.
func NewMetrics(g conditional.Gate, provider metric.MeterProvider) (Metrics, error) {
	var err error

	m := conditional.ReturnFunc(g, func() Metrics {
		var configured Metrics

		configured, err = configureMetrics(provider)
		if err != nil {
			return NoopMetrics()
		}

		return configured
	}, NoopMetrics)

	return m, err
}

func configureMetrics(provider metric.MeterProvider) (Metrics, error) {
	m := provider.Meter(
		instrumentationName,
		metric.WithInstrumentationVersion(release.DotVersion),
	)

	si64 := m.SyncInt64()

	cheatCommands, err := si64.Counter(
		"cheat_commands",
		instrument.WithUnit(unit.Dimensionless),
		instrument.WithDescription("How many cheat commands were dispatched"),
	)
	if err != nil {
		return Metrics{}, errors.Wrap(err, "sync int 64 provider cheat_commands")
	}

	engineStart, err := si64.Histogram(
		"engine_start_ms",
		instrument.WithUnit(unit.Milliseconds),
		instrument.WithDescription("How long engine startup took"),
	)
	if err != nil {
		return Metrics{}, errors.Wrap(err, "sync int 64 provider engine_start_ms")
	}

	return Metrics{
		CheatCommands: cheatCommands,
		EngineStartMs: engineStart,
	}, nil
}
