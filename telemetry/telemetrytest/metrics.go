// Package telemetrytest provides an in-memory meter provider for tests.
package telemetrytest

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/instrument"
	"go.opentelemetry.io/otel/metric/instrument/syncint64"
)

// MeterProvider records every int64 counter increment and histogram value by
// instrument name. Only synchronous int64 counters and histograms are
// supported.
type MeterProvider struct {
	metric.MeterProvider

	lock       sync.Mutex
	counters   map[string]int64
	histograms map[string][]int64
	attributes map[string][][]attribute.KeyValue
}

// NewMeterProvider returns an empty MeterProvider.
func NewMeterProvider() *MeterProvider {
	return &MeterProvider{
		counters:   map[string]int64{},
		histograms: map[string][]int64{},
		attributes: map[string][][]attribute.KeyValue{},
	}
}

// Meter implements metric.MeterProvider.
func (p *MeterProvider) Meter(string, ...metric.MeterOption) metric.Meter {
	return &meter{provider: p}
}

// Counter returns the sum of everything added to the named counter.
func (p *MeterProvider) Counter(name string) int64 {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.counters[name]
}

// Histogram returns the values recorded by the named histogram.
func (p *MeterProvider) Histogram(name string) []int64 {
	p.lock.Lock()
	defer p.lock.Unlock()

	return append([]int64(nil), p.histograms[name]...)
}

// Attributes returns the attribute sets of every measurement of the named instrument.
func (p *MeterProvider) Attributes(name string) [][]attribute.KeyValue {
	p.lock.Lock()
	defer p.lock.Unlock()

	return append([][]attribute.KeyValue(nil), p.attributes[name]...)
}

func (p *MeterProvider) add(name string, v int64, attrs []attribute.KeyValue) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.counters[name] += v
	p.attributes[name] = append(p.attributes[name], attrs)
}

func (p *MeterProvider) record(name string, v int64, attrs []attribute.KeyValue) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.histograms[name] = append(p.histograms[name], v)
	p.attributes[name] = append(p.attributes[name], attrs)
}

type meter struct {
	metric.Meter
	provider *MeterProvider
}

func (m *meter) SyncInt64() syncint64.InstrumentProvider {
	return &int64Instruments{provider: m.provider}
}

type int64Instruments struct {
	syncint64.InstrumentProvider
	provider *MeterProvider
}

func (i *int64Instruments) Counter(name string, _ ...instrument.Option) (syncint64.Counter, error) {
	return &counter{name: name, provider: i.provider}, nil
}

func (i *int64Instruments) Histogram(name string, _ ...instrument.Option) (syncint64.Histogram, error) {
	return &histogram{name: name, provider: i.provider}, nil
}

type counter struct {
	instrument.Synchronous
	name     string
	provider *MeterProvider
}

func (c *counter) Add(_ context.Context, incr int64, attrs ...attribute.KeyValue) {
	c.provider.add(c.name, incr, attrs)
}

type histogram struct {
	instrument.Synchronous
	name     string
	provider *MeterProvider
}

func (h *histogram) Record(_ context.Context, v int64, attrs ...attribute.KeyValue) {
	h.provider.record(h.name, v, attrs)
}
