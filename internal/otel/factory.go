package otel

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MetricFactory creates instruments named "<prefix>.<name>" from the global
// meter provider. Instruments obtained before a provider is installed are
// forwarded to it once it is, so package init() is a fine place to call it.
type MetricFactory struct {
	meter  metric.Meter
	prefix string
}

func NewFactory(meterName, prefix string) *MetricFactory {
	return &MetricFactory{
		meter:  otel.Meter(meterName),
		prefix: prefix,
	}
}

func (f *MetricFactory) name(suffix string) string {
	if f.prefix == "" {
		return suffix
	}
	return f.prefix + "." + suffix
}

// must panics on instrument errors; they only come from invalid names.
func must[T any](kind, name string, inst T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("failed to create %s %s: %v", kind, name, err))
	}
	return inst
}

func (f *MetricFactory) Int64Counter(target *metric.Int64Counter, name string, options ...metric.Int64CounterOption) {
	fullName := f.name(name)
	inst, err := f.meter.Int64Counter(fullName, options...)
	*target = must("counter", fullName, inst, err)
}

func (f *MetricFactory) Int64UpDownCounter(target *metric.Int64UpDownCounter, name string, options ...metric.Int64UpDownCounterOption) {
	fullName := f.name(name)
	inst, err := f.meter.Int64UpDownCounter(fullName, options...)
	*target = must("up-down counter", fullName, inst, err)
}

func (f *MetricFactory) Float64Histogram(target *metric.Float64Histogram, name string, options ...metric.Float64HistogramOption) {
	fullName := f.name(name)
	inst, err := f.meter.Float64Histogram(fullName, options...)
	*target = must("histogram", fullName, inst, err)
}
