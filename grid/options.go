// SPDX-License-Identifier: MIT

// Package grid: functional configuration for grids.
//
// Defaults:
//   - engine: a no-op engine (the grid only validates and records).
//   - logger: slog.Default().
//   - sink:   metrics.Default().
package grid

import (
	"log/slog"

	"github.com/hashicorp/go-metrics"
)

const (
	panicNilEngine = "grid: WithEngine: engine must not be nil"
	panicNilLogger = "grid: WithLogger: logger must not be nil"
	panicNilSink   = "grid: WithMetricSink: sink must not be nil"
)

// Option configures a Grid at Create.
type Option func(*options)

type options struct {
	engine Engine
	logger *slog.Logger
	sink   metrics.MetricSink
	labels []metrics.Label
}

// WithEngine forwards every validated call to e. Panics on nil.
func WithEngine(e Engine) Option {
	if e == nil {
		panic(panicNilEngine)
	}

	return func(o *options) { o.engine = e }
}

// WithLogger routes grid lifecycle records to logger. Panics on nil.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic(panicNilLogger)
	}

	return func(o *options) { o.logger = logger }
}

// WithMetricSink sends call, assemble and destroy counters to sink.
// Panics on nil.
func WithMetricSink(sink metrics.MetricSink) Option {
	if sink == nil {
		panic(panicNilSink)
	}

	return func(o *options) { o.sink = sink }
}

// WithMetricLabels adds static labels to every grid metric.
func WithMetricLabels(labels ...metrics.Label) Option {
	cp := append([]metrics.Label(nil), labels...)

	return func(o *options) { o.labels = append(o.labels, cp...) }
}

func gatherOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.engine == nil {
		o.engine = EngineFunc(func(*Call) error { return nil })
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.sink == nil {
		o.sink = metrics.Default()
	}

	return o
}
