// SPDX-License-Identifier: MIT

// Package array: functional configuration for views.
// This file defines:
//   - Option (functional options over an unexported config),
//   - documented defaults,
//   - WithX constructors that panic only on nonsensical values,
//   - gatherOptions, which resolves options into a config.
//
// A config is attached to the storage when it is allocated; every view
// derived from that storage (slices, smart copies, clones) inherits it.
package array

import (
	"log/slog"

	"github.com/hashicorp/go-metrics"
)

// ---------- Internal panic messages ----------

const (
	panicNilLogger = "array: WithLogger: logger must not be nil"
	panicNilSink   = "array: WithMetricSink: sink must not be nil"
)

// Option mutates the view configuration.
type Option func(*config)

// config holds the ambient collaborators of a storage buffer.
type config struct {
	logger *slog.Logger       // default slog.Default()
	sink   metrics.MetricSink // default metrics.Default()
	labels []metrics.Label    // static labels added to every metric
}

// WithLogger routes debug records (storage free, reallocation) to logger.
// Panics on a nil logger.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic(panicNilLogger)
	}

	return func(c *config) { c.logger = logger }
}

// WithMetricSink sends allocation/free/copy counters to sink.
// Panics on a nil sink.
func WithMetricSink(sink metrics.MetricSink) Option {
	if sink == nil {
		panic(panicNilSink)
	}

	return func(c *config) { c.sink = sink }
}

// WithMetricLabels adds static labels to every metric emitted for the
// storage.
func WithMetricLabels(labels ...metrics.Label) Option {
	cp := append([]metrics.Label(nil), labels...)

	return func(c *config) { c.labels = append(c.labels, cp...) }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.sink == nil {
		c.sink = metrics.Default()
	}

	return c
}
