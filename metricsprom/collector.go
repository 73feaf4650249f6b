// Package metricsprom provides a Prometheus-backed rankedcache.MetricsCollector.
//
// This package is a thin abstraction over client_golang, kept in its own
// module so the rankedcache core does not carry a hard Prometheus dependency.
// Metrics are registered once at construction; the hot path only touches
// already-created counter/histogram instances.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package metricsprom

import (
	"github.com/aerolith/rankedcache"
	"github.com/prometheus/client_golang/prometheus"
)

// PromMetricsCollector implements rankedcache.MetricsCollector using
// Prometheus counters and histograms. One instance should back one cache;
// label it by name via WithNamespace/WithSubsystem when multiple caches
// share a registry.
type PromMetricsCollector struct {
	getOrAddLatency prometheus.Histogram
	computeDuration prometheus.Histogram
	hits            prometheus.Counter
	misses          prometheus.Counter
	evictions       prometheus.Counter
	staleRemovals   prometheus.Counter
}

// Options configures PromMetricsCollector.
type Options struct {
	Namespace string
	Subsystem string
}

// Option is a functional option for NewPromMetricsCollector.
type Option func(*Options)

// WithNamespace sets the Prometheus metric namespace. Default: "rankedcache".
func WithNamespace(ns string) Option {
	return func(o *Options) { o.Namespace = ns }
}

// WithSubsystem sets the Prometheus metric subsystem, useful to distinguish
// multiple cache instances registered on the same registry.
func WithSubsystem(sub string) Option {
	return func(o *Options) { o.Subsystem = sub }
}

// NewPromMetricsCollector creates a collector and registers its metrics on
// reg. Returns an error if reg is nil or a metric with a colliding name is
// already registered.
func NewPromMetricsCollector(reg prometheus.Registerer, opts ...Option) (*PromMetricsCollector, error) {
	if reg == nil {
		return nil, rankedcache.NewErrNilSink()
	}

	options := Options{Namespace: "rankedcache"}
	for _, opt := range opts {
		opt(&options)
	}

	c := &PromMetricsCollector{
		getOrAddLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: options.Namespace,
			Subsystem: options.Subsystem,
			Name:      "get_or_add_latency_ns",
			Help:      "Latency of GetOrAdd calls in nanoseconds.",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 16),
		}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: options.Namespace,
			Subsystem: options.Subsystem,
			Name:      "compute_duration_ns",
			Help:      "Duration of the memoized function's own invocation in nanoseconds.",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 16),
		}),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: options.Namespace,
			Subsystem: options.Subsystem,
			Name:      "hits_total",
			Help:      "Number of GetOrAdd calls satisfied by an existing entry.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: options.Namespace,
			Subsystem: options.Subsystem,
			Name:      "misses_total",
			Help:      "Number of GetOrAdd calls that invoked the memoized function.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: options.Namespace,
			Subsystem: options.Subsystem,
			Name:      "evictions_total",
			Help:      "Number of entries removed by ranked eviction or a TrimBy predicate.",
		}),
		staleRemovals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: options.Namespace,
			Subsystem: options.Subsystem,
			Name:      "stale_removals_total",
			Help:      "Number of entries removed because their weak key no longer upgraded.",
		}),
	}

	collectors := []prometheus.Collector{
		c.getOrAddLatency, c.computeDuration, c.hits, c.misses, c.evictions, c.staleRemovals,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RecordGetOrAdd implements rankedcache.MetricsCollector.
func (c *PromMetricsCollector) RecordGetOrAdd(latency int64, hit bool) {
	c.getOrAddLatency.Observe(float64(latency))
	if hit {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
}

// RecordCompute implements rankedcache.MetricsCollector.
func (c *PromMetricsCollector) RecordCompute(duration int64, ok bool) {
	c.computeDuration.Observe(float64(duration))
}

// RecordEviction implements rankedcache.MetricsCollector.
func (c *PromMetricsCollector) RecordEviction() {
	c.evictions.Inc()
}

// RecordStaleRemoval implements rankedcache.MetricsCollector.
func (c *PromMetricsCollector) RecordStaleRemoval() {
	c.staleRemovals.Inc()
}

var _ rankedcache.MetricsCollector = (*PromMetricsCollector)(nil)
