// Package otel provides OpenTelemetry integration for rankedcache metrics.
//
// This package implements the rankedcache.MetricsCollector interface using
// OpenTelemetry, enabling automatic percentile calculation (p50, p95, p99)
// and multi-backend export (Prometheus, Jaeger, DataDog, Grafana).
//
// # Usage
//
//	import (
//	    "github.com/aerolith/rankedcache"
//	    rankedcacheotel "github.com/aerolith/rankedcache/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//
//	collector, _ := rankedcacheotel.NewOTelMetricsCollector(provider)
//
//	cfg := rankedcache.FactoryConfig{
//	    MaxSize:          10_000,
//	    MetricsCollector: collector,
//	}
//
// # Metrics Exposed
//
//   - rankedcache_get_or_add_latency_ns: Histogram of GetOrAdd latencies
//   - rankedcache_compute_duration_ns: Histogram of the memoized function's own runtime
//   - rankedcache_hits_total / rankedcache_misses_total: Counters
//   - rankedcache_evictions_total: Counter of ranked and TrimBy evictions
//   - rankedcache_stale_removals_total: Counter of weak-key reclamations
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/aerolith/rankedcache"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements rankedcache.MetricsCollector using
// OpenTelemetry. Thread-safe; the underlying OTEL instruments are
// themselves safe for concurrent use.
type OTelMetricsCollector struct {
	getOrAddLatency metric.Int64Histogram
	computeDuration metric.Int64Histogram
	hits            metric.Int64Counter
	misses          metric.Int64Counter
	evictions       metric.Int64Counter
	staleRemovals   metric.Int64Counter
}

// Options configures OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/aerolith/rankedcache"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful when distinguishing
// metrics from multiple cache instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates a collector backed by provider. Returns
// an error if provider is nil or instrument creation fails.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/aerolith/rankedcache"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	collector := &OTelMetricsCollector{}

	var err error
	collector.getOrAddLatency, err = meter.Int64Histogram(
		"rankedcache_get_or_add_latency_ns",
		metric.WithDescription("Latency of GetOrAdd calls in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.computeDuration, err = meter.Int64Histogram(
		"rankedcache_compute_duration_ns",
		metric.WithDescription("Duration of the memoized function's own invocation in nanoseconds"),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, err
	}

	collector.hits, err = meter.Int64Counter(
		"rankedcache_hits_total",
		metric.WithDescription("Total number of GetOrAdd calls satisfied by an existing entry"),
	)
	if err != nil {
		return nil, err
	}

	collector.misses, err = meter.Int64Counter(
		"rankedcache_misses_total",
		metric.WithDescription("Total number of GetOrAdd calls that invoked the memoized function"),
	)
	if err != nil {
		return nil, err
	}

	collector.evictions, err = meter.Int64Counter(
		"rankedcache_evictions_total",
		metric.WithDescription("Total number of entries removed by ranked eviction or a TrimBy predicate"),
	)
	if err != nil {
		return nil, err
	}

	collector.staleRemovals, err = meter.Int64Counter(
		"rankedcache_stale_removals_total",
		metric.WithDescription("Total number of entries removed because their weak key no longer upgraded"),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// RecordGetOrAdd implements rankedcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordGetOrAdd(latency int64, hit bool) {
	ctx := context.Background()
	c.getOrAddLatency.Record(ctx, latency)
	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordCompute implements rankedcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordCompute(duration int64, ok bool) {
	c.computeDuration.Record(context.Background(), duration)
}

// RecordEviction implements rankedcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordEviction() {
	c.evictions.Add(context.Background(), 1)
}

// RecordStaleRemoval implements rankedcache.MetricsCollector.
func (c *OTelMetricsCollector) RecordStaleRemoval() {
	c.staleRemovals.Add(context.Background(), 1)
}

var _ rankedcache.MetricsCollector = (*OTelMetricsCollector)(nil)
