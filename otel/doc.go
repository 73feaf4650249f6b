// Package otel provides OpenTelemetry integration for rankedcache metrics.
//
// # Overview
//
// This package implements the rankedcache.MetricsCollector interface using
// OpenTelemetry, enabling automatic percentile calculation and multi-backend
// export (Prometheus, Jaeger, DataDog, Grafana).
//
// It is a separate module so the rankedcache core stays free of OTEL
// dependencies. Applications that don't need metrics don't pay for them.
//
// # Quick Start
//
//	import (
//	    "github.com/aerolith/rankedcache"
//	    rankedcacheotel "github.com/aerolith/rankedcache/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, err := prometheus.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := rankedcacheotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	factory, err := rankedcache.NewFactory[Document, string, uint64](
//	    rankedcache.HitCountRanker,
//	    rankedcache.FactoryConfig{
//	        MaxSize:          10_000,
//	        MetricsCollector: collector,
//	    },
//	)
//
// # Metrics Exposed
//
// Histograms (with automatic percentiles):
//   - rankedcache_get_or_add_latency_ns: end-to-end GetOrAdd latency
//   - rankedcache_compute_duration_ns: time spent inside the memoized function itself
//
// Counters:
//   - rankedcache_hits_total / rankedcache_misses_total
//   - rankedcache_evictions_total: ranked evictions (age-shield + rank sort) and TrimBy removals
//   - rankedcache_stale_removals_total: entries reclaimed because their weak key could no
//     longer be upgraded (the GC collected the key before a ranked eviction would have)
//
// # Configuration
//
// Custom meter name, useful when distinguishing metrics from multiple cache instances:
//
//	collector, err := rankedcacheotel.NewOTelMetricsCollector(
//	    provider,
//	    rankedcacheotel.WithMeterName("documents_cache"),
//	)
//
// # Prometheus Queries
//
// Hit ratio:
//
//	rate(rankedcache_hits_total[5m]) /
//	(rate(rankedcache_hits_total[5m]) + rate(rankedcache_misses_total[5m]))
//
// P99 GetOrAdd latency:
//
//	histogram_quantile(0.99, rate(rankedcache_get_or_add_latency_ns_bucket[5m]))
//
// Stale-removal rate versus ranked-eviction rate (a high ratio of stale removals to
// evictions suggests MaxSize is larger than necessary for the working set's actual
// lifetime):
//
//	rate(rankedcache_stale_removals_total[5m]) / rate(rankedcache_evictions_total[5m])
//
// # Thread Safety
//
// All methods are safe for concurrent use; the underlying OTEL instruments handle
// their own synchronization.
//
// # License
//
// Same as rankedcache core (see LICENSE in main repository).
package otel
