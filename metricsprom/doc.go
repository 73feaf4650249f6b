// Package metricsprom provides a Prometheus-backed MetricsCollector for rankedcache.
//
// # Quick Start
//
//	reg := prometheus.NewRegistry()
//	collector, err := metricsprom.NewPromMetricsCollector(reg)
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
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # Metrics Exposed
//
//   - rankedcache_get_or_add_latency_ns (histogram)
//   - rankedcache_compute_duration_ns (histogram)
//   - rankedcache_hits_total / rankedcache_misses_total (counters)
//   - rankedcache_evictions_total (counter)
//   - rankedcache_stale_removals_total (counter)
//
// Use WithNamespace/WithSubsystem to distinguish multiple cache instances
// sharing one registry.
//
// # License
//
// Same as rankedcache core (see LICENSE in main repository).
package metricsprom
