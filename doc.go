// Package rankedcache provides a weak-keyed, ranked-eviction memoization
// cache: entries are keyed by reference identity and retained only as long
// as the key itself stays reachable, with eviction driven by a
// caller-supplied ranking function over per-entry statistics rather than a
// fixed policy like LRU or LFU.
//
// # Overview
//
// rankedcache is designed for memoizing pure-ish functions of long-lived
// objects (parsed ASTs, resolved config blocks, request contexts) where:
//
//   - the key's identity, not its structural value, determines cache
//     membership;
//   - the cache must never be the reason a key's memory can't be reclaimed;
//   - eviction should be driven by domain-specific scoring (hit count,
//     recency, accumulated time saved) rather than a one-size-fits-all
//     policy.
//
// # Quick Start
//
//	import "github.com/aerolith/rankedcache"
//
//	factory, err := rankedcache.NewFactory[ast.Node, string, uint64](
//	    rankedcache.HitCountRanker,
//	    rankedcache.FactoryConfig{MaxSize: 10_000},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cache, err := factory.CreateCache(func(n *ast.Node) (string, error) {
//	    return render(n), nil
//	}, rankedcache.CacheOptions{})
//
//	rendered, err := cache.GetOrAdd(node)
//
// Repeated calls with the same *ast.Node return the memoized string without
// re-invoking the render function, until node becomes unreachable or is
// evicted by a trim.
//
// # Weak Keys
//
// Unlike a conventional cache, rankedcache never pins its keys in memory.
// Keys are held via Go 1.24's weak.Pointer, and runtime.AddCleanup drops
// the key's weak-map slot once the key is collected. The entry itself stays
// in the entry set (and in Count) until the next trim or TrimBy sweeps it.
// A stale entry never counts against the eviction budget.
//
// # Ranked Eviction
//
// Eviction is two-stage: an "age shield" ranks only the oldest
// max(1, floor(MaxSize * AgeThreshold)) entries, so younger entries are not
// considered while older candidates remain, and within those candidates
// the configured Ranker picks the lowest-scoring entry (the highest with
// Descending). Built-in rankers cover
// hit count (LFU-like), last access time (LRU-like), and accumulated
// duration saved; callers may supply any Ranker[M] for a totally ordered M.
//
// # Cache Stampede Prevention
//
// GetOrAdd deduplicates concurrent misses for the same key using
// golang.org/x/sync/singleflight, so N concurrent callers for an
// unpopulated key invoke the compute function exactly once:
//
//	value, err := cache.GetOrAdd(key)
//	if rankedcache.IsComputationFailed(err) {
//	    log.Printf("compute failed: %v", err)
//	}
//
// # Selective Trimming
//
// Beyond the automatic ranked eviction, TrimByValue/TrimByOutcome/
// TrimByStats let a caller purge entries matching an arbitrary predicate,
// for example evicting anything idle past a deadline:
//
//	cache.TrimByStats(func(k *ast.Node, stats *rankedcache.EntryStats) bool {
//	    return time.Since(time.Unix(0, stats.LastAccessTime())) > 5*time.Minute
//	})
//
// # Broadcasting
//
// BroadcastSubject offers a single stable producer handle fanning out to
// an evolving set of subscribers, useful for publishing cache-wide events
// (evictions, reloads) without each subscriber polling Stats().
//
// # Observability
//
// Built-in stats tracking:
//
//	stats := cache.Stats()
//	fmt.Printf("Hits: %d, Misses: %d, Hit Ratio: %.2f%%\n",
//	    stats.Hits, stats.Misses, stats.HitRatio())
//
// Enterprise observability with OpenTelemetry or Prometheus (optional,
// separate modules so the core package carries no such dependency):
//
//	import rankedcacheotel "github.com/aerolith/rankedcache/otel"
//
//	collector, _ := rankedcacheotel.NewOTelMetricsCollector(meterProvider)
//	cfg := rankedcache.FactoryConfig{MaxSize: 10_000, MetricsCollector: collector}
//
// # Hot Reload
//
// AgeThreshold and Descending can be tuned at runtime via HotConfig, which
// watches a config file with Argus. MaxSize cannot be changed without
// reconstructing the cache, since it defines the entry set's size
// invariant.
//
// # Error Handling
//
// rankedcache uses structured errors (github.com/agilira/go-errors) with
// error codes:
//
//	if err := cache.Dispose(); rankedcache.IsRetryable(err) {
//	    // LockContention: the cache is in use; Dispose may be retried
//	}
//
//	v, err := cache.GetOrAdd(key)
//	if rankedcache.IsDisposed(err) {
//	    // cache was disposed
//	}
//
// # Packages
//
//   - github.com/aerolith/rankedcache: core cache implementation
//   - github.com/aerolith/rankedcache/otel: OpenTelemetry metrics adapter (separate module)
//   - github.com/aerolith/rankedcache/metricsprom: Prometheus metrics adapter (separate module)
//   - github.com/aerolith/rankedcache/zaplog: zap-backed Logger adapter (separate module)
//   - github.com/aerolith/rankedcache/cmd/rankedcache-demo: CLI demo
//
// # License
//
// See LICENSE file in the repository.
package rankedcache
