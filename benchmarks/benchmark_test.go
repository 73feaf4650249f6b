// benchmark_test.go: throughput benchmarks for RankedCache.GetOrAdd under
// Zipf-distributed key access, in a separate module so these benchmarks'
// dependencies never leak into the core package's go.sum.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package benchmarks

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/aerolith/rankedcache"
)

const (
	smallCacheSize  = 1_000
	mediumCacheSize = 10_000
	largeCacheSize  = 100_000

	smallKeySpace  = 100
	mediumKeySpace = 1_000
	largeKeySpace  = 10_000
)

// benchKey is the reference-identity key type used throughout these
// benchmarks. Its numeric ID lets callers generate a Zipf-distributed
// access pattern over a bounded key space while still satisfying
// rankedcache's "same key == same pointer" identity requirement.
type benchKey struct {
	id uint64
}

// keyPool hands back the same *benchKey for a given numeric ID every time,
// simulating the long-lived-object identity a real caller (e.g. a parsed
// AST node) would have across repeated lookups.
type keyPool struct {
	keys []*benchKey
}

func newKeyPool(n uint64) *keyPool {
	p := &keyPool{keys: make([]*benchKey, n)}
	for i := range p.keys {
		p.keys[i] = &benchKey{id: uint64(i)}
	}
	return p
}

func (p *keyPool) get(id uint64) *benchKey {
	return p.keys[id%uint64(len(p.keys))]
}

// zipfGenerator generates key indices following a Zipf distribution,
// simulating realistic access patterns where some entries are far more
// popular than others.
type zipfGenerator struct {
	zipf *rand.Zipf
}

func newZipfGenerator(s, v float64, imax uint64) *zipfGenerator {
	if imax < 1 {
		imax = 1
	}
	if s <= 1.0 {
		s = 1.01
	}
	if v < 1.0 {
		v = 1.0
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	zipf := rand.NewZipf(r, s, v, imax)
	if zipf == nil {
		panic(fmt.Sprintf("failed to create Zipf generator: s=%f, v=%f, imax=%d", s, v, imax))
	}
	return &zipfGenerator{zipf: zipf}
}

func (z *zipfGenerator) Next() uint64 {
	return z.zipf.Uint64()
}

func newBenchCache(maxSize int, ageThreshold float64, slowCompute time.Duration) *rankedcache.RankedCache[benchKey, string, uint64] {
	factory, err := rankedcache.NewFactory[benchKey, string, uint64](rankedcache.HitCountRanker, rankedcache.FactoryConfig{
		MaxSize:      maxSize,
		AgeThreshold: ageThreshold,
	})
	if err != nil {
		panic(err)
	}
	cache, err := factory.CreateCache(func(k *benchKey) (string, error) {
		if slowCompute > 0 {
			time.Sleep(slowCompute)
		}
		return strconv.FormatUint(k.id, 10), nil
	}, rankedcache.CacheOptions{})
	if err != nil {
		panic(err)
	}
	return cache
}

// =============================================================================
// SINGLE-THREADED GETORADD THROUGHPUT
// =============================================================================

func BenchmarkGetOrAdd_SingleThread(b *testing.B) {
	pool := newKeyPool(mediumKeySpace)
	cache := newBenchCache(mediumCacheSize, rankedcache.DefaultAgeThreshold, 0)
	zipf := newZipfGenerator(1.0, 1.0, mediumKeySpace-1)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache.GetOrAdd(pool.get(zipf.Next()))
	}
}

func BenchmarkGetOrAdd_Parallel(b *testing.B) {
	pool := newKeyPool(mediumKeySpace)
	cache := newBenchCache(mediumCacheSize, rankedcache.DefaultAgeThreshold, 0)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		zipf := newZipfGenerator(1.0, 1.0, mediumKeySpace-1)
		for pb.Next() {
			cache.GetOrAdd(pool.get(zipf.Next()))
		}
	})
}

// BenchmarkGetOrAdd_AllMisses forces every call to be a miss (key space
// equal to b.N's working set) to isolate compute-and-install cost from
// the singleflight/lookup hit path.
func BenchmarkGetOrAdd_AllMisses(b *testing.B) {
	cache := newBenchCache(largeCacheSize, rankedcache.DefaultAgeThreshold, 0)
	keys := make([]*benchKey, b.N)
	for i := range keys {
		keys[i] = &benchKey{id: uint64(i)}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache.GetOrAdd(keys[i])
	}
}

// BenchmarkGetOrAdd_AllHits pre-populates every key once, then measures
// the pure hit path (singleflight-free lookup + stats update).
func BenchmarkGetOrAdd_AllHits(b *testing.B) {
	cache := newBenchCache(mediumCacheSize, rankedcache.DefaultAgeThreshold, 0)
	pool := newKeyPool(mediumKeySpace)
	for i := 0; i < mediumKeySpace; i++ {
		cache.GetOrAdd(pool.get(uint64(i)))
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache.GetOrAdd(pool.get(uint64(i % mediumKeySpace)))
	}
}

// BenchmarkGetOrAdd_EvictionPressure keeps the cache permanently at
// capacity so every GetOrAdd miss forces trim() to run its full ranked
// eviction body instead of the dirty-read fast path.
func BenchmarkGetOrAdd_EvictionPressure(b *testing.B) {
	cache := newBenchCache(smallCacheSize, 0.25, 0)
	pool := newKeyPool(smallCacheSize * 4)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache.GetOrAdd(pool.get(uint64(i)))
	}
}

// =============================================================================
// CACHE SIZE VARIANTS
// =============================================================================

func BenchmarkGetOrAdd_Small_Mixed(b *testing.B) {
	pool := newKeyPool(smallKeySpace)
	cache := newBenchCache(smallCacheSize, rankedcache.DefaultAgeThreshold, 0)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		zipf := newZipfGenerator(1.0, 1.0, smallKeySpace-1)
		for pb.Next() {
			cache.GetOrAdd(pool.get(zipf.Next()))
		}
	})
}

func BenchmarkGetOrAdd_Large_Mixed(b *testing.B) {
	pool := newKeyPool(largeKeySpace)
	cache := newBenchCache(largeCacheSize, rankedcache.DefaultAgeThreshold, 0)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		zipf := newZipfGenerator(1.0, 1.0, largeKeySpace-1)
		for pb.Next() {
			cache.GetOrAdd(pool.get(zipf.Next()))
		}
	})
}

// =============================================================================
// TRIMBY THROUGHPUT
// =============================================================================

func BenchmarkTrimByStats_NoOp(b *testing.B) {
	cache := newBenchCache(mediumCacheSize, rankedcache.DefaultAgeThreshold, 0)
	pool := newKeyPool(mediumKeySpace)
	for i := 0; i < mediumKeySpace; i++ {
		cache.GetOrAdd(pool.get(uint64(i)))
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache.TrimByStats(func(k *benchKey, stats *rankedcache.EntryStats) bool {
			return false
		})
	}
}
