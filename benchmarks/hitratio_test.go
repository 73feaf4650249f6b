// hitratio_test.go: hit-ratio characterization for RankedCache under
// Zipf-skewed access, across rankers and age thresholds.
//
// Averages several runs per configuration to smooth out the variance
// inherent in a randomized Zipf-skewed access pattern; these are a
// characterization of how the age shield trades off against hit ratio
// across rankers, not a correctness check.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package benchmarks

import (
	"testing"

	"github.com/aerolith/rankedcache"
)

func runHitRatio(cache *rankedcache.RankedCache[benchKey, string, uint64], pool *keyPool, s float64, keySpace int, requests int) (hits, total int) {
	zipf := newZipfGenerator(s, 1.0, uint64(keySpace-1))
	before := cache.Stats()
	for i := 0; i < requests; i++ {
		cache.GetOrAdd(pool.get(zipf.Next()))
	}
	after := cache.Stats()
	h, m := int(after.Hits-before.Hits), int(after.Misses-before.Misses)
	return h, h + m
}

// TestHitRatioExtended averages hit ratio over several independent runs
// for each built-in ranker, at the default age threshold.
func TestHitRatioExtended(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping extended hit ratio test in short mode")
	}

	const runs = 10
	const requestsPerRun = 100_000

	rankers := []struct {
		name   string
		ranker rankedcache.Ranker[uint64]
	}{
		{"HitCount", rankedcache.HitCountRanker},
		{"LastAccess", func(s *rankedcache.EntryStats) uint64 { return uint64(rankedcache.LastAccessRanker(s)) }},
	}

	for _, r := range rankers {
		totalHits, totalRequests := 0, 0
		for run := 0; run < runs; run++ {
			factory, err := rankedcache.NewFactory[benchKey, string, uint64](r.ranker, rankedcache.FactoryConfig{
				MaxSize:      mediumCacheSize,
				AgeThreshold: rankedcache.DefaultAgeThreshold,
			})
			if err != nil {
				t.Fatalf("NewFactory: %v", err)
			}
			cache, err := factory.CreateCache(func(k *benchKey) (string, error) {
				return "", nil
			}, rankedcache.CacheOptions{})
			if err != nil {
				t.Fatalf("CreateCache: %v", err)
			}
			pool := newKeyPool(mediumKeySpace)

			// Warmup
			warmup := newZipfGenerator(1.0, 1.0, mediumKeySpace-1)
			for i := 0; i < mediumKeySpace; i++ {
				cache.GetOrAdd(pool.get(warmup.Next()))
			}

			hits, reqs := runHitRatio(cache, pool, 1.0, mediumKeySpace, requestsPerRun)
			totalHits += hits
			totalRequests += reqs
		}

		avgHitRatio := float64(totalHits) / float64(totalRequests) * 100
		t.Logf("%s ranker average hit ratio (%d runs): %.2f%% (total hits: %d/%d)",
			r.name, runs, avgHitRatio, totalHits, totalRequests)
	}
}

// TestHitRatioAgeThresholds shows how the age window trades off against
// hit ratio under a fixed Zipf skew: a larger AgeThreshold makes more of
// the oldest entries rankable and leaves fewer young entries immune to
// eviction, which can change the ratio once the key space exceeds
// capacity.
func TestHitRatioAgeThresholds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping age-threshold hit ratio test in short mode")
	}

	thresholds := []float64{0.1, 0.25, 0.5, 0.9}
	const requests = 100_000

	for _, threshold := range thresholds {
		factory, err := rankedcache.NewFactory[benchKey, string, uint64](rankedcache.HitCountRanker, rankedcache.FactoryConfig{
			MaxSize:      mediumCacheSize,
			AgeThreshold: threshold,
		})
		if err != nil {
			t.Fatalf("NewFactory: %v", err)
		}
		cache, err := factory.CreateCache(func(k *benchKey) (string, error) {
			return "", nil
		}, rankedcache.CacheOptions{})
		if err != nil {
			t.Fatalf("CreateCache: %v", err)
		}
		pool := newKeyPool(largeKeySpace)

		warmup := newZipfGenerator(1.0, 1.0, largeKeySpace-1)
		for i := 0; i < largeKeySpace; i++ {
			cache.GetOrAdd(pool.get(warmup.Next()))
		}

		hits, reqs := runHitRatio(cache, pool, 1.0, largeKeySpace, requests)
		hitRatio := float64(hits) / float64(reqs) * 100
		t.Logf("age_threshold=%.2f: %.2f%% (hits: %d/%d)", threshold, hitRatio, hits, reqs)
	}
}

// TestHitRatioDifferentWorkloads shows hit ratio sensitivity to Zipf
// skew at a fixed cache shape.
func TestHitRatioDifferentWorkloads(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping workload hit ratio test in short mode")
	}

	workloads := []struct {
		name     string
		s        float64
		keySpace int
	}{
		{"Highly Skewed (s=1.5)", 1.5, mediumKeySpace},
		{"Moderate (s=1.0, clamped to 1.01)", 1.0, mediumKeySpace},
		{"Less Skewed (s=1.01)", 1.01, mediumKeySpace},
		{"Large KeySpace", 1.0, largeKeySpace},
	}

	for _, wl := range workloads {
		factory, err := rankedcache.NewFactory[benchKey, string, uint64](rankedcache.HitCountRanker, rankedcache.FactoryConfig{
			MaxSize:      mediumCacheSize,
			AgeThreshold: rankedcache.DefaultAgeThreshold,
		})
		if err != nil {
			t.Fatalf("NewFactory: %v", err)
		}
		cache, err := factory.CreateCache(func(k *benchKey) (string, error) {
			return "", nil
		}, rankedcache.CacheOptions{})
		if err != nil {
			t.Fatalf("CreateCache: %v", err)
		}
		pool := newKeyPool(uint64(wl.keySpace))

		warmup := newZipfGenerator(wl.s, 1.0, uint64(wl.keySpace-1))
		for i := 0; i < wl.keySpace/2; i++ {
			cache.GetOrAdd(pool.get(warmup.Next()))
		}

		hits, reqs := runHitRatio(cache, pool, wl.s, wl.keySpace, 100_000)
		hitRatio := float64(hits) / float64(reqs) * 100
		t.Logf("%s: %.2f%% (hits: %d/%d)", wl.name, hitRatio, hits, reqs)
	}
}
