// main.go: package main - demonstrates rankedcache's weak-keyed memoization
// and ranked eviction from the command line.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	flashflags "github.com/agilira/flash-flags"
	"github.com/aerolith/rankedcache"
)

type document struct {
	ID   int
	Body string
}

func main() {
	fs := flashflags.New("rankedcache-demo")
	maxSize := fs.Int("max-size", 4, "maximum number of live entries before ranked eviction kicks in")
	ageThreshold := fs.Float64("age-threshold", 0.5, "fraction of capacity, counted from the oldest entries, that is ranked for eviction")
	descending := fs.Bool("descending", false, "rank by descending metric instead of ascending")
	slowMillis := fs.Int("slow-ms", 20, "artificial compute latency in milliseconds, to make ranking visible")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "parse flags:", err)
		os.Exit(1)
	}

	factory, err := rankedcache.NewFactory[document, string, uint64](
		rankedcache.HitCountRanker,
		rankedcache.FactoryConfig{
			MaxSize:      *maxSize,
			AgeThreshold: *ageThreshold,
			Descending:   *descending,
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "new factory:", err)
		os.Exit(1)
	}

	cache, err := factory.CreateCache(func(d *document) (string, error) {
		time.Sleep(time.Duration(*slowMillis) * time.Millisecond)
		return fmt.Sprintf("rendered(#%d): %s", d.ID, d.Body), nil
	}, rankedcache.CacheOptions{})
	if err != nil {
		fmt.Fprintln(os.Stderr, "create cache:", err)
		os.Exit(1)
	}

	docs := make([]*document, 0, *maxSize+2)
	for i := 0; i < *maxSize+2; i++ {
		docs = append(docs, &document{ID: i, Body: fmt.Sprintf("body-%d", i)})
	}

	fmt.Println("=== rankedcache demo ===")
	fmt.Printf("MaxSize=%d AgeThreshold=%.2f Descending=%v\n\n", *maxSize, *ageThreshold, *descending)

	for _, d := range docs {
		v, err := cache.GetOrAdd(d)
		if err != nil {
			fmt.Fprintln(os.Stderr, "GetOrAdd:", err)
			continue
		}
		fmt.Printf("GetOrAdd(#%d) -> %s\n", d.ID, v)
	}

	// Re-request the first document a few times. It was evicted as the
	// oldest entry while the later documents went in, so the first call
	// recomputes it and the rest are hits that push its hit count up.
	for i := 0; i < 5; i++ {
		cache.GetOrAdd(docs[0])
	}

	stats := cache.Stats()
	fmt.Printf("\nstats: hits=%d misses=%d evictions=%d stale_removals=%d size=%d/%d\n",
		stats.Hits, stats.Misses, stats.Evictions, stats.StaleRemovals, stats.Size, stats.Capacity)

	// Drop the local reference to the most recently inserted document (still
	// live in the cache) and force a GC cycle, then show the weak map
	// reclaiming it on the next trim.
	docs[len(docs)-1] = nil
	for i := 0; i < 5; i++ {
		runtime.GC()
	}
	cache.GetOrAdd(&document{ID: 999, Body: "trigger-trim"})

	stats = cache.Stats()
	fmt.Printf("after GC: stale_removals=%d size=%d/%d\n", stats.StaleRemovals, stats.Size, stats.Capacity)

	if err := cache.Dispose(); err != nil {
		fmt.Fprintln(os.Stderr, "dispose:", err)
	}
}
