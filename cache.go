// cache.go: RankedCache, the memoization cache orchestrator
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import (
	"sort"
	"sync"
	"sync/atomic"
	"weak"
)

// RankedCache memoizes a function K -> V, evicting by a caller-supplied
// ranking metric once it grows past MaxSize, and never charging eviction
// budget to entries whose key has simply become unreachable.
//
// Concurrency is a single conceptual reader-writer lock per instance in
// "upgradeable-read" mode. Go's sync.RWMutex has no true upgrade path
// (RLock -> Lock without first unlocking would deadlock), so GetOrAdd
// (hit and miss alike) and the TrimBy methods hold rw.RLock, every
// mutation of the entry set (install on a miss, trim, TrimBy, Clear) is
// serialized by a dedicated writerMu, and only Clear and Dispose take
// rw.Lock (Dispose via TryLock) -- the standard fallback for simulating a
// three-mode lock on top of a primitive that only has two.
type RankedCache[T any, V any, M Ordered] struct {
	ranker      Ranker[M]
	maxSize     int
	ageShield   atomic.Int64 // floor(MaxSize * AgeThreshold), at least 1; hot-reloadable
	descending  atomic.Bool  // hot-reloadable, see hot-reload.go
	cacheErrors bool
	clock       Clock
	logger      Logger
	metrics     MetricsCollector

	compute func(*T) (V, error)

	weakMap *weakKeyMap[T, V]
	entries *entrySet[T, V]
	seq     atomic.Uint64

	rw       sync.RWMutex
	writerMu sync.Mutex

	disposed atomic.Bool

	hits          atomic.Uint64
	misses        atomic.Uint64
	evictions     atomic.Uint64
	staleRemovals atomic.Uint64
}

func newRankedCache[T any, V any, M Ordered](ranker Ranker[M], cfg FactoryConfig, compute func(*T) (V, error), opts CacheOptions) *RankedCache[T, V, M] {
	c := &RankedCache[T, V, M]{
		ranker:      ranker,
		maxSize:     cfg.MaxSize,
		cacheErrors: opts.CacheErrors,
		clock:       cfg.Clock,
		logger:      cfg.Logger,
		metrics:     cfg.MetricsCollector,
		compute:     compute,
		weakMap:     newWeakKeyMap[T, V](),
		entries:     newEntrySet[T, V](),
	}
	c.ageShield.Store(shieldSize(cfg.MaxSize, cfg.AgeThreshold))
	c.descending.Store(cfg.Descending)
	return c
}

// shieldSize computes max(1, floor(maxSize * ageThreshold)).
func shieldSize(maxSize int, ageThreshold float64) int64 {
	shield := int64(float64(maxSize) * ageThreshold)
	if shield < 1 {
		shield = 1
	}
	return shield
}

// SetAgeThreshold updates the fraction of capacity, counted from the oldest
// entries, that each ranked eviction pass considers.
// Safe to call concurrently with GetOrAdd/trim; takes effect on the next
// trim. See hot-reload.go, which limits dynamic reload to this and
// Descending and requires reconstruction for capacity changes.
func (c *RankedCache[T, V, M]) SetAgeThreshold(ageThreshold float64) {
	c.ageShield.Store(shieldSize(c.maxSize, ageThreshold))
}

// SetDescending updates the eviction ranking direction. Safe to call
// concurrently; takes effect on the next trim.
func (c *RankedCache[T, V, M]) SetDescending(descending bool) {
	c.descending.Store(descending)
}

// GetOrAdd returns the memoized value for k, computing and caching it on a
// miss. Takes the upgradeable-read lock for the whole call, with produce
// (which runs compute and trim) invoked by weakKeyMap outside its own
// internal lock.
func (c *RankedCache[T, V, M]) GetOrAdd(k *T) (V, error) {
	var zero V
	if c.disposed.Load() {
		return zero, NewErrDisposed("GetOrAdd")
	}

	c.rw.RLock()
	defer c.rw.RUnlock()

	t0 := c.clock.Now()
	hit := true

	entry, err := c.weakMap.getOrAdd(k, func(k *T) (*Entry[T, V], error) {
		hit = false
		c.trim()

		t1 := c.clock.Now()
		v, cerr := c.invoke(k)
		invokeDuration := Elapsed(c.clock, t1, c.clock.Now())

		var oc outcome[V]
		if cerr == nil {
			oc = outcome[V]{value: v}
		} else if c.cacheErrors {
			oc = outcome[V]{err: NewErrComputationFailed(cerr), isErr: true}
		} else {
			c.metrics.RecordCompute(int64(invokeDuration), false)
			return nil, cerr
		}
		c.metrics.RecordCompute(int64(invokeDuration), cerr == nil)

		ent := &Entry[T, V]{
			addr:    keyAddr(k),
			weakKey: weak.Make(k),
			outcome: oc,
			stats:   newEntryStats(c.clock.AccessNow(), invokeDuration, c.seq.Add(1)),
		}

		c.writerMu.Lock()
		c.entries.add(ent.addr, ent)
		c.writerMu.Unlock()

		return ent, nil
	})

	latency := Elapsed(c.clock, t0, c.clock.Now())
	if err != nil {
		c.metrics.RecordGetOrAdd(int64(latency), false)
		c.misses.Add(1)
		return zero, err
	}

	if hit {
		entry.stats.recordHit(latency, c.clock.AccessNow())
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	c.metrics.RecordGetOrAdd(int64(latency), hit)

	if v, ok := entry.Value(); ok {
		return v, nil
	}
	e, _ := entry.Err()
	return zero, e
}

func (c *RankedCache[T, V, M]) invoke(k *T) (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewErrPanicRecovered(r)
		}
	}()
	return c.compute(k)
}

// trim runs a dirty-read fast path, then (if over budget) a stale-key
// sweep followed by the age-shielded ranked eviction, which continues
// until the entry count is below MaxSize or no live record is left. writerMu
// serializes this against every other mutating path (GetOrAdd's install,
// Clear); concurrent readers proceed unaffected since trim never takes
// c.rw itself.
func (c *RankedCache[T, V, M]) trim() {
	if c.entries.count() < c.maxSize {
		return
	}

	c.writerMu.Lock()
	defer c.writerMu.Unlock()

	if c.entries.count() < c.maxSize {
		return
	}

	records := c.entries.snapshot()

	// Stale sweep runs first: a stale removal must never count against
	// eviction budget, so it must never be reachable *through* a
	// ranked-eviction decision. Sweeping it first means the subsequent
	// budget check already reflects whatever capacity the sweep alone
	// freed, and a live entry is only ever evicted when stale removal
	// wasn't enough.
	live := make([]*entryRecord[T, V], 0, len(records))
	for _, rec := range records {
		if _, ok := rec.entry.Key(); ok {
			live = append(live, rec)
			continue
		}
		c.weakMap.removeStale(rec.addr)
		c.entries.remove(rec.addr)
		c.staleRemovals.Add(1)
		c.metrics.RecordStaleRemoval()
	}

	// Each pass ranks the oldest window of the remaining live records; a
	// younger window is only reached once every older candidate is gone.
	for len(live) > 0 && c.entries.count() >= c.maxSize {
		victims := c.selectVictims(live)
		live = live[len(victims):]
		for _, rec := range victims {
			if c.entries.count() < c.maxSize {
				break
			}
			if k, ok := rec.entry.Key(); ok {
				c.weakMap.remove(rec.addr, k)
			}
			c.entries.remove(rec.addr)
			c.evictions.Add(1)
			c.metrics.RecordEviction()
		}
	}
}

// selectVictims computes the eviction candidate set over the already-live
// records passed in: the oldest max(1, floor(MaxSize * AgeThreshold))
// entries, ranked by the configured metric.
func (c *RankedCache[T, V, M]) selectVictims(live []*entryRecord[T, V]) []*entryRecord[T, V] {
	shield := int(c.ageShield.Load())
	if shield > len(live) {
		shield = len(live)
	}
	descending := c.descending.Load()
	// live is already in creation (insertion) order, oldest first.
	candidates := append([]*entryRecord[T, V]{}, live[:shield]...)

	sort.SliceStable(candidates, func(i, j int) bool {
		mi, mj := c.ranker(candidates[i].entry.stats), c.ranker(candidates[j].entry.stats)
		if mi != mj {
			if descending {
				return mi > mj
			}
			return mi < mj
		}
		return candidates[i].entry.stats.seq < candidates[j].entry.stats.seq
	})

	return candidates
}

// Count returns the current number of live entries. May be approximate
// under concurrent mutation.
func (c *RankedCache[T, V, M]) Count() int {
	return c.entries.count()
}

// Stats returns a snapshot of cache-wide counters.
func (c *RankedCache[T, V, M]) Stats() CacheStats {
	return CacheStats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Evictions:     c.evictions.Load(),
		StaleRemovals: c.staleRemovals.Load(),
		Size:          c.entries.count(),
		Capacity:      c.maxSize,
	}
}

// Clear empties the cache: every live key's mapping is removed from the
// weak-key map, then the entry set is emptied wholesale. Debug counters
// are reset.
func (c *RankedCache[T, V, M]) Clear() error {
	if c.disposed.Load() {
		return NewErrDisposed("Clear")
	}
	c.rw.Lock()
	defer c.rw.Unlock()
	c.writerMu.Lock()
	defer c.writerMu.Unlock()

	for _, rec := range c.entries.snapshot() {
		if k, ok := rec.entry.Key(); ok {
			c.weakMap.remove(rec.addr, k)
		}
	}
	c.entries.clear()
	c.weakMap.clear()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.staleRemovals.Store(0)
	return nil
}

// Dispose releases the cache. It fails with LockContention (retryable)
// rather than blocking if a concurrent operation holds the lock.
func (c *RankedCache[T, V, M]) Dispose() error {
	if c.disposed.Load() {
		return nil
	}
	if !c.rw.TryLock() {
		return NewErrLockContention()
	}
	defer c.rw.Unlock()

	c.disposed.Store(true)
	c.logger.Info("rankedcache: cache disposed")
	return nil
}
