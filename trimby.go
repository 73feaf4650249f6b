// trimby.go: selective purge driven by a caller predicate
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

// TrimByValue evicts every live entry with outcome Value(v) for which
// predicate(k, v) returns true, plus every already-stale entry. Returns
// the number of entries removed.
func (c *RankedCache[T, V, M]) TrimByValue(predicate func(k *T, v V) bool) (int, error) {
	return c.trimBy(func(rec *entryRecord[T, V], k *T) bool {
		v, ok := rec.entry.Value()
		return ok && predicate(k, v)
	})
}

// TrimByOutcome evicts every live entry (whether Value or cached Error) for
// which predicate returns true, plus every already-stale entry. Only
// meaningful when the cache was created with CacheErrors=true; it
// implements the `Trimmable<(K, ValueOrError<V>)>` capability view.
func (c *RankedCache[T, V, M]) TrimByOutcome(predicate func(k *T, v V, err error, isErr bool) bool) (int, error) {
	return c.trimBy(func(rec *entryRecord[T, V], k *T) bool {
		v, _ := rec.entry.Value()
		err, isErr := rec.entry.Err()
		return predicate(k, v, err, isErr)
	})
}

// TrimByStats evicts every live entry for which predicate(k, stats) returns
// true, plus every already-stale entry. It implements the
// `Trimmable<EntryStats>` capability view, for metric-driven external
// trimming (e.g. "evict anything idle for more than five minutes").
func (c *RankedCache[T, V, M]) TrimByStats(predicate func(k *T, stats *EntryStats) bool) (int, error) {
	return c.trimBy(func(rec *entryRecord[T, V], k *T) bool {
		return predicate(k, rec.entry.stats)
	})
}

func (c *RankedCache[T, V, M]) trimBy(predicate func(rec *entryRecord[T, V], k *T) bool) (int, error) {
	if c.disposed.Load() {
		return 0, NewErrDisposed("TrimBy")
	}

	c.rw.RLock()
	defer c.rw.RUnlock()

	c.writerMu.Lock()
	defer c.writerMu.Unlock()

	removed := 0
	for _, rec := range c.entries.snapshot() {
		k, ok := rec.entry.Key()
		if !ok {
			c.weakMap.removeStale(rec.addr)
			c.entries.remove(rec.addr)
			c.staleRemovals.Add(1)
			c.metrics.RecordStaleRemoval()
			removed++
			continue
		}
		if predicate(rec, k) {
			c.weakMap.remove(rec.addr, k)
			c.entries.remove(rec.addr)
			c.evictions.Add(1)
			c.metrics.RecordEviction()
			removed++
		}
	}
	return removed, nil
}
