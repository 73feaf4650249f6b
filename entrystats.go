// entrystats.go: per-entry bookkeeping
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import (
	"sync/atomic"
	"time"
)

// EntryStats holds the per-entry counters and timestamps a Ranker consumes
// to score entries for eviction. All fields are updated with atomics so a
// concurrent ranker read never observes a torn individual field; readers
// are not guaranteed a linearizable snapshot across fields, only that no
// single field tears.
type EntryStats struct {
	hitCount       atomic.Uint64
	totalDuration  atomic.Int64 // nanoseconds
	lastAccessTime atomic.Int64 // ticks
	creationTime   int64        // ticks, immutable after construction
	invokeDuration time.Duration
	seq            uint64 // insertion sequence number, immutable, used as final tiebreak
}

// newEntryStats builds the stats block for a freshly computed entry. The
// producing call counts as the first hit, so hit_count is always >= 1
// immediately after insertion.
func newEntryStats(creationTicks int64, invokeDuration time.Duration, seq uint64) *EntryStats {
	s := &EntryStats{
		creationTime:   creationTicks,
		invokeDuration: invokeDuration,
		seq:            seq,
	}
	s.hitCount.Store(1)
	s.lastAccessTime.Store(creationTicks)
	return s
}

// recordHit bumps hit_count, accumulates lookup_duration into
// total_duration, and stamps last_access_time.
func (s *EntryStats) recordHit(lookupDuration time.Duration, accessTicks int64) {
	s.hitCount.Add(1)
	s.totalDuration.Add(int64(lookupDuration))
	s.lastAccessTime.Store(accessTicks)
}

// HitCount returns the number of times this entry has satisfied a get_or_add
// call, including the initial compute.
func (s *EntryStats) HitCount() uint64 {
	return s.hitCount.Load()
}

// TotalDuration returns the accumulated lookup time saved by this entry
// across every hit since creation.
func (s *EntryStats) TotalDuration() time.Duration {
	return time.Duration(s.totalDuration.Load())
}

// LastAccessTime returns the clock ticks at which this entry was last read.
func (s *EntryStats) LastAccessTime() int64 {
	return s.lastAccessTime.Load()
}

// CreationTime returns the clock ticks at which this entry was produced.
func (s *EntryStats) CreationTime() int64 {
	return s.creationTime
}

// InvokeDuration returns how long the single call to f that produced this
// entry took.
func (s *EntryStats) InvokeDuration() time.Duration {
	return s.invokeDuration
}

// Ranker projects an EntryStats snapshot to a totally-ordered scalar metric
// used to rank eviction candidates. Built-in rankers cover the common
// policies; callers may supply any function fn(*EntryStats) M for M a
// cmp.Ordered type as a Ranker[M].
type Ranker[M Ordered] func(*EntryStats) M

// Ordered mirrors the standard library's cmp.Ordered constraint, restated
// here so Ranker has no dependency beyond this package's own generics.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

// HitCountRanker ranks by raw hit count, ascending. Evicting the smallest
// first (Descending=false) implements a least-frequently-used policy.
func HitCountRanker(s *EntryStats) uint64 {
	return s.HitCount()
}

// LastAccessRanker ranks by last access tick, ascending. Evicting the
// smallest first implements a least-recently-used policy.
func LastAccessRanker(s *EntryStats) int64 {
	return s.LastAccessTime()
}

// TotalDurationRanker ranks by accumulated time saved. Evicting the
// smallest first prioritizes keeping entries that save the most
// recomputation time.
func TotalDurationRanker(s *EntryStats) time.Duration {
	return s.TotalDuration()
}
