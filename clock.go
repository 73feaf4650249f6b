// clock.go: monotonic clock abstraction
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import (
	"time"

	timecache "github.com/agilira/go-timecache"
)

// Clock is a monotonic tick source. Now times individual calls to the
// memoized function; AccessNow stamps entries (creation time, last access
// time), where a small amount of staleness is an acceptable trade for
// cheapness under contention. Implementations must never report a tick
// count that goes backward.
type Clock interface {
	// Now returns the current tick count with stopwatch precision. Ticks
	// are convertible to a Duration via TickDuration.
	Now() int64

	// AccessNow returns the current tick count for stamping entries. May
	// be a cached/batched reading, cheaper than Now() but coarser.
	AccessNow() int64

	// TickDuration returns the wall-clock duration of a single tick.
	TickDuration() time.Duration
}

// Elapsed returns the wall-clock duration between two tick readings from
// the same Clock.
func Elapsed(c Clock, startTicks, endTicks int64) time.Duration {
	return time.Duration(endTicks-startTicks) * c.TickDuration()
}

// systemClock is the default Clock, backed by go-timecache for the cheap,
// frequently-read access-time stamps and by time.Now()'s monotonic reading
// for anything timing-sensitive (invoke/lookup durations), since a cached
// clock that updates on a background tick can under-report a fast call as
// taking zero time.
type systemClock struct{}

// NewSystemClock returns the default production Clock.
func NewSystemClock() Clock {
	return systemClock{}
}

// clockEpoch anchors systemClock.Now; time.Since measures from it using the
// monotonic clock reading.
var clockEpoch = time.Now()

func (systemClock) Now() int64 {
	return int64(time.Since(clockEpoch))
}

func (systemClock) AccessNow() int64 {
	return cachedNow()
}

func (systemClock) TickDuration() time.Duration {
	return time.Nanosecond
}

// cachedNow is used internally wherever a timestamp is wanted but does not
// need stopwatch precision (e.g. last-access bookkeeping under contention),
// trading a small amount of staleness for go-timecache's near-zero cost.
func cachedNow() int64 {
	return timecache.CachedTimeNano()
}
