// entry.go: the ⟨weak(K), outcome, stats⟩ tuple
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import "weak"

// outcome is the sum type Value(V) | Error(E). isErr distinguishes the
// two arms since Go has no tagged union; zero value is Value(zero V).
type outcome[V any] struct {
	value  V
	err    error
	isErr  bool
}

// Entry is the cache's internal record for one memoized key. EntrySet holds
// the strong reference that keeps it registered for eviction; WeakKeyMap
// holds the key only through a *weak* handle, alongside its own pointer to
// this struct for lookups. Eviction and stale sweeps remove it from both.
type Entry[T any, V any] struct {
	addr    uintptr // address of the key at creation time, for weak-map bookkeeping
	weakKey weak.Pointer[T]
	outcome outcome[V]
	stats   *EntryStats
}

// Stats exposes the entry's bookkeeping for rankers and trim_by predicates.
func (e *Entry[T, V]) Stats() *EntryStats {
	return e.stats
}

// Key attempts to upgrade the entry's weak key handle to a strong reference.
// The second return value is false if the key has already been reclaimed
// ("stale", per the GLOSSARY).
func (e *Entry[T, V]) Key() (*T, bool) {
	k := e.weakKey.Value()
	return k, k != nil
}

// Value returns the cached value and true, or the zero value and false if
// this entry holds a cached error instead.
func (e *Entry[T, V]) Value() (V, bool) {
	if e.outcome.isErr {
		var zero V
		return zero, false
	}
	return e.outcome.value, true
}

// Err returns the cached error, if this entry's outcome is an error arm.
func (e *Entry[T, V]) Err() (error, bool) {
	return e.outcome.err, e.outcome.isErr
}
