// entryset.go: EntrySet, the strong-reference registry
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import "sync/atomic"

// entryRecord is one bookkeeping row held by EntrySet: the address the
// entry was installed under in WeakKeyMap (so trim can remove both sides
// together), plus the Entry itself.
type entryRecord[T any, V any] struct {
	addr  uintptr
	entry *Entry[T, V]
}

// entrySet holds a strong reference to every live *Entry[T, V]. As
// long as a record sits here, its Entry (and the EntryStats it points to)
// cannot be collected, even if the entry's weak key upgrades to nil.
// weakKeyMap's slot also points at the entry until that slot is removed
// (by trim, TrimBy, Clear, or the key's runtime cleanup).
//
// All mutation happens under the owning RankedCache's write path (see
// cache.go's upgradeable-read-lock discipline); entrySet itself adds only
// the size counter as an atomic so Count() can be read lock-free.
type entrySet[T any, V any] struct {
	records map[uintptr]*entryRecord[T, V]
	order   []uintptr // insertion order, oldest first; compacted by snapshot()
	size    atomic.Int64
}

func newEntrySet[T any, V any]() *entrySet[T, V] {
	return &entrySet[T, V]{
		records: make(map[uintptr]*entryRecord[T, V]),
	}
}

// add registers a newly created entry. Caller must hold the cache's write
// lock.
func (s *entrySet[T, V]) add(addr uintptr, entry *Entry[T, V]) {
	s.records[addr] = &entryRecord[T, V]{addr: addr, entry: entry}
	s.order = append(s.order, addr)
	s.size.Add(1)
}

// remove drops the record at addr, if present. Caller must hold the
// cache's write lock. Does not compact s.order; see snapshot().
func (s *entrySet[T, V]) remove(addr uintptr) bool {
	if _, ok := s.records[addr]; !ok {
		return false
	}
	delete(s.records, addr)
	s.size.Add(-1)
	return true
}

// count returns the number of live records. Safe to call without the
// write lock; used by Count() for a fast, slightly racy read that may be
// approximate under concurrent mutation.
func (s *entrySet[T, V]) count() int {
	return int(s.size.Load())
}

// clear empties the set unconditionally. Caller must hold the write lock.
func (s *entrySet[T, V]) clear() {
	s.records = make(map[uintptr]*entryRecord[T, V])
	s.order = nil
	s.size.Store(0)
}

// snapshot returns every live record in insertion order (oldest first),
// compacting s.order as it goes so tombstones from prior removals don't
// accumulate forever. Caller must hold the cache's write lock (trim,
// TrimBy and Clear call it, each holding the writer mutex).
func (s *entrySet[T, V]) snapshot() []*entryRecord[T, V] {
	out := make([]*entryRecord[T, V], 0, len(s.records))
	compacted := s.order[:0]
	for _, addr := range s.order {
		rec, ok := s.records[addr]
		if !ok {
			continue
		}
		out = append(out, rec)
		compacted = append(compacted, addr)
	}
	s.order = compacted
	return out
}
