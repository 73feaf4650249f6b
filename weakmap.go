// weakmap.go: WeakKeyMap
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import (
	"runtime"
	"strconv"
	"sync"
	"unsafe"
	"weak"

	"golang.org/x/sync/singleflight"
)

// weakKeyMap is a mapping from *T (reference identity) to *Entry[T, V]
// in which T is retained weakly. Go gives us real weak references
// (weak.Pointer[T], Go 1.24+), but a weak.Pointer alone isn't a map key --
// the classic construction (the one the weak package's own docs point at
// for building a canonicalizing/weak map) is to key the map by the
// pointer's numeric address (a uintptr pins nothing for the GC) and keep
// the weak.Pointer alongside it purely to confirm liveness and guard
// against the address being reused by an unrelated, later object.
type weakKeyMap[T any, V any] struct {
	mu    sync.Mutex
	slots map[uintptr]*mapSlot[T, V]

	// group deduplicates concurrent misses for the same key: Group.Do
	// calls fn with the group's own lock released, which is exactly the
	// "producer invoked without holding the map's internal lock" property
	// getOrAdd needs to avoid deadlocking against the cache's own write
	// lock taken inside produce.
	group singleflight.Group
}

type mapSlot[T any, V any] struct {
	weakKey weak.Pointer[T]
	entry   *Entry[T, V]
}

func newWeakKeyMap[T any, V any]() *weakKeyMap[T, V] {
	return &weakKeyMap[T, V]{
		slots: make(map[uintptr]*mapSlot[T, V]),
	}
}

func keyAddr[T any](k *T) uintptr {
	return uintptr(unsafe.Pointer(k))
}

// getOrAdd returns the live entry for k, calling produce(k) to build and
// install one on a miss. produce must not be called while m.mu is held.
func (m *weakKeyMap[T, V]) getOrAdd(k *T, produce func(*T) (*Entry[T, V], error)) (*Entry[T, V], error) {
	addr := keyAddr(k)

	if entry, ok := m.lookup(addr, k); ok {
		return entry, nil
	}

	v, err, _ := m.group.Do(singleflightKey(addr), func() (interface{}, error) {
		// Re-check under singleflight dedup: another goroutine may have
		// installed the entry between the first lookup above and
		// this call being selected as the leader.
		if entry, ok := m.lookup(addr, k); ok {
			return entry, nil
		}
		entry, err := produce(k)
		if err != nil {
			return nil, err
		}
		m.install(addr, k, entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry[T, V]), nil
}

// lookup returns the live entry for k if one is installed and k is still
// the exact object that produced it (guarding against an unrelated object
// later reusing the same address).
func (m *weakKeyMap[T, V]) lookup(addr uintptr, k *T) (*Entry[T, V], bool) {
	m.mu.Lock()
	slot, ok := m.slots[addr]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	if slot.weakKey.Value() != k {
		return nil, false
	}
	return slot.entry, true
}

func (m *weakKeyMap[T, V]) install(addr uintptr, k *T, entry *Entry[T, V]) {
	m.mu.Lock()
	m.slots[addr] = &mapSlot[T, V]{weakKey: weak.Make(k), entry: entry}
	m.mu.Unlock()

	// Opportunistic cleanup: when k becomes unreachable, drop its slot
	// without waiting for the next trim to sweep it. This only ever
	// removes a slot that is genuinely dead (weakKey.Value() == nil at
	// the time the cleanup runs), so a later object reusing addr and
	// installed in the meantime is never disturbed.
	runtime.AddCleanup(k, m.cleanupDead, addr)
}

func (m *weakKeyMap[T, V]) cleanupDead(addr uintptr) {
	m.mu.Lock()
	if slot, ok := m.slots[addr]; ok && slot.weakKey.Value() == nil {
		delete(m.slots, addr)
	}
	m.mu.Unlock()
}

// remove erases the mapping for the still-live key k (addr is k's cached
// address). Used by trim when evicting a candidate whose key upgraded.
func (m *weakKeyMap[T, V]) remove(addr uintptr, k *T) {
	m.mu.Lock()
	if slot, ok := m.slots[addr]; ok && slot.weakKey.Value() == k {
		delete(m.slots, addr)
	}
	m.mu.Unlock()
}

// removeStale erases the mapping at addr if it is presently dead. Used by
// trim's stale-key sweep, where the key has already been reclaimed and
// there is no *T left to compare against.
func (m *weakKeyMap[T, V]) removeStale(addr uintptr) {
	m.mu.Lock()
	if slot, ok := m.slots[addr]; ok && slot.weakKey.Value() == nil {
		delete(m.slots, addr)
	}
	m.mu.Unlock()
}

// clear empties the map unconditionally, used by RankedCache.Clear.
func (m *weakKeyMap[T, V]) clear() {
	m.mu.Lock()
	m.slots = make(map[uintptr]*mapSlot[T, V])
	m.mu.Unlock()
}

func singleflightKey(addr uintptr) string {
	return strconv.FormatUint(uint64(addr), 16)
}
