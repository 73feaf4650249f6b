// broadcast.go: BroadcastSubject
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import "sync"

// Sink receives values, errors, and completion notices from a
// BroadcastSubject. Implementations must be safe to call concurrently with
// their own Dispose.
type Sink[V any] interface {
	OnNext(v V)
	OnError(err error)
	OnCompleted()
}

// SubscriptionHandle lets a subscriber stop receiving further deliveries.
// Dispose is idempotent: a second call is a no-op.
type SubscriptionHandle struct {
	dispose func()
	once    sync.Once
}

// Dispose detaches the subscription. Safe to call more than once.
func (h *SubscriptionHandle) Dispose() {
	h.once.Do(h.dispose)
}

// ProducerHandle is the single stable producer endpoint for a
// BroadcastSubject; Subject.Producer() always returns the same
// *ProducerHandle for a given subject's lifetime.
type ProducerHandle[V any] struct {
	subject *BroadcastSubject[V]
}

// OnNext broadcasts v to every sink currently subscribed.
func (p *ProducerHandle[V]) OnNext(v V) error {
	return p.subject.emit(func(s Sink[V]) { s.OnNext(v) }, false)
}

// OnError broadcasts a terminal error to every sink currently subscribed,
// then ends the subject: no further OnNext/OnError/OnCompleted is ever
// dispatched, and no further Subscribe succeeds.
func (p *ProducerHandle[V]) OnError(err error) error {
	return p.subject.emit(func(s Sink[V]) { s.OnError(err) }, true)
}

// OnCompleted broadcasts a terminal completion notice to every sink
// currently subscribed, then ends the subject; see OnError.
func (p *ProducerHandle[V]) OnCompleted() error {
	return p.subject.emit(func(s Sink[V]) { s.OnCompleted() }, true)
}

type subscriber[V any] struct {
	id   uint64
	sink Sink[V]
}

// BroadcastSubject is one producer fanning out to an evolving set of
// sinks, with copy-on-write snapshots so a dispatch in progress never
// observes (and is never corrupted by) a concurrent subscribe/dispose.
type BroadcastSubject[V any] struct {
	mu         sync.Mutex
	subs       []*subscriber[V] // copy-on-write; emit reads a snapshot reference under mu
	nextID     uint64
	disposed   bool
	terminated bool // set once OnError/OnCompleted has fired; blocks further emit/Subscribe
	producer   *ProducerHandle[V]
}

// NewBroadcastSubject constructs an empty, live subject.
func NewBroadcastSubject[V any]() *BroadcastSubject[V] {
	s := &BroadcastSubject[V]{}
	s.producer = &ProducerHandle[V]{subject: s}
	return s
}

// Producer returns the subject's stable producer handle.
func (s *BroadcastSubject[V]) Producer() *ProducerHandle[V] {
	return s.producer
}

// Subscribe registers sink to receive every subsequent OnNext/OnError/
// OnCompleted, until the returned handle is disposed or a terminal event
// fires. Raises InvalidArgument if sink is nil, Disposed if the subject
// has already been disposed.
func (s *BroadcastSubject[V]) Subscribe(sink Sink[V]) (*SubscriptionHandle, error) {
	if sink == nil {
		return nil, NewErrNilSink()
	}

	s.mu.Lock()
	if s.disposed || s.terminated {
		s.mu.Unlock()
		return nil, NewErrDisposed("Subscribe")
	}
	s.nextID++
	id := s.nextID
	sub := &subscriber[V]{id: id, sink: sink}
	s.subs = appendCopy(s.subs, sub)
	s.mu.Unlock()

	handle := &SubscriptionHandle{}
	handle.dispose = func() {
		s.mu.Lock()
		s.subs = removeCopy(s.subs, id)
		s.mu.Unlock()
	}
	return handle, nil
}

// Dispose transitions the subject to the Disposed state. Subsequent
// OnNext/OnError/OnCompleted/Subscribe calls all raise Disposed. Idempotent.
func (s *BroadcastSubject[V]) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.subs = nil
	s.mu.Unlock()
}

// emit takes a snapshot of the current subscriber list and walks it in
// registration order, so a subscribe/dispose racing with this call can
// neither be double-delivered to nor skipped mid-dispatch. When terminal
// is true (OnError/OnCompleted), it clears subs and marks the subject
// terminated before releasing the lock, the same way Dispose clears subs,
// so no later emit or Subscribe call can observe a live subscriber list.
func (s *BroadcastSubject[V]) emit(deliver func(Sink[V]), terminal bool) error {
	s.mu.Lock()
	if s.disposed || s.terminated {
		s.mu.Unlock()
		return NewErrDisposed("emit")
	}
	snapshot := s.subs
	if terminal {
		s.terminated = true
		s.subs = nil
	}
	s.mu.Unlock()

	for _, sub := range snapshot {
		deliver(sub.sink)
	}
	return nil
}

func appendCopy[V any](subs []*subscriber[V], sub *subscriber[V]) []*subscriber[V] {
	out := make([]*subscriber[V], len(subs)+1)
	copy(out, subs)
	out[len(subs)] = sub
	return out
}

func removeCopy[V any](subs []*subscriber[V], id uint64) []*subscriber[V] {
	out := make([]*subscriber[V], 0, len(subs))
	for _, sub := range subs {
		if sub.id != id {
			out = append(out, sub)
		}
	}
	return out
}
