// Package reactive provides observable state cells and typed event emitters.
//
// A Signal holds a value and notifies subscribers when the value changes under
// the signal's equality function. An Emitter delivers discrete events to every
// subscriber. Both are safe for concurrent use; subscribers run synchronously
// on the goroutine that caused the change, after internal locks are released.
package reactive

import (
	"reflect"
	"sync"
)

// View is the read-only face of a Signal
type View[T any] interface {
	Get() T
	Subscribe(fn func(T)) (cancel func())
}

// Option configures a Signal
type Option[T any] func(*Signal[T])

// WithEqual replaces the default reflect.DeepEqual comparison
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(s *Signal[T]) {
		s.equal = eq
	}
}

// Signal is an observable state cell
type Signal[T any] struct {
	mu    sync.RWMutex
	value T
	equal func(a, b T) bool

	subs subscribers[T]
}

// NewSignal creates a signal holding initial
func NewSignal[T any](initial T, opts ...Option[T]) *Signal[T] {
	s := &Signal[T]{
		value: initial,
		equal: func(a, b T) bool { return reflect.DeepEqual(a, b) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current value
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores v and notifies subscribers if it differs from the current value.
// Returns whether a change was recorded.
func (s *Signal[T]) Set(v T) bool {
	return s.Update(func(T) T { return v })
}

// Update replaces the value with fn(current) atomically.
// Returns whether a change was recorded.
func (s *Signal[T]) Update(fn func(T) T) bool {
	s.mu.Lock()
	next := fn(s.value)
	if s.equal(s.value, next) {
		s.mu.Unlock()
		return false
	}
	s.value = next
	s.mu.Unlock()

	s.subs.notify(next)
	return true
}

// Subscribe registers fn to run after every change. The returned function
// removes the subscription and is safe to call more than once.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	return s.subs.add(fn)
}

// AsView returns the read-only view of the signal
func (s *Signal[T]) AsView() View[T] {
	return s
}

// subscribers is an ordered, concurrency-safe callback registry
type subscribers[T any] struct {
	mu     sync.Mutex
	nextID int
	fns    []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func (r *subscribers[T]) add(fn func(T)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.fns = append(r.fns, subscriber[T]{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *subscribers[T]) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.fns {
		if s.id == id {
			r.fns = append(r.fns[:i:i], r.fns[i+1:]...)
			return
		}
	}
}

// notify calls every subscriber registered at the time of the call
func (r *subscribers[T]) notify(v T) int {
	r.mu.Lock()
	snapshot := make([]subscriber[T], len(r.fns))
	copy(snapshot, r.fns)
	r.mu.Unlock()

	for _, s := range snapshot {
		s.fn(v)
	}
	return len(snapshot)
}
