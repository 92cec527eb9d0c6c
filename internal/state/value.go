// Package state holds the observable containers that drive screen rendering.
package state

import (
	"slices"
	"sync"
)

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Value is a push-based observable holding the latest T.
// Subscribers are notified synchronously, in subscription order, on every Set.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	nextID  int
	subs    []subscriber[T]
}

// NewValue creates an observable initialised to initial
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the current value and notifies subscribers
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	v.current = next
	subs := slices.Clone(v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
}

// Update applies fn to the current value under the lock and publishes the result
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	next := fn(v.current)
	v.current = next
	subs := slices.Clone(v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return next
}

// Subscribe calls fn with the current value, then with every subsequent one.
// The returned function removes the subscription.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	current := v.current
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			v.subs = slices.DeleteFunc(v.subs, func(s subscriber[T]) bool { return s.id == id })
		})
	}
}
