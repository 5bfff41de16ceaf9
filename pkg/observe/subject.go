// Package observe provides a minimal synchronous publish/subscribe subject.
//
// Publish delivers to every subscriber before returning, so a subscriber that
// re-derives a view from the published value always sees the mutation that
// triggered it. Publishes are serialized; subscribers must not call Publish on
// the same subject.
package observe

import (
	"sync"
)

// Subject fans a value out to its subscribers
type Subject[T any] struct {
	mu      sync.Mutex
	pub     sync.Mutex
	nextID  int
	subs    map[int]func(T)
	order   []int
	last    T
	hasLast bool
}

// New creates an empty subject
func New[T any]() *Subject[T] {
	return &Subject[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns a function that removes it.
// If a value was already published, fn receives it immediately.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	s.pub.Lock()
	defer s.pub.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	last, hasLast := s.last, s.hasLast
	s.mu.Unlock()

	if hasLast {
		fn(last)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers v to all current subscribers in subscription order
func (s *Subject[T]) Publish(v T) {
	s.pub.Lock()
	defer s.pub.Unlock()
	s.deliver(v)
}

// PublishFunc builds the value with fn while holding the publish lock, so
// concurrent publishers deliver values in the order they were built. fn must
// not publish on s.
func (s *Subject[T]) PublishFunc(fn func() T) {
	s.pub.Lock()
	defer s.pub.Unlock()
	s.deliver(fn())
}

func (s *Subject[T]) deliver(v T) {
	s.mu.Lock()
	s.last, s.hasLast = v, true
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Last returns the most recently published value
func (s *Subject[T]) Last() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}
