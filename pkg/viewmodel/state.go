package viewmodel

import (
	"context"
	"sync"
)

// State holds a value that observers can follow. Watchers always see the
// latest value; intermediate values may be skipped.
type State[T any] struct {
	mu      sync.Mutex
	value   T
	changed chan struct{}
}

// NewState creates a State holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, changed: make(chan struct{})}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and wakes watchers.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *State[T]) current() (T, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.changed
}

// Watch emits the current value, then the latest value after every Set,
// until ctx is done.
func (s *State[T]) Watch(ctx context.Context) <-chan T {
	out := make(chan T, 1)
	go func() {
		defer close(out)
		for {
			v, changed := s.current()
			select {
			case <-out:
			default:
			}
			out <- v

			select {
			case <-ctx.Done():
				return
			case <-changed:
			}
		}
	}()
	return out
}
