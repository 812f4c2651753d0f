package services

import (
	"slices"
	"sync"
)

// subscribers is a set of observer callbacks.
type subscribers[F any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]F
}

// add registers fn and returns a function that removes it.
func (s *subscribers[F]) add(fn F) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]F)
	}
	id := s.next
	s.next++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.fns, id)
		})
	}
}

// notify calls each subscriber outside the lock, in registration order.
func (s *subscribers[F]) notify(call func(F)) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.fns))
	for id := range s.fns {
		ids = append(ids, id)
	}
	fns := make([]F, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.fns[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		call(fn)
	}
}
