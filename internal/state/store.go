package state

import (
	"sync"
)

// store coordinates concurrent updates to one coordinator's state. Writers go
// through update; readers get a cloned snapshot. Every update signals all
// subscribers.
type store[S any] struct {
	mu    sync.RWMutex
	state S
	clone func(S) S

	subMu sync.Mutex
	subs  map[<-chan struct{}]chan struct{}

	inflight sync.WaitGroup
}

func (s *store[S]) init(initial S, clone func(S) S) {
	s.state = initial
	s.clone = clone
	s.subs = make(map[<-chan struct{}]chan struct{})
}

func (s *store[S]) snapshot() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clone(s.state)
}

// update applies fn under the write lock, then notifies subscribers.
func (s *store[S]) update(fn func(*S)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
	s.notify()
}

// Subscribe returns a channel that receives a signal after every state
// change. Signals coalesce: a reader that falls behind sees one pending
// signal, then reads the latest Snapshot.
func (s *store[S]) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subs[ch] = ch
	s.subMu.Unlock()
	return ch
}

// Unsubscribe stops signals to ch and closes it.
func (s *store[S]) Unsubscribe(ch <-chan struct{}) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if w, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(w)
	}
}

func (s *store[S]) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// spawn runs fn on its own goroutine, tracked by Wait.
func (s *store[S]) spawn(fn func()) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		fn()
	}()
}

// Wait blocks until every action started so far has finished.
func (s *store[S]) Wait() {
	s.inflight.Wait()
}

func cloneSlice[T any](items []T) []T {
	if items == nil {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	dup := *v
	return &dup
}
