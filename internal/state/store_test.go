package state

import (
	"testing"
	"time"
)

type counter struct {
	N     int
	Items []string
}

func newCounterStore() *store[counter] {
	s := &store[counter]{}
	s.init(counter{}, func(c counter) counter {
		c.Items = cloneSlice(c.Items)
		return c
	})
	return s
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	s := newCounterStore()
	s.update(func(c *counter) {
		c.N = 2
		c.Items = []string{"a", "b"}
	})

	snap := s.snapshot()
	if snap.N != 2 || len(snap.Items) != 2 {
		t.Fatalf("snapshot = %#v, want N=2 with 2 items", snap)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Items[0] = "mutated"
	if got := s.snapshot().Items[0]; got != "a" {
		t.Fatalf("Snapshot should clone items; got %q want a", got)
	}
}

func TestStore_SubscribeCoalescesSignals(t *testing.T) {
	s := newCounterStore()
	sub := s.Subscribe()

	for i := 0; i < 5; i++ {
		s.update(func(c *counter) { c.N++ })
	}

	select {
	case <-sub:
	case <-time.After(time.Second):
		t.Fatal("expected a signal")
	}
	select {
	case <-sub:
		t.Fatal("signals should coalesce into one")
	default:
	}
	if got := s.snapshot().N; got != 5 {
		t.Fatalf("N = %d, want 5", got)
	}

	s.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed after Unsubscribe")
	}
	s.update(func(c *counter) { c.N++ }) // must not panic on a closed channel
	s.Unsubscribe(sub)
}

func TestStore_WaitTracksSpawnedWork(t *testing.T) {
	s := newCounterStore()
	release := make(chan struct{})
	s.spawn(func() {
		<-release
		s.update(func(c *counter) { c.N = 42 })
	})

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before work finished")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	<-done
	if got := s.snapshot().N; got != 42 {
		t.Fatalf("N = %d, want 42", got)
	}
}

func TestClonePtr(t *testing.T) {
	if clonePtr[int](nil) != nil {
		t.Fatal("clonePtr(nil) should be nil")
	}
	v := 1
	dup := clonePtr(&v)
	*dup = 2
	if v != 1 {
		t.Fatal("clonePtr should copy the value")
	}
}
