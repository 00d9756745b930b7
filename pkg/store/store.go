package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"tableflip.dev/agenda/pkg/event"
)

// ErrStorageUnavailable is returned by Initialize when the durable backend
// cannot be opened or migrated. The store is unusable for persistence after
// this; reads against the empty snapshot still work but callers must surface
// the failure.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is the single authoritative source of truth for events during process
// lifetime. All reads serve from the in-memory snapshot; every accepted
// mutation is applied to the snapshot synchronously, subscribers are notified
// synchronously in registration order, and the durable write happens on a
// fire-and-forget goroutine afterwards. A crash between the snapshot update
// and the durable write loses that mutation; that trade is deliberate so
// callers never wait on storage latency.
type Store struct {
	backend Backend

	mu        sync.RWMutex
	events    []*event.Event
	listeners []*subscription

	pending sync.WaitGroup
}

type subscription struct {
	fn func()
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Initialize opens the durable backend, creating its schema if absent, and
// replaces the snapshot with the persisted events. Subscribers are notified
// once the load completes.
func (s *Store) Initialize(ctx context.Context) error {
	if s.backend == nil {
		return fmt.Errorf("%w: no backend configured", ErrStorageUnavailable)
	}
	if err := s.backend.Init(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	all, err := s.backend.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.mu.Lock()
	s.events = all
	s.mu.Unlock()

	s.notify()
	return nil
}

// All returns the snapshot in insertion order. The returned events are copies;
// mutation goes through the store's operations only.
func (s *Store) All() []*event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*event.Event, 0, len(s.events))
	for _, e := range s.events {
		all = append(all, clone(e))
	}
	return all
}

// ForDate returns the events whose start falls on the same local calendar day
// as the given date.
func (s *Store) ForDate(day time.Time) []*event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*event.Event, 0)
	for _, e := range s.events {
		if e.OnDay(day) {
			matched = append(matched, clone(e))
		}
	}
	return matched
}

// FindByTitle returns every event whose title contains the query,
// case-insensitively, in snapshot order.
func (s *Store) FindByTitle(query string) []*event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	matched := make([]*event.Event, 0)
	for _, e := range s.events {
		if strings.Contains(strings.ToLower(e.Title), q) {
			matched = append(matched, clone(e))
		}
	}
	return matched
}

func (s *Store) ByID(id string) (*event.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return clone(e), true
		}
	}
	return nil, false
}

// Create appends a new event to the snapshot and returns it. The ID is derived
// from the current epoch millisecond and bumped until unused, so two creations
// within the same millisecond cannot collide. Durability is not awaited.
func (s *Store) Create(title string, start, end time.Time, description string) *event.Event {
	e := event.New(title, start, end, description)

	s.mu.Lock()
	e.ID = s.nextIDLocked()
	s.events = append(s.events, e)
	out := clone(e)
	s.mu.Unlock()

	s.notify()
	s.persist(out)
	return out
}

// UpdateByID merges the patch into the event with the given ID. Unpatched
// fields are preserved. Reports false if no event has that ID.
func (s *Store) UpdateByID(id string, p event.Patch) (*event.Event, bool) {
	s.mu.Lock()
	var out *event.Event
	for _, e := range s.events {
		if e.ID == id {
			p.Apply(e)
			out = clone(e)
			break
		}
	}
	s.mu.Unlock()

	if out == nil {
		return nil, false
	}
	s.notify()
	s.persist(out)
	return out, true
}

// UpdateByTitle resolves the first case-insensitive title substring match and
// merges the patch into it.
func (s *Store) UpdateByTitle(query string, p event.Patch) (*event.Event, bool) {
	s.mu.Lock()
	var out *event.Event
	q := strings.ToLower(query)
	for _, e := range s.events {
		if strings.Contains(strings.ToLower(e.Title), q) {
			p.Apply(e)
			out = clone(e)
			break
		}
	}
	s.mu.Unlock()

	if out == nil {
		return nil, false
	}
	s.notify()
	s.persist(out)
	return out, true
}

// DeleteByID removes the event with the given ID and reports whether a removal
// occurred.
func (s *Store) DeleteByID(id string) bool {
	s.mu.Lock()
	removed := s.removeLocked(func(e *event.Event) bool { return e.ID == id })
	s.mu.Unlock()

	if removed == nil {
		return false
	}
	s.notify()
	s.unpersist(removed.ID)
	return true
}

// DeleteByTitle resolves the first case-insensitive title substring match,
// removes it, and returns the removed event.
func (s *Store) DeleteByTitle(query string) (*event.Event, bool) {
	q := strings.ToLower(query)
	s.mu.Lock()
	removed := s.removeLocked(func(e *event.Event) bool {
		return strings.Contains(strings.ToLower(e.Title), q)
	})
	s.mu.Unlock()

	if removed == nil {
		return nil, false
	}
	s.notify()
	s.unpersist(removed.ID)
	return removed, true
}

// Subscribe registers a callback invoked synchronously after every successful
// mutation and after the initial load. Registering the same func twice yields
// two invocations per mutation; the returned cancel func removes exactly the
// registration it belongs to.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	sub := &subscription{fn: fn}
	s.mu.Lock()
	s.listeners = append(s.listeners, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, candidate := range s.listeners {
			if candidate == sub {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Flush blocks until all fire-and-forget durable writes issued so far have
// completed. Main calls this before exit; tests use it for determinism.
func (s *Store) Flush() {
	s.pending.Wait()
}

func (s *Store) Close() error {
	s.Flush()
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]*subscription, len(s.listeners))
	copy(subs, s.listeners)
	s.mu.RUnlock()

	for _, sub := range subs {
		invoke(sub.fn)
	}
}

// invoke isolates a panicking listener so the remaining listeners still run
// and store state stays intact.
func invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "store: listener panic: %v\n", r)
		}
	}()
	fn()
}

func (s *Store) persist(e *event.Event) {
	if s.backend == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.backend.Save(context.Background(), e); err != nil {
			fmt.Fprintf(os.Stderr, "store: persist %s: %v\n", e.ID, err)
		}
	}()
}

func (s *Store) unpersist(id string) {
	if s.backend == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.backend.Delete(context.Background(), id); err != nil {
			fmt.Fprintf(os.Stderr, "store: delete %s: %v\n", id, err)
		}
	}()
}

func (s *Store) nextIDLocked() string {
	candidate := time.Now().UnixMilli()
	for s.hasIDLocked(strconv.FormatInt(candidate, 10)) {
		candidate++
	}
	return strconv.FormatInt(candidate, 10)
}

func (s *Store) hasIDLocked(id string) bool {
	for _, e := range s.events {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) removeLocked(match func(*event.Event) bool) *event.Event {
	for i, e := range s.events {
		if match(e) {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return clone(e)
		}
	}
	return nil
}

func clone(e *event.Event) *event.Event {
	c := *e
	return &c
}
