package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/event"
)

type fakeBackend struct {
	mu      sync.Mutex
	seed    []*event.Event
	saved   map[string]*event.Event
	deleted []string
	initErr error
	loadErr error
	saveErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{saved: map[string]*event.Event{}}
}

func (f *fakeBackend) Init(ctx context.Context) error { return f.initErr }

func (f *fakeBackend) LoadAll(ctx context.Context) ([]*event.Event, error) {
	return f.seed, f.loadErr
}

func (f *fakeBackend) Save(ctx context.Context, e *event.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[e.ID] = e
	return nil
}

func (f *fakeBackend) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) Close() error { return nil }

func when(h int) time.Time {
	return time.Date(2026, 3, 1, h, 0, 0, 0, time.Local)
}

func TestCreateThenByID(t *testing.T) {
	s := New(newFakeBackend())

	created := s.Create("Lunch", when(12), when(13), "tacos")
	if created.ID == "" {
		t.Fatal("created event has no id")
	}

	got, ok := s.ByID(created.ID)
	if !ok {
		t.Fatalf("ByID(%s) not found", created.ID)
	}
	if *got != *created {
		t.Fatalf("ByID returned %+v, Create returned %+v", got, created)
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := New(newFakeBackend())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		e := s.Create("Event", when(9), when(10), "")
		if seen[e.ID] {
			t.Fatalf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestFindByTitleCaseInsensitiveInSnapshotOrder(t *testing.T) {
	s := New(newFakeBackend())
	s.Create("Weekly Team Sync Call", when(9), when(10), "")
	s.Create("Lunch", when(12), when(13), "")
	s.Create("team sync prep", when(8), when(9), "")

	matched := s.FindByTitle("TEAM SYNC")
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].Title != "Weekly Team Sync Call" || matched[1].Title != "team sync prep" {
		t.Fatalf("wrong order: %q, %q", matched[0].Title, matched[1].Title)
	}
}

func TestDeleteByID(t *testing.T) {
	s := New(newFakeBackend())
	e := s.Create("Lunch", when(12), when(13), "")

	if !s.DeleteByID(e.ID) {
		t.Fatal("expected removal")
	}
	if _, ok := s.ByID(e.ID); ok {
		t.Fatal("deleted event still found by id")
	}
	for _, remaining := range s.All() {
		if remaining.ID == e.ID {
			t.Fatal("deleted event still in All()")
		}
	}
	if s.DeleteByID(e.ID) {
		t.Fatal("second delete should report no removal")
	}
}

func TestUpdateByIDPreservesOtherFields(t *testing.T) {
	s := New(newFakeBackend())
	e := s.Create("Lunch", when(12), when(13), "tacos")

	title := "Lunch with Bob"
	updated, ok := s.UpdateByID(e.ID, event.Patch{Title: &title})
	if !ok {
		t.Fatal("update reported not found")
	}
	if updated.Title != "Lunch with Bob" {
		t.Fatalf("title = %q", updated.Title)
	}

	got, _ := s.ByID(e.ID)
	if got.Title != "Lunch with Bob" || !got.Start.Equal(e.Start) || !got.End.Equal(e.End) || got.Description != "tacos" {
		t.Fatalf("fields not preserved: %+v", got)
	}
}

func TestUpdateByTitleTargetsFirstMatch(t *testing.T) {
	s := New(newFakeBackend())
	first := s.Create("Morning run", when(6), when(7), "")
	s.Create("Evening run", when(18), when(19), "")

	desc := "bring water"
	updated, ok := s.UpdateByTitle("run", event.Patch{Description: &desc})
	if !ok {
		t.Fatal("update reported not found")
	}
	if updated.ID != first.ID {
		t.Fatalf("expected first match %s, got %s", first.ID, updated.ID)
	}

	if _, ok := s.UpdateByTitle("swim", event.Patch{Description: &desc}); ok {
		t.Fatal("expected not found for an unmatched query")
	}
}

func TestForDate(t *testing.T) {
	s := New(newFakeBackend())
	s.Create("Today", when(9), when(10), "")
	s.Create("Tomorrow", when(9).AddDate(0, 0, 1), when(10).AddDate(0, 0, 1), "")

	matched := s.ForDate(when(23))
	if len(matched) != 1 || matched[0].Title != "Today" {
		t.Fatalf("unexpected day filter result: %+v", matched)
	}
}

func TestSubscribeTwiceNotifiesTwice(t *testing.T) {
	s := New(newFakeBackend())

	count := 0
	fn := func() { count++ }
	cancelA := s.Subscribe(fn)
	cancelB := s.Subscribe(fn)

	s.Create("Lunch", when(12), when(13), "")
	if count != 2 {
		t.Fatalf("expected 2 invocations for a double registration, got %d", count)
	}

	cancelA()
	s.Create("Dinner", when(19), when(20), "")
	if count != 3 {
		t.Fatalf("expected 3 after cancelling one registration, got %d", count)
	}

	cancelB()
	s.Create("Breakfast", when(7), when(8), "")
	if count != 3 {
		t.Fatalf("expected no further invocations, got %d", count)
	}
}

func TestListenerPanicDoesNotBlockOthers(t *testing.T) {
	s := New(newFakeBackend())

	notified := false
	s.Subscribe(func() { panic("listener gone wrong") })
	s.Subscribe(func() { notified = true })

	e := s.Create("Lunch", when(12), when(13), "")
	if !notified {
		t.Fatal("second listener was not invoked after the first panicked")
	}
	if _, ok := s.ByID(e.ID); !ok {
		t.Fatal("store state corrupted by listener panic")
	}
}

func TestMutationsReachBackend(t *testing.T) {
	b := newFakeBackend()
	s := New(b)

	e := s.Create("Lunch", when(12), when(13), "")
	s.DeleteByID(e.ID)
	s.Flush()

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.saved[e.ID]; !ok {
		t.Fatal("create never reached the backend")
	}
	if len(b.deleted) != 1 || b.deleted[0] != e.ID {
		t.Fatalf("delete never reached the backend: %v", b.deleted)
	}
}

func TestPersistFailureDoesNotRollBackSnapshot(t *testing.T) {
	b := newFakeBackend()
	b.saveErr = errors.New("disk full")
	s := New(b)

	e := s.Create("Lunch", when(12), when(13), "")
	s.Flush()

	if _, ok := s.ByID(e.ID); !ok {
		t.Fatal("snapshot rolled back after a durable write failure")
	}
}

func TestInitializeLoadsAndNotifies(t *testing.T) {
	b := newFakeBackend()
	b.seed = []*event.Event{
		{ID: "1", Title: "Persisted", Start: when(9), End: when(10)},
	}
	s := New(b)

	notified := false
	s.Subscribe(func() { notified = true })

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !notified {
		t.Fatal("initial load did not notify subscribers")
	}
	all := s.All()
	if len(all) != 1 || all[0].Title != "Persisted" {
		t.Fatalf("snapshot not replaced by load: %+v", all)
	}
}

func TestInitializeFailureIsStorageUnavailable(t *testing.T) {
	b := newFakeBackend()
	b.initErr = errors.New("locked")
	s := New(b)

	err := s.Initialize(context.Background())
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	// The uninitialized store reads as empty, not as an error.
	if got := s.All(); len(got) != 0 {
		t.Fatalf("expected empty view, got %d events", len(got))
	}
}
