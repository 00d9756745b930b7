package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/event"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenda.db")
	ctx := context.Background()

	b := NewSQLiteBackend(path)
	if err := b.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := &event.Event{
		ID:          "1767225600000",
		Title:       "Lunch",
		Start:       start,
		End:         start.Add(time.Hour),
		Description: "tacos",
	}
	if err := b.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}

	e2 := &event.Event{ID: "1767225600001", Title: "Standup", Start: start, End: start}
	if err := b.Save(ctx, e2); err != nil {
		t.Fatalf("save second: %v", err)
	}

	// Saving an existing id replaces the row.
	e.Title = "Lunch with Bob"
	if err := b.Save(ctx, e); err != nil {
		t.Fatalf("resave: %v", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reopen to prove the rows survived the process boundary.
	b = NewSQLiteBackend(path)
	if err := b.Init(ctx); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = b.Close() }()

	all, err := b.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	if all[0].ID != e.ID || all[0].Title != "Lunch with Bob" {
		t.Fatalf("first row = %+v", all[0])
	}
	if !all[0].Start.Equal(start) || !all[0].End.Equal(start.Add(time.Hour)) {
		t.Fatalf("times did not round-trip: %+v", all[0])
	}
	if all[0].Description != "tacos" || all[1].Description != "" {
		t.Fatalf("descriptions did not round-trip: %q %q", all[0].Description, all[1].Description)
	}

	if err := b.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, err = b.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(all) != 1 || all[0].ID != e2.ID {
		t.Fatalf("delete did not stick: %+v", all)
	}
}
