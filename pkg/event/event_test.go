package event

import (
	"testing"
	"time"
)

func TestPatchApplyPreservesUnsetFields(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)
	e := New("Lunch", start, end, "tacos")
	e.ID = "42"

	title := "Lunch with Bob"
	Patch{Title: &title}.Apply(e)

	if e.Title != "Lunch with Bob" {
		t.Fatalf("title not applied, got %q", e.Title)
	}
	if e.ID != "42" || !e.Start.Equal(start) || !e.End.Equal(end) || e.Description != "tacos" {
		t.Fatalf("unpatched fields changed: %+v", e)
	}
}

func TestPatchEmpty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
	title := "x"
	if (Patch{Title: &title}).Empty() {
		t.Fatal("patch with a title should not be empty")
	}
}

func TestOnDay(t *testing.T) {
	e := New("Standup", time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local), time.Date(2026, 3, 1, 9, 45, 0, 0, time.Local), "")

	if !e.OnDay(time.Date(2026, 3, 1, 23, 59, 0, 0, time.Local)) {
		t.Fatal("expected a match on the same local day")
	}
	if e.OnDay(time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)) {
		t.Fatal("expected no match the next day")
	}
}
