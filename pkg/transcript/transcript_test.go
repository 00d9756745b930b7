package transcript

import (
	"context"
	"testing"
	"time"
)

func TestAppendAndListOrdered(t *testing.T) {
	l := Open(t.TempDir())

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	msgs := []*Message{
		{Role: RoleUser, Text: "what is on today?", Created: base},
		{Role: RoleAssistant, Text: "Nothing scheduled.", Created: base.Add(time.Second)},
		{Role: RoleUser, Text: "add lunch at noon", Created: base.Add(2 * time.Second)},
	}
	for _, m := range msgs {
		if err := l.Append(m); err != nil {
			t.Fatalf("append: %v", err)
		}
		if m.ID == "" {
			t.Fatal("append did not assign an id")
		}
	}

	got := l.List(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, m := range got {
		if m.Text != msgs[i].Text || m.Role != msgs[i].Role {
			t.Fatalf("message %d out of order: %+v", i, m)
		}
	}
}

func TestAppendFillsCreated(t *testing.T) {
	l := Open(t.TempDir())

	m := &Message{Role: RoleUser, Text: "hello"}
	if err := l.Append(m); err != nil {
		t.Fatalf("append: %v", err)
	}
	if m.Created.IsZero() {
		t.Fatal("created not assigned")
	}
}
