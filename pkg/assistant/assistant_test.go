package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/transcript"
)

func noon() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
}

func TestSendAppliesCommandFromModel(t *testing.T) {
	s := store.New(nil)
	log := transcript.Open(t.TempDir())

	model := ModelFunc(func(ctx context.Context, prompt string) (string, error) {
		if !strings.Contains(prompt, "User: book lunch tomorrow") {
			t.Fatalf("prompt missing user text: %q", prompt)
		}
		return `ACTION:CREATE_EVENT(title="Lunch", startTime="2026-03-02T12:00:00", endTime="2026-03-02T13:00:00")`, nil
	})

	a := New(model, s, log)
	ex, err := a.Send(context.Background(), "book lunch tomorrow")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if ex.Command == nil || ex.Command.Name != "CREATE_EVENT" {
		t.Fatalf("command not recognized: %+v", ex)
	}
	if !strings.Contains(ex.Reply, "Lunch") {
		t.Fatalf("reply should confirm the event: %q", ex.Reply)
	}
	if len(s.All()) != 1 {
		t.Fatal("store not mutated")
	}

	msgs := log.List(context.Background())
	if len(msgs) != 2 {
		t.Fatalf("expected user and assistant messages, got %d", len(msgs))
	}
	if msgs[0].Role != transcript.RoleUser || msgs[1].Role != transcript.RoleAssistant {
		t.Fatalf("transcript roles wrong: %+v", msgs)
	}
}

func TestSendPassesThroughConversation(t *testing.T) {
	s := store.New(nil)
	model := ModelFunc(func(ctx context.Context, prompt string) (string, error) {
		return "Hello there, how can I help?", nil
	})

	a := New(model, s, nil)
	ex, err := a.Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if ex.Command != nil {
		t.Fatal("plain conversation misread as a command")
	}
	if ex.Reply != "Hello there, how can I help?" {
		t.Fatalf("reply = %q", ex.Reply)
	}
	if len(s.All()) != 0 {
		t.Fatal("store mutated by conversation")
	}
}

func TestHandleRawReadBackAsEventList(t *testing.T) {
	s := store.New(nil)
	s.Create("Lunch", noon(), noon().Add(time.Hour), "")

	a := New(nil, s, nil)
	ex := a.HandleRaw(context.Background(), `ACTION:READ_EVENTS(title="")`)
	if !ex.Result.IsEvents() || len(ex.Result.Events) != 1 {
		t.Fatalf("got %+v", ex.Result)
	}
	if !strings.Contains(ex.Reply, "Lunch") {
		t.Fatalf("reply should describe the list: %q", ex.Reply)
	}
}

func TestSendWithoutModel(t *testing.T) {
	a := New(nil, store.New(nil), nil)
	if _, err := a.Send(context.Background(), "hi"); err == nil {
		t.Fatal("expected an error without a model")
	}
}
