// Package assistant wires the language-model boundary to the command engine:
// raw model text in, parse-then-dispatch, transcript recording throughout.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/agenda/pkg/command"
	"tableflip.dev/agenda/pkg/dispatch"
	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/transcript"
)

// Model produces raw text for a prompt. The inference runtime behind it is an
// external collaborator; it may be slow and its output is untrusted.
type Model interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(ctx context.Context, prompt string) (string, error)

func (f ModelFunc) Reply(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Exchange is the outcome of one user turn.
type Exchange struct {
	// Raw is the unprocessed model output.
	Raw string
	// Command is set when Raw contained a structured command.
	Command *command.Command
	// Result is the dispatch outcome; meaningful only when Command is set.
	Result dispatch.Result
	// Reply is what should be shown in the chat: either the dispatch
	// confirmation or the model's conversational text.
	Reply string
}

type Assistant struct {
	Model      Model
	Store      *store.Store
	Log        *transcript.Log
	dispatcher *dispatch.Dispatcher
}

func New(model Model, s *store.Store, log *transcript.Log) *Assistant {
	return &Assistant{
		Model:      model,
		Store:      s,
		Log:        log,
		dispatcher: dispatch.New(s),
	}
}

// Send records the user's message, obtains the model's raw reply, and
// processes it. The model call is the only suspension point; it may take
// seconds.
func (a *Assistant) Send(ctx context.Context, text string) (*Exchange, error) {
	if a.Model == nil {
		return nil, errors.New("assistant: no model configured")
	}
	a.record(transcript.RoleUser, text)

	raw, err := a.Model.Reply(ctx, a.Prompt(text))
	if err != nil {
		return nil, fmt.Errorf("assistant: model call: %w", err)
	}
	return a.HandleRaw(ctx, raw), nil
}

// HandleRaw runs the command engine over raw model output. Text that matches
// no command is treated as plain conversation, never as an error.
func (a *Assistant) HandleRaw(ctx context.Context, raw string) *Exchange {
	ex := &Exchange{Raw: raw, Reply: raw}

	cmd, ok := command.Parse(raw)
	if ok {
		ex.Command = cmd
		ex.Result = a.dispatcher.Dispatch(ctx, cmd)
		if ex.Result.IsEvents() {
			ex.Reply = describeEvents(ex.Result.Events)
		} else {
			ex.Reply = ex.Result.Message
		}
	}

	a.record(transcript.RoleAssistant, ex.Reply)
	return ex
}

// Prompt assembles the instruction block handed to the model: the command
// grammar, the current schedule, and the user's message.
func (a *Assistant) Prompt(text string) string {
	var b strings.Builder
	b.WriteString("You manage a personal calendar. To act on it, reply with exactly one command:\n")
	b.WriteString(`  ACTION:CREATE_EVENT(title="...", startTime="2006-01-02T15:04:05", endTime="...", description="...")` + "\n")
	b.WriteString(`  ACTION:READ_EVENTS(title="...")` + "\n")
	b.WriteString(`  ACTION:UPDATE_EVENT(title="...", updates="{\"title\":\"...\"}")` + "\n")
	b.WriteString(`  ACTION:DELETE_EVENT(title="...")` + "\n")
	b.WriteString("Otherwise reply conversationally.\n\n")

	if a.Store != nil {
		all := a.Store.All()
		if len(all) > 0 {
			b.WriteString("Current schedule:\n")
			for _, e := range all {
				b.WriteString("  " + e.String() + "\n")
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("User: " + text)
	return b.String()
}

func (a *Assistant) record(role, text string) {
	if a.Log == nil {
		return
	}
	if err := a.Log.Append(&transcript.Message{Role: role, Text: text}); err != nil {
		fmt.Fprintf(os.Stderr, "assistant: transcript append: %v\n", err)
	}
}

func describeEvents(events []*event.Event) string {
	if len(events) == 0 {
		return "No events found."
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}
