package chat

import (
	"context"
	"errors"

	"tableflip.dev/agenda/pkg/assistant"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/transcript"
)

type Chat struct {
	// Text is the user's message, or with Raw set, text treated directly as
	// model output (useful for piping a reply from an external model run).
	Text string
	Raw  bool
	// History prints the transcript instead of sending anything.
	History bool

	Assistant *assistant.Assistant
	Log       *transcript.Log
}

func (n *Chat) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{}

	if n.History {
		if n.Log == nil {
			return errors.New("can not show history, no transcript")
		}
		for _, m := range n.Log.List(ctx) {
			pp.Chat(m.Role, m.Text)
		}
		return nil
	}

	if n.Assistant == nil {
		return errors.New("can not chat, no assistant")
	}
	if n.Text == "" {
		return errors.New("a message is required")
	}

	var (
		ex  *assistant.Exchange
		err error
	)
	if n.Raw {
		ex = n.Assistant.HandleRaw(ctx, n.Text)
	} else {
		ex, err = n.Assistant.Send(ctx, n.Text)
		if err != nil {
			return err
		}
	}

	if ex.Result.IsEvents() {
		pp.Events(ex.Result.Events...)
		return nil
	}
	pp.Message(ex.Reply)
	return nil
}
