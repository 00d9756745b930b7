// Package dispatch executes parsed commands against the event store. Every
// outcome, including validation failures and missing targets, is encoded in
// the returned Result; dispatching never returns an error to the caller.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/agenda/pkg/command"
	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/store"
)

// Result is either a human-readable status message or a list of events.
// Callers discriminate on Events: non-nil means a query result, nil means a
// message.
type Result struct {
	Message string
	Events  []*event.Event
}

// IsEvents reports whether the result carries an event list.
func (r Result) IsEvents() bool {
	return r.Events != nil
}

// Dispatcher maps structured commands onto store operations. It holds no
// state across calls and performs no persistence of its own.
type Dispatcher struct {
	Store *store.Store
}

func New(s *store.Store) *Dispatcher {
	return &Dispatcher{Store: s}
}

func (d *Dispatcher) Dispatch(ctx context.Context, cmd *command.Command) Result {
	switch cmd.Name {
	case command.CreateEvent:
		return d.create(cmd.Params)
	case command.ReadEvents:
		return d.read(cmd.Params)
	case command.UpdateEvent:
		return d.update(cmd.Params)
	case command.DeleteEvent:
		return d.delete(cmd.Params)
	default:
		return Result{Message: fmt.Sprintf("Unknown command %q.", cmd.Name)}
	}
}

func (d *Dispatcher) create(params map[string]string) Result {
	missing := make([]string, 0, 3)
	for _, key := range []string{"title", "startTime", "endTime"} {
		if params[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Result{Message: fmt.Sprintf("Cannot create event: missing %s.", strings.Join(missing, ", "))}
	}

	start, err := parseTime(params["startTime"])
	if err != nil {
		return Result{Message: fmt.Sprintf("Cannot create event: bad startTime %q.", params["startTime"])}
	}
	end, err := parseTime(params["endTime"])
	if err != nil {
		return Result{Message: fmt.Sprintf("Cannot create event: bad endTime %q.", params["endTime"])}
	}

	e := d.Store.Create(params["title"], start, end, params["description"])
	return Result{Message: fmt.Sprintf("Created %q.", e.Title)}
}

func (d *Dispatcher) read(params map[string]string) Result {
	title := params["title"]
	if title == "" {
		return Result{Events: d.Store.All()}
	}
	return Result{Events: d.Store.FindByTitle(title)}
}

func (d *Dispatcher) update(params map[string]string) Result {
	title := params["title"]
	if title == "" {
		return Result{Message: "Cannot update event: missing title."}
	}
	raw := params["updates"]
	if raw == "" {
		return Result{Message: "Cannot update event: missing updates."}
	}

	fields := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Result{Message: fmt.Sprintf("Cannot update event: bad updates payload: %v.", err)}
	}

	patch, err := buildPatch(fields)
	if err != nil {
		return Result{Message: fmt.Sprintf("Cannot update event: %v.", err)}
	}

	if _, ok := d.Store.UpdateByTitle(title, patch); !ok {
		return Result{Message: fmt.Sprintf("No event matching %q.", title)}
	}
	return Result{Message: fmt.Sprintf("Updated %q.", title)}
}

func (d *Dispatcher) delete(params map[string]string) Result {
	title := params["title"]
	if title == "" {
		return Result{Message: "Cannot delete event: missing title."}
	}
	if _, ok := d.Store.DeleteByTitle(title); !ok {
		return Result{Message: fmt.Sprintf("No event matching %q.", title)}
	}
	return Result{Message: fmt.Sprintf("Deleted %q.", title)}
}

func buildPatch(fields map[string]string) (event.Patch, error) {
	var p event.Patch
	for key, value := range fields {
		switch key {
		case "title":
			v := value
			p.Title = &v
		case "description":
			v := value
			p.Description = &v
		case "startTime":
			t, err := parseTime(value)
			if err != nil {
				return event.Patch{}, fmt.Errorf("bad startTime %q", value)
			}
			p.Start = &t
		case "endTime":
			t, err := parseTime(value)
			if err != nil {
				return event.Patch{}, fmt.Errorf("bad endTime %q", value)
			}
			p.End = &t
		}
		// Unrecognized fields are ignored; the model is free to be noisy.
	}
	return p, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTime accepts RFC3339, a bare local datetime, a bare local date, or an
// all-digit epoch-millisecond value.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for i, layout := range timeLayouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}
