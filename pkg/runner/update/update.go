package update

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

type Update struct {
	// ID targets an exact event; Query targets the first title substring
	// match. ID wins when both are set.
	ID     string
	Query  string
	Patch  event.Patch
	ShowID bool

	Store *store.Store
}

func (n *Update) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not update, no store")
	}
	if n.ID == "" && n.Query == "" {
		return errors.New("an id or a title query is required")
	}
	if n.Patch.Empty() {
		return errors.New("nothing to update")
	}

	var (
		e  *event.Event
		ok bool
	)
	if n.ID != "" {
		e, ok = n.Store.UpdateByID(n.ID, n.Patch)
		if !ok {
			return fmt.Errorf("no event with id %q", n.ID)
		}
	} else {
		e, ok = n.Store.UpdateByTitle(n.Query, n.Patch)
		if !ok {
			return fmt.Errorf("no event matching %q", n.Query)
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title("Updated")
	pp.Events(e)
	return nil
}
