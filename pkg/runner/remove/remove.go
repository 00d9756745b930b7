package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

type Remove struct {
	// ID targets an exact event; Query targets the first title substring
	// match. ID wins when both are set.
	ID    string
	Query string

	Store *store.Store
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not remove, no store")
	}
	if n.ID == "" && n.Query == "" {
		return errors.New("an id or a title query is required")
	}

	pp := printers.PrettyPrint{}
	if n.ID != "" {
		if !n.Store.DeleteByID(n.ID) {
			return fmt.Errorf("no event with id %q", n.ID)
		}
		pp.Message(fmt.Sprintf("Deleted %s.", n.ID))
		return nil
	}

	e, ok := n.Store.DeleteByTitle(n.Query)
	if !ok {
		return fmt.Errorf("no event matching %q", n.Query)
	}
	pp.Message(fmt.Sprintf("Deleted %q.", e.Title))
	return nil
}
