package add

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

type Add struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
	ShowID      bool

	Store *store.Store
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not add, no store")
	}
	if n.Title == "" {
		return errors.New("a title is required")
	}
	// start <= end is not enforced anywhere in the store; an event may
	// legitimately be entered backwards and fixed up later.
	e := n.Store.Create(n.Title, n.Start, n.End, n.Description)

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title(e.Title)
	pp.Events(e)
	return nil
}
