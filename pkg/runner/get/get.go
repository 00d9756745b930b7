package get

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

type Get struct {
	ShowID bool
	// Query filters by case-insensitive title substring when set.
	Query string
	// On filters to a single local calendar day when set.
	On *time.Time

	Store *store.Store
}

const layoutUS = "January 2, 2006"

func (n *Get) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not get, no store")
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	var (
		title string
		all   []*event.Event
	)
	switch {
	case n.On != nil:
		title = n.On.Format(layoutUS)
		all = n.Store.ForDate(*n.On)
	case n.Query != "":
		title = fmt.Sprintf("Matching %q", n.Query)
		all = n.Store.FindByTitle(n.Query)
	default:
		title = "Schedule"
		all = n.Store.All()
	}

	pp.TitleWithCount(title, len(all))
	pp.Events(all...)
	return nil
}
