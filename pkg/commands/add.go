package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event to the schedule",
		Example: `
agenda add "Lunch with Bob" --start="2026-03-01T12:00" --end="2026-03-01T13:00"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("a title is required")
			}
			eo.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := eo.GetStart()
			if err != nil {
				return err
			}
			end, err := eo.GetEnd()
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, _, err := loadStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			r := add.Add{
				Title:       eo.Title,
				Start:       start,
				End:         end,
				Description: eo.Description,
				ShowID:      io.ShowID,
				Store:       s,
			}
			return r.Do(ctx)
		},
	}

	options.AddEventFieldArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
