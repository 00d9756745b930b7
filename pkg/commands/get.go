package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get [query]",
		Short: "Get all or a filtered set of events",
		Example: `
agenda get
agenda get lunch
agenda get --on today
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				eo.Query = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := eo.GetOn()
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, _, err := loadStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			r := get.Get{
				ShowID: io.ShowID,
				Query:  eo.Query,
				On:     on,
				Store:  s,
			}
			return r.Do(ctx)
		},
	}

	options.AddOnArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
