package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "remove [query]",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove the first event matching a title query, or an exact id",
		Example: `
agenda remove "team sync"
agenda remove --id 1767225600000
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				eo.Query = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, _, err := loadStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			r := remove.Remove{
				ID:    io.ID,
				Query: eo.Query,
				Store: s,
			}
			return r.Do(ctx)
		},
	}

	options.AddIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
