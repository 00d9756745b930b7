package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/commands/options"
	"tableflip.dev/agenda/pkg/event"
	"tableflip.dev/agenda/pkg/runner/update"
)

func addUpdate(topLevel *cobra.Command) {
	eo := &options.EventOptions{}
	io := &options.IDOptions{}
	title := ""

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields on an existing event",
		Example: `
agenda update --query lunch --title "Lunch with Bob"
agenda update --id 1767225600000 --start="2026-03-01T12:30"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch event.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &eo.Description
			}
			if eo.StartString != "" {
				start, err := eo.GetStart()
				if err != nil {
					return err
				}
				patch.Start = &start
			}
			if eo.EndString != "" {
				end, err := eo.GetEnd()
				if err != nil {
					return err
				}
				patch.End = &end
			}

			ctx := context.Background()
			s, _, err := loadStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			r := update.Update{
				ID:     io.ID,
				Query:  eo.Query,
				Patch:  patch,
				ShowID: io.ShowID,
				Store:  s,
			}
			return r.Do(ctx)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Replace the title.")
	options.AddEventFieldArgs(cmd, eo)
	options.AddQueryArgs(cmd, eo)
	options.AddIDArgs(cmd, io)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
