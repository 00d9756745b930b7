package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/agenda/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: base.Wrap80("A personal schedule on the command line, with an AI co-pilot."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addUpdate(topLevel)
	addRemove(topLevel)
	addChat(topLevel)
	addVersion(topLevel)
}

// loadStore opens the configured store and performs the initial load. The
// caller owns the returned store and should Close it so pending durable
// writes drain before exit. Initialization failure is fatal and propagates.
func loadStore(ctx context.Context) (*store.Store, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	s := store.New(store.NewSQLiteBackend(cfg.DatabasePath()))
	if err := s.Initialize(ctx); err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}
