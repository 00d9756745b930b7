package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/agenda/pkg/assistant"
	"tableflip.dev/agenda/pkg/runner/chat"
	"tableflip.dev/agenda/pkg/transcript"
)

func addChat(topLevel *cobra.Command) {
	raw := false
	history := false

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Manage the schedule in natural language",
		Long: `Sends the message to the configured model and applies any command it
replies with. Set "model" in the config to the command line of a model
wrapper (prompt on stdin, reply on stdout). With --raw the message itself is
treated as model output, which is handy for piping in a reply produced
elsewhere.`,
		Example: `
agenda chat "clear my friday lunch"
agenda chat --raw 'ACTION:READ_EVENTS(title="")'
agenda chat --history
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cfg, err := loadStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			log := transcript.Open(cfg.ChatPath())

			var model assistant.Model
			if line := viper.GetStringSlice("model"); len(line) > 0 {
				model = &assistant.ExecModel{Command: line[0], Args: line[1:]}
			}

			r := chat.Chat{
				Text:      strings.Join(args, " "),
				Raw:       raw,
				History:   history,
				Assistant: assistant.New(model, s, log),
				Log:       log,
			}
			return r.Do(ctx)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false,
		"Treat the message as raw model output instead of calling the model.")
	cmd.Flags().BoolVar(&history, "history", false,
		"Print the chat transcript.")

	topLevel.AddCommand(cmd)
}
