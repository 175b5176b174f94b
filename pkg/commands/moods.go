package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/config"
	"tableflip.dev/moodlog/pkg/printers"
)

func addMoods(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "moods",
		Short: "list the moods you can log",
		Example: `
mood moods
mood moods --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			moods, err := cfg.Palette()
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(moods)
			}
			pp := &printers.PrettyPrint{Moods: moods, Out: cmd.OutOrStdout()}
			pp.Palette()
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
