package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	limit := 10

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "keep the latest moods and this week's report on screen",
		Long:  "Redraw the latest entries and the weekly report whenever the journal changes, including changes made by other mood processes.",
		Example: `
mood watch
mood watch --limit 20
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			s, err := openSession(ctx, true)
			if err != nil {
				return err
			}
			defer s.Close()

			w := watch.Watch{
				Coordinator: s.coord,
				Printer:     s.printer(cmd.OutOrStdout()),
				Limit:       limit,
				Clear:       isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
				Out:         cmd.OutOrStdout(),
			}
			return w.Do(ctx)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", limit, "Number of entries to show; 0 shows all.")

	topLevel.AddCommand(cmd)
}
