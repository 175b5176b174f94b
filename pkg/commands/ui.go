package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/moodlog/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
mood ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			s, err := openSession(ctx, true)
			if err != nil {
				return err
			}
			defer s.Close()

			return teaui.Run(ctx, s.coord, s.moods)
		},
	}

	topLevel.AddCommand(cmd)
}
