package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/runner/get"
)

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	wo := &options.WindowOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "list logged moods, newest first",
		Example: `
mood list
mood list --last 1w -k
mood list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			since, err := wo.Since(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}

			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			g := get.Get{
				ShowID:     io.ShowID,
				JSON:       oo.JSON,
				Since:      since,
				Repository: s.repo,
				Printer:    s.printer(cmd.OutOrStdout()),
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
