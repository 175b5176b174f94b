package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "show one entry",
		Example: `
mood show 1717581600000
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}

			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			e, ok, err := s.repo.GetByID(cmd.Context(), id)
			if err != nil {
				return oo.HandleError(err)
			}
			if !ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "entry %d not found\n", id)
				return nil
			}
			if oo.JSON {
				return oo.Print(e)
			}
			pp := s.printer(cmd.OutOrStdout())
			pp.ShowID = true
			pp.Entry(e)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
