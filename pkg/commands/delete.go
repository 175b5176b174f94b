package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/snake"
)

func addDelete(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "delete an entry",
		Long:    "Delete an entry. Deleting an id that does not exist does nothing.",
		Example: `
mood delete 1717581600000
mood delete -i 1717581600000
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := openSession(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()

			e, ok, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				e = &entry.Entry{ID: id}
			}

			if ok && i.Interactive {
				yes, err := snake.Confirm(cmd, fmt.Sprintf("Delete %s", e))
				if err != nil {
					return err
				}
				if !yes {
					return nil
				}
			}

			s.coord.DeleteEntry(e)
			if err := s.settle(ctx); err != nil {
				return err
			}
			if ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", e)
			}
			return nil
		},
	}

	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
