package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/snake"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EditOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "change the mood or note of an entry",
		Long: moodsLong("Change the mood or note of an entry. The id and timestamp are kept.\n" +
			"Editing an id that does not exist does nothing."),
		Example: `
mood edit 1717581600000 --mood calm
mood edit 1717581600000 --note "slept badly"
mood edit 1717581600000 -i
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return err
			}
			if !i.Interactive && eo.Mood == "" && !options.NoteSet(cmd) {
				return errors.New("nothing to change, set --mood, --note or -i")
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
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "entry %d not found\n", id)
				return nil
			}

			if i.Interactive {
				mood, err := snake.PromptMood(cmd, s.moods)
				if err != nil {
					return err
				}
				e.Mood = mood.Label
				if e.Note, err = snake.PromptNote(cmd, e.Note); err != nil {
					return err
				}
			}
			if eo.Mood != "" {
				mood, err := s.moods.ForAlias(eo.Mood)
				if err != nil {
					return err
				}
				e.Mood = mood.Label
			}
			if options.NoteSet(cmd) {
				e.Note = strings.TrimSpace(eo.Note)
			}

			s.coord.UpdateEntry(e)
			if err := s.settle(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", e)
			return nil
		},
	}

	options.AddEditArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
