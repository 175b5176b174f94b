package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/runner/add"
	"tableflip.dev/moodlog/pkg/snake"
)

func addAdd(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	note := ""

	cmd := &cobra.Command{
		Use:   "add [mood]",
		Short: "log how you feel right now",
		Long:  moodsLong("Log a mood stamped with the current time."),
		Example: `
mood add happy
mood add 2 --note "long walk"
mood add -i
`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return moodCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			s, err := openSession(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()

			var mood palette.Mood
			if i.Interactive || len(args) == 0 {
				if mood, err = snake.PromptMood(cmd, s.moods); err != nil {
					return err
				}
				if i.Interactive && note == "" {
					if note, err = snake.PromptNote(cmd, ""); err != nil {
						return err
					}
				}
			} else if mood, err = s.moods.ForAlias(strings.Join(args, " ")); err != nil {
				return err
			}

			a := add.Add{
				Mood:        mood.Label,
				Note:        strings.TrimSpace(note),
				Coordinator: s.coord,
				Out:         cmd.OutOrStdout(),
			}
			return a.Do(ctx)
		},
	}

	options.InteractiveArgs(cmd, i)
	cmd.Flags().StringVarP(&note, "note", "n", "", "Attach a note to the entry.")

	topLevel.AddCommand(cmd)
}

// moodsLong appends the default palette and its aliases to a description.
func moodsLong(intro string) string {
	long := strings.Builder{}
	long.WriteString(intro + "\n\n")
	long.WriteString("Moods and aliases:\n")
	for i, m := range palette.Default() {
		long.WriteString(fmt.Sprintf("%d, %s: %s\n", i+1, m.Name(), m.Label))
	}
	return long.String()
}
