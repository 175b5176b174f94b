package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/config"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(mood completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(mood completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func moodCompletions(toComplete string) []string {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	moods, err := cfg.Palette()
	if err != nil {
		return nil
	}
	toComplete = strings.ToLower(toComplete)
	out := make([]string, 0, len(moods))
	for _, alias := range moods.Aliases() {
		if strings.HasPrefix(alias, toComplete) {
			out = append(out, alias)
		}
	}
	return out
}
