package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "mood",
		Short: base.Wrap80("Mood journaling on the command line."),
		Long: base.Wrap80("Log how you feel, browse and edit past entries and see how your week " +
			"is going, from the shell, a terminal UI or an MCP client."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addReport(topLevel)
	addCalendar(topLevel)
	addWatch(topLevel)
	addMoods(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
