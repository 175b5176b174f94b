package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server on stdio",
		Long: `Launch an MCP server over stdin/stdout that lets an assistant log moods,
read and edit entries, and fetch the weekly report.`,
		Example: `
mood mcp
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

			runner := mcp.Runner{
				Coordinator: s.coord,
				Moods:       s.moods,
				Name:        "mood",
				Version:     version,
			}
			return runner.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
