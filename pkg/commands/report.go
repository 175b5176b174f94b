package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/commands/options"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

type weeklyReport struct {
	Start string          `json:"start"`
	End   string          `json:"end"`
	Rows  []app.ReportRow `json:"rows"`
	Total int             `json:"total"`
}

func addReport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "count this week's moods",
		Long:  "Count entries per mood for the current week. The week starts on the locale's first day, or week_start when configured.",
		Example: `
mood report
mood report --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			s, err := openSession(ctx, false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			agg, err := firstAggregate(ctx, s.coord)
			if err != nil {
				return oo.HandleError(err)
			}
			rows := app.ReportRows(agg.Counts, s.moods)

			if oo.JSON {
				b, err := json.MarshalIndent(weeklyReport{
					Start: agg.Start,
					End:   agg.End,
					Rows:  rows,
					Total: app.Total(rows),
				}, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			s.printer(cmd.OutOrStdout()).Week(agg.Start, agg.End, rows)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func firstAggregate(ctx context.Context, coord *viewmodel.Coordinator) (viewmodel.Aggregate, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	select {
	case <-ctx.Done():
		return viewmodel.Aggregate{}, ctx.Err()
	case agg, ok := <-coord.WeeklyAggregate(ctx):
		if !ok {
			return viewmodel.Aggregate{}, errors.New("weekly aggregate closed")
		}
		return agg, agg.Err
	}
}
