package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/app"
)

var monthLayouts = []string{"2006-01", "Jan 2006", "January 2006"}

func addCalendar(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "calendar [month]",
		Aliases: []string{"cal"},
		Short:   "show a month with the moods logged each day",
		Example: `
mood calendar
mood calendar 2024-06
mood calendar "Jun 2024"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			month := time.Now()
			if len(args) == 1 {
				var err error
				if month, err = parseMonth(args[0]); err != nil {
					return err
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			s, err := openSession(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()

			all, err := app.First(ctx, s.coord.Entries(ctx))
			if err != nil {
				return err
			}
			s.printer(cmd.OutOrStdout()).Month(month, s.first, all...)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func parseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range monthLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month %q, use YYYY-MM or \"Jan 2006\"", s)
}
