package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/timeutil"
)

// WindowOptions limits output to recent entries.
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", "",
		"Only show entries from this window, for example 3d or 1w2d.")
}

// Since returns the cutoff, or the zero time when no window is set.
func (o *WindowOptions) Since(now time.Time) (time.Time, error) {
	if o.Last == "" {
		return time.Time{}, nil
	}
	d, _, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
