package options

import (
	"github.com/spf13/cobra"
)

// EditOptions carries replacement values for an entry.
type EditOptions struct {
	Mood string
	Note string
}

func AddEditArgs(cmd *cobra.Command, o *EditOptions) {
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		"Replace the mood, by label, name or number.")
	cmd.Flags().StringVarP(&o.Note, "note", "n", "",
		"Replace the note.")
}

// NoteSet reports whether --note was given, even as an empty string.
func NoteSet(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("note")
}
