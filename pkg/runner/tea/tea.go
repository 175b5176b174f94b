// Package teaui is the full-screen mood journal.
package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

// Run launches the Bubble Tea UI and blocks until the user quits. Writes
// issued from the UI are applied before Run returns.
func Run(ctx context.Context, coord *viewmodel.Coordinator, moods palette.Palette) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, coord, moods), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return coord.Flush(ctx)
}
