package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/moodlog/pkg/palette"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Report ReportTheme
	List   ListTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Mode   lipgloss.Style
	Error  lipgloss.Style
}

// ReportTheme styles the weekly summary pane.
type ReportTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Text   lipgloss.Style
	Empty  lipgloss.Style
}

// ListTheme styles the entry pane.
type ListTheme struct {
	Selected lipgloss.Style
	Prompt   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: muted,
			Mode:   header.Reverse(true).Padding(0, 1),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Report: ReportTheme{
			Frame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			Header: header,
			Text:   lipgloss.NewStyle(),
			Empty:  muted.Italic(true),
		},
		List: ListTheme{
			Selected: header,
			Prompt:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		},
	}
}

// Accent is the foreground style for a mood label. Unknown labels render
// plain.
func Accent(moods palette.Palette, label string) lipgloss.Style {
	m, ok := moods.Lookup(label)
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color().Hex()))
}
