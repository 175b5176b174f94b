package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/runner/tea/internal/theme"
)

const minBar = 10

// Model renders the weekly mood counts as horizontal bars.
type Model struct {
	start string
	end   string
	rows  []app.ReportRow
	ready bool

	width int

	moods palette.Palette
	theme theme.Theme
}

// New creates a weekly summary pane.
func New(th theme.Theme, moods palette.Palette) *Model {
	return &Model{theme: th, moods: moods}
}

// Ready reports whether any aggregate has arrived.
func (m *Model) Ready() bool {
	return m.ready
}

// SetWidth configures the usable width including the frame.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetData replaces the counts shown for the week start..end.
func (m *Model) SetData(start, end string, counts map[string]int) {
	m.start = start
	m.end = end
	m.rows = app.ReportRows(counts, m.moods)
	m.ready = true
}

// Rows returns the rows currently displayed.
func (m *Model) Rows() []app.ReportRow {
	return m.rows
}

// View returns the framed summary.
func (m *Model) View() string {
	return m.frame().Render(strings.Join(m.lines(), "\n"))
}

func (m *Model) frame() lipgloss.Style {
	f := m.theme.Report.Frame
	if m.width > 0 {
		f = f.Width(m.width)
	}
	return f
}

func (m *Model) lines() []string {
	lines := []string{m.theme.Report.Header.Render("This week")}
	if !m.ready {
		return append(lines, m.theme.Report.Empty.Render("loading…"))
	}
	lines = append(lines, m.theme.Report.Text.Render(fmt.Sprintf("%s → %s", m.start, m.end)), "")

	if len(m.rows) == 0 {
		return append(lines, m.theme.Report.Empty.Render("No moods logged this week."))
	}

	label := 0
	most := 0
	for _, r := range m.rows {
		if w := lipgloss.Width(r.Mood); w > label {
			label = w
		}
		if r.Count > most {
			most = r.Count
		}
	}
	bar := m.barWidth(label)
	for _, r := range m.rows {
		n := r.Count * bar / most
		if n == 0 && r.Count > 0 {
			n = 1
		}
		name := padRight(r.Mood, label)
		bars := theme.Accent(m.moods, r.Mood).Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%s %s %d", name, bars, r.Count))
	}
	lines = append(lines, "", m.theme.Report.Text.Render(fmt.Sprintf("%d total", app.Total(m.rows))))
	return lines
}

func (m *Model) barWidth(label int) int {
	// frame border and padding take four columns, count takes up to four.
	w := m.width - 4 - label - 6
	if w < minBar {
		w = minBar
	}
	return w
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
