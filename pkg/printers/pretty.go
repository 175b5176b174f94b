package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/palette"
)

const (
	defaultWidth = 80
	barWidth     = 30
)

// PrettyPrint renders entries and reports for the terminal.
type PrettyPrint struct {
	ShowID bool
	Moods  palette.Palette
	// Width bounds wrapped notes; zero means 80 columns.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

// accent colours label with its palette accent when the output supports it.
func (pp *PrettyPrint) accent(label string) string {
	return pp.accentText(label, label)
}

func (pp *PrettyPrint) accentText(label, text string) string {
	m, ok := pp.Moods.Lookup(label)
	if !ok {
		return text
	}
	o := termenv.NewOutput(pp.out())
	return o.String(text).Foreground(o.Color(m.Accent)).String()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints one row per entry in the order given.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width() / 2)

	for _, e := range entries {
		ts, mood, note := e.Row()
		if pp.ShowID {
			tbl.AddRow(y.Sprint(strconv.FormatInt(e.ID, 10)), ts, pp.accent(mood), note)
		} else {
			tbl.AddRow(ts, pp.accent(mood), note)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Entry prints every field of a single entry.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	l := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(l.Sprint("id"), strconv.FormatInt(e.ID, 10))
	tbl.AddRow(l.Sprint("time"), e.Timestamp)
	tbl.AddRow(l.Sprint("mood"), pp.accent(e.Mood))
	_, _ = fmt.Fprintln(pp.out(), tbl)

	if strings.TrimSpace(e.Note) == "" {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "no note")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(e.Note, pp.width()))
}

// Week prints a horizontal bar per mood between start and end.
func (pp *PrettyPrint) Week(start, end string, rows []app.ReportRow) {
	pp.Title(fmt.Sprintf("Week · %s → %s", start, end))

	total := app.Total(rows)
	if total == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no moods logged this week\n\n")
		return
	}

	most := 0
	for _, r := range rows {
		if r.Count > most {
			most = r.Count
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		n := r.Count * barWidth / most
		if n == 0 {
			n = 1
		}
		bar := pp.accentText(r.Mood, strings.Repeat("█", n))
		tbl.AddRow(pp.accent(r.Mood), bar, strconv.Itoa(r.Count))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)

	c := color.New(color.Faint)
	_, _ = c.Fprintf(pp.out(), "%d total\n\n", total)
}

// Palette lists the configured moods with the aliases the CLI accepts.
func (pp *PrettyPrint) Palette() {
	tbl := uitable.New()
	tbl.Separator = "  "
	f := color.New(color.Faint)
	for i, m := range pp.Moods {
		tbl.AddRow(f.Sprint(strconv.Itoa(i+1)), pp.accent(m.Label), m.Name(), f.Sprint(m.Accent))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
