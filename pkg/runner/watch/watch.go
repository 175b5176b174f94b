// Package watch keeps the latest entries and the weekly summary on screen,
// redrawing whenever the journal changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/printers"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

const clearScreen = "\033[H\033[2J"

type Watch struct {
	Coordinator *viewmodel.Coordinator
	Printer     *printers.PrettyPrint
	// Limit caps the entries shown; zero shows all.
	Limit int
	// Clear redraws in place instead of appending.
	Clear bool
	Out   io.Writer
}

// Do redraws until ctx is done or a sequence fails.
func (n *Watch) Do(ctx context.Context) error {
	if n.Coordinator == nil {
		return errors.New("can not watch, no coordinator")
	}
	if n.Printer == nil {
		n.Printer = &printers.PrettyPrint{}
	}
	if n.Out != nil {
		n.Printer.Out = n.Out
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := n.Coordinator.Entries(ctx)
	weekly := n.Coordinator.WeeklyAggregate(ctx)

	var (
		latest []*entry.Entry
		week   *viewmodel.Aggregate
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-entries:
			if !ok {
				return closed(ctx)
			}
			if snap.Err != nil {
				return snap.Err
			}
			latest = snap.Entries
		case agg, ok := <-weekly:
			if !ok {
				return closed(ctx)
			}
			if agg.Err != nil {
				return agg.Err
			}
			week = &agg
		}
		n.render(latest, week)
	}
}

func (n *Watch) render(latest []*entry.Entry, week *viewmodel.Aggregate) {
	w := n.Printer.Out
	if n.Clear && w != nil {
		_, _ = fmt.Fprint(w, clearScreen)
	}
	if n.Limit > 0 && len(latest) > n.Limit {
		latest = latest[:n.Limit]
	}
	n.Printer.TitleWithCount("Latest", len(latest))
	n.Printer.Entries(latest...)
	if week != nil {
		n.Printer.Week(week.Start, week.End, app.ReportRows(week.Counts, n.Printer.Moods))
	}
}

func closed(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	return errors.New("watch: sequence closed")
}
