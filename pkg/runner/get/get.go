// Package get lists stored mood entries.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/printers"
)

type Get struct {
	ShowID bool
	JSON   bool
	// Since drops entries logged before it; zero keeps everything.
	Since      time.Time
	Repository app.Repository
	Printer    *printers.PrettyPrint
	Out        io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Repository == nil {
		return errors.New("can not get, no repository")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	all, err := app.First(ctx, n.Repository.GetAll(ctx))
	if err != nil {
		return err
	}
	all = Filter(all, n.Since)

	if n.Out == nil {
		n.Out = os.Stdout
	}

	if n.JSON {
		b, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(n.Out, string(b))
		return err
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.ShowID = n.ShowID
	pp.TitleWithCount("Moods", len(all))
	pp.Entries(all...)
	return nil
}

// Filter keeps entries whose timestamp is at or after since. Timestamps that
// do not parse are kept.
func Filter(all []*entry.Entry, since time.Time) []*entry.Entry {
	if since.IsZero() {
		return all
	}
	kept := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		at, err := entry.ParseTime(e.Timestamp)
		if err == nil && at.Before(since) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
