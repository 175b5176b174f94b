// Package add records a new mood entry.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

// Add logs Mood now, then applies Note when set.
type Add struct {
	Mood        string
	Note        string
	Coordinator *viewmodel.Coordinator
	Out         io.Writer

	// Added is filled once Do succeeds.
	Added *entry.Entry
}

func (n *Add) Do(ctx context.Context) error {
	if n.Coordinator == nil {
		return errors.New("can not add, no coordinator")
	}
	if n.Out == nil {
		n.Out = color.Output
	}

	e := n.Coordinator.AddEntry(n.Mood)
	if n.Note != "" {
		e.Note = n.Note
		n.Coordinator.UpdateEntry(e)
	}
	if err := n.Coordinator.Flush(ctx); err != nil {
		return err
	}

	select {
	case err := <-n.Coordinator.Errors():
		return err
	default:
	}

	n.Added = e
	_, _ = fmt.Fprintf(n.Out, "logged %s at %s\n", e.Mood, e.Timestamp)
	return nil
}
