// Package info reports where moods are stored and how many there are.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/config"
)

type Info struct {
	Config     *config.Config
	Repository app.Repository
	Out        io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Out == nil {
		n.Out = os.Stdout
	}
	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	if override := os.Getenv("MOOD_CONFIG_PATH"); override != "" {
		fmt.Fprintln(n.Out, "MOOD_CONFIG_PATH found on env, using", override)
	} else {
		fmt.Fprintln(n.Out, "MOOD_CONFIG_PATH env var not set")
	}

	file := n.Config.File
	if file == "" {
		file = "none"
	}
	first, err := n.Config.FirstWeekday()
	if err != nil {
		return err
	}

	fmt.Fprintln(n.Out, "Config.file:  ", file)
	fmt.Fprintln(n.Out, "Config.path:  ", n.Config.BasePath())
	fmt.Fprintln(n.Out, "Config.driver:", n.Config.Driver())
	fmt.Fprintln(n.Out, "Locale:       ", n.Config.Language())
	fmt.Fprintln(n.Out, "Week starts:  ", first)

	if n.Repository == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	all, err := app.First(ctx, n.Repository.GetAll(ctx))
	if err != nil {
		return err
	}
	fmt.Fprintln(n.Out, "Entries:      ", len(all))
	if len(all) > 0 {
		fmt.Fprintln(n.Out, "Latest:       ", all[0].Timestamp, all[0].Mood)
	}
	return nil
}
