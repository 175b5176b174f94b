package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/config"
	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/logging"
	"tableflip.dev/moodlog/pkg/store"
)

func TestInfo(t *testing.T) {
	table := store.NewMemory()
	_ = table.Insert(context.Background(), &entry.Entry{ID: 1, Mood: "Calm 🙂", Timestamp: "05 Jun 2024, 10:00 AM"})
	p := store.New(table, logging.Discard())
	defer p.Close()

	var out bytes.Buffer
	n := &Info{
		Config:     &config.Config{Path: "/tmp/moods", Store: config.DriverMemory, WeekStart: "monday"},
		Repository: &app.Service{Persistence: p},
		Out:        &out,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}

	for _, want := range []string{"/tmp/moods", "memory", "Monday", "Entries:       1", "Calm 🙂"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}
