package add

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/moodlog/pkg/app"
	"tableflip.dev/moodlog/pkg/logging"
	"tableflip.dev/moodlog/pkg/store"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

func TestAddWithNote(t *testing.T) {
	p := store.New(store.NewMemory(), logging.Discard())
	defer p.Close()
	svc := &app.Service{Persistence: p}
	c := viewmodel.New(svc, viewmodel.WithLogger(logging.Discard()))
	defer c.Close()

	var out bytes.Buffer
	a := &Add{Mood: "Calm 🙂", Note: "walked the dog", Coordinator: c, Out: &out}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, ok, err := svc.GetByID(context.Background(), a.Added.ID)
	if err != nil || !ok {
		t.Fatalf("expected stored entry, ok=%v err=%v", ok, err)
	}
	if got.Mood != "Calm 🙂" || got.Note != "walked the dog" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if !strings.Contains(out.String(), "logged Calm 🙂") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestAddReportsFailure(t *testing.T) {
	c := viewmodel.New(&app.Service{}, viewmodel.WithLogger(logging.Discard()))
	defer c.Close()

	a := &Add{Mood: "Sad 😟", Coordinator: c, Out: &bytes.Buffer{}}
	if err := a.Do(context.Background()); err == nil {
		t.Fatal("expected error without persistence")
	}
}
