package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/store"
)

func newService(t *testing.T, entries ...*entry.Entry) *Service {
	t.Helper()
	table := store.NewMemory()
	for _, e := range entries {
		if err := table.Insert(context.Background(), e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	p := store.New(table, nil)
	t.Cleanup(func() { p.Close() })
	return &Service{Persistence: p}
}

func first(t *testing.T, ch <-chan store.Snapshot) store.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("sequence closed")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return store.Snapshot{}
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := &Service{}
	ctx := context.Background()

	if err := svc.Insert(ctx, &entry.Entry{ID: 1}); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("insert: expected ErrNoPersistence, got %v", err)
	}
	if err := svc.Update(ctx, &entry.Entry{ID: 1}); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("update: expected ErrNoPersistence, got %v", err)
	}
	if err := svc.Delete(ctx, &entry.Entry{ID: 1}); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("delete: expected ErrNoPersistence, got %v", err)
	}
	if _, _, err := svc.GetByID(ctx, 1); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("get: expected ErrNoPersistence, got %v", err)
	}

	ch := svc.GetAll(ctx)
	if snap := <-ch; !errors.Is(snap.Err, ErrNoPersistence) {
		t.Fatalf("expected error snapshot, got %+v", snap)
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected closed sequence")
	}
	if snap := <-svc.GetBetween(ctx, "a", "z"); snap.Err == nil {
		t.Fatal("expected error snapshot from GetBetween")
	}
}

func TestServiceDelegates(t *testing.T) {
	seed := &entry.Entry{ID: 10, Mood: "Sad 😟", Timestamp: "02 Jan 2024, 09:00 AM"}
	svc := newService(t, seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	added := &entry.Entry{ID: 20, Mood: "Happy 😊", Timestamp: "03 Jan 2024, 09:00 AM"}
	if err := svc.Insert(ctx, added); err != nil {
		t.Fatalf("insert: %v", err)
	}

	snap := first(t, svc.GetAll(ctx))
	if len(snap.Entries) != 2 || snap.Entries[0].ID != 20 || snap.Entries[1].ID != 10 {
		t.Fatalf("expected newest first, got %+v", snap.Entries)
	}

	edited := seed.Clone()
	edited.Note = "better now"
	if err := svc.Update(ctx, edited); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok, err := svc.GetByID(ctx, 10)
	if err != nil || !ok || got.Note != "better now" {
		t.Fatalf("expected updated note, got %+v ok=%v err=%v", got, ok, err)
	}

	if err := svc.Delete(ctx, added); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := svc.GetByID(ctx, 20); ok {
		t.Fatal("expected deleted entry to be gone")
	}

	week := first(t, svc.GetBetween(ctx, "01 Jan 2024, 12:00 AM", "07 Jan 2024, 11:59 PM"))
	if len(week.Entries) != 1 || week.Entries[0].ID != 10 {
		t.Fatalf("unexpected range result %+v", week.Entries)
	}
}

func TestGroupByMoodUsesRawLabel(t *testing.T) {
	counts := GroupByMood([]*entry.Entry{
		{ID: 1, Mood: "Happy 😊"},
		{ID: 2, Mood: "Happy 😊"},
		{ID: 3, Mood: "Happy"},
		nil,
	})
	if counts["Happy 😊"] != 2 || counts["Happy"] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestReportRowsOrder(t *testing.T) {
	counts := map[string]int{
		"Sad 😟":   1,
		"Zesty":   2,
		"Happy 😊": 3,
		"Bored":   1,
	}
	rows := ReportRows(counts, palette.Default())

	want := []string{"Happy 😊", "Sad 😟", "Bored", "Zesty"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), rows)
	}
	for i, label := range want {
		if rows[i].Mood != label {
			t.Fatalf("row %d: expected %q, got %q", i, label, rows[i].Mood)
		}
	}
	if !rows[0].Known || rows[2].Known {
		t.Fatalf("unexpected known flags %+v", rows)
	}
	if Total(rows) != 7 {
		t.Fatalf("expected total 7, got %d", Total(rows))
	}
}

func TestFirst(t *testing.T) {
	svc := newService(t, &entry.Entry{ID: 1, Mood: "Calm 🙂", Timestamp: "01 Jan 2024, 10:00 AM"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries, err := First(ctx, svc.GetAll(ctx))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one entry, got %v %v", entries, err)
	}

	if _, err := First(ctx, (&Service{}).GetAll(ctx)); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}
