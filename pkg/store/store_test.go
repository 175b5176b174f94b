package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/entry"
)

func next(t *testing.T, ch <-chan Snapshot) Snapshot {
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
	return Snapshot{}
}

func expectQuiet(t *testing.T, ch <-chan Snapshot) {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if ok {
			t.Fatalf("unexpected snapshot %+v", snap)
		}
		t.Fatal("sequence closed")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestGetAllEmitsInitialAndAfterInsert(t *testing.T) {
	p := New(NewMemory(), nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seq := p.GetAll(ctx)
	if snap := next(t, seq); snap.Err != nil || len(snap.Entries) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", snap)
	}

	e := &entry.Entry{ID: 1, Mood: "Happy 😊", Timestamp: "01 Jan 2024, 10:00 AM"}
	if err := p.Insert(ctx, e); err != nil {
		t.Fatalf("insert: %v", err)
	}

	snap := next(t, seq)
	if len(snap.Entries) != 1 || !snap.Entries[0].Equal(e) {
		t.Fatalf("expected inserted entry, got %+v", snap.Entries)
	}
}

func TestMissingRowMutationsDoNotNotify(t *testing.T) {
	p := New(NewMemory(), nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seq := p.GetAll(ctx)
	next(t, seq)

	ghost := &entry.Entry{ID: 99, Mood: "Sad 😟"}
	if err := p.Update(ctx, ghost); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := p.Delete(ctx, ghost); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectQuiet(t, seq)

	if _, ok, err := p.GetByID(ctx, 99); err != nil || ok {
		t.Fatalf("expected absent entry, got ok=%v err=%v", ok, err)
	}
}

func TestGetBetweenFollowsWrites(t *testing.T) {
	p := New(NewMemory(), nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seq := p.GetBetween(ctx, "01 Jan 2024, 12:00 AM", "07 Jan 2024, 11:59 PM")
	next(t, seq)

	inside := &entry.Entry{ID: 1, Mood: "Calm 🙂", Timestamp: "03 Jan 2024, 10:00 AM"}
	outside := &entry.Entry{ID: 2, Mood: "Calm 🙂", Timestamp: "09 Jan 2024, 10:00 AM"}
	for _, e := range []*entry.Entry{inside, outside} {
		if err := p.Insert(ctx, e); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	deadline := time.After(2 * time.Second)
	for {
		var snap Snapshot
		select {
		case snap = <-seq:
		case <-deadline:
			t.Fatal("timed out waiting for range snapshot")
		}
		if len(snap.Entries) == 1 && snap.Entries[0].ID == 1 {
			return
		}
		if len(snap.Entries) > 1 {
			t.Fatalf("range leaked entries: %+v", snap.Entries)
		}
	}
}

func TestSequenceClosesOnCancel(t *testing.T) {
	p := New(NewMemory(), nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	seq := p.GetAll(ctx)
	next(t, seq)
	cancel()

	select {
	case _, ok := <-seq:
		if ok {
			// a pending refresh may still be buffered
			if _, ok := <-seq; ok {
				t.Fatal("expected closed sequence")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sequence not closed after cancel")
	}

	deadline := time.Now().Add(2 * time.Second)
	for p.Changes().Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber not removed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type failingTable struct {
	*Memory
}

var errBroken = errors.New("disk on fire")

func (failingTable) ListAll(context.Context) ([]*entry.Entry, error) {
	return nil, errBroken
}

func TestSequenceErrorTerminates(t *testing.T) {
	p := New(failingTable{NewMemory()}, nil)
	defer p.Close()

	seq := p.GetAll(context.Background())
	snap := next(t, seq)
	if !errors.Is(snap.Err, errBroken) {
		t.Fatalf("expected error snapshot, got %+v", snap)
	}
	select {
	case _, ok := <-seq:
		if ok {
			t.Fatal("expected sequence to close after error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sequence not closed after error")
	}
}

func TestInsertDuplicateDoesNotNotify(t *testing.T) {
	p := New(NewMemory(), nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := &entry.Entry{ID: 1, Mood: "Happy 😊", Timestamp: "01 Jan 2024, 10:00 AM"}
	if err := p.Insert(ctx, e); err != nil {
		t.Fatalf("insert: %v", err)
	}

	seq := p.GetAll(ctx)
	next(t, seq)

	if err := p.Insert(ctx, e); !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	expectQuiet(t, seq)
}

func TestCloseEndsSequences(t *testing.T) {
	p := New(NewMemory(), nil)
	seq := p.GetAll(context.Background())
	next(t, seq)

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case _, ok := <-seq:
		if ok {
			t.Fatal("expected closed sequence")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("sequence not closed after Close")
	}
}
