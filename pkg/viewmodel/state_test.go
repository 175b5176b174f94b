package viewmodel

import (
	"context"
	"testing"
	"time"
)

func TestStateWatchStartsWithCurrent(t *testing.T) {
	s := NewState("a")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx)
	if got := <-ch; got != "a" {
		t.Fatalf("expected current value first, got %q", got)
	}

	s.Set("b")
	s.Set("c")

	deadline := time.After(time.Second)
	for {
		select {
		case got := <-ch:
			if got == "c" {
				if s.Get() != "c" {
					t.Fatalf("Get out of sync: %q", s.Get())
				}
				return
			}
		case <-deadline:
			t.Fatal("never observed latest value")
		}
	}
}

func TestStateWatchClosesOnCancel(t *testing.T) {
	s := NewState(1)
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Watch(ctx)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
