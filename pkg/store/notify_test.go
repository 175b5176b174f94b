package store

import (
	"context"
	"runtime"
	"testing"
	"time"
)

func TestNotifierCoalesces(t *testing.T) {
	n := NewNotifier(nil)
	defer n.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := n.Subscribe(ctx)
	for i := 0; i < 10; i++ {
		n.Publish()
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a signal")
	}
	select {
	case <-ch:
		t.Fatal("burst should collapse into one signal")
	default:
	}
}

func TestNotifierFansOut(t *testing.T) {
	n := NewNotifier(nil)
	defer n.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := n.Subscribe(ctx)
	b := n.Subscribe(ctx)
	if n.Len() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", n.Len())
	}
	n.Publish()

	for _, ch := range []<-chan struct{}{a, b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("subscriber missed signal")
		}
	}
}

func TestNotifierClosedSubscribe(t *testing.T) {
	n := NewNotifier(nil)
	n.Close()
	n.Publish()

	if _, ok := <-n.Subscribe(context.Background()); ok {
		t.Fatal("expected closed channel from closed notifier")
	}
}

func TestNotifierCloseReleasesSubscribers(t *testing.T) {
	n := NewNotifier(nil)
	before := runtime.NumGoroutine()

	subs := make([]<-chan struct{}, 0, 20)
	for i := 0; i < 20; i++ {
		subs = append(subs, n.Subscribe(context.Background()))
	}
	n.Close()

	for _, ch := range subs {
		if _, ok := <-ch; ok {
			t.Fatal("expected subscriber channel closed")
		}
	}
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("goroutines = %d, want at most %d", runtime.NumGoroutine(), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
