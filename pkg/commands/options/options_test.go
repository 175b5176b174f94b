package options

import (
	"testing"
	"time"
)

func TestWindowSince(t *testing.T) {
	now := time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC)

	o := &WindowOptions{}
	if since, err := o.Since(now); err != nil || !since.IsZero() {
		t.Fatalf("expected zero cutoff, got %v %v", since, err)
	}

	o.Last = "1w"
	since, err := o.Since(now)
	if err != nil {
		t.Fatalf("since: %v", err)
	}
	if want := now.AddDate(0, 0, -7); !since.Equal(want) {
		t.Fatalf("expected %v, got %v", want, since)
	}

	o.Last = "soon"
	if _, err := o.Since(now); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("1717581600000"); err != nil || id != 1717581600000 {
		t.Fatalf("unexpected %d %v", id, err)
	}
	for _, bad := range []string{"abc", "", "0", "-5"} {
		if _, err := ParseID(bad); err == nil {
			t.Fatalf("ParseID(%q): expected error", bad)
		}
	}
}
