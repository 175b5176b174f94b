package palette

import "testing"

func TestDefaultOrder(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []string{"Happy 😊", "Calm 🙂", "Neutral 😐", "Sad 😟", "Anxious 😬"}
	got := p.Labels()
	if len(got) != len(want) {
		t.Fatalf("expected %d moods, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mood %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestForAlias(t *testing.T) {
	p := Palette(Default())
	cases := map[string]string{
		"happy":    "Happy 😊",
		"CALM":     "Calm 🙂",
		"3":        "Neutral 😐",
		"Sad 😟":    "Sad 😟",
		" anxious ": "Anxious 😬",
	}
	for in, want := range cases {
		m, err := p.ForAlias(in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if m.Label != want {
			t.Fatalf("%q: expected %q, got %q", in, want, m.Label)
		}
	}
	for _, bad := range []string{"", "0", "6", "grumpy"} {
		if _, err := p.ForAlias(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestNewRejectsDuplicatesAndBadColors(t *testing.T) {
	if _, err := New([]Mood{{Label: "A"}, {Label: "A"}}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := New([]Mood{{Label: "A", Accent: "blue"}}); err == nil {
		t.Fatalf("expected colour error")
	}
	p, err := New([]Mood{{Label: "Tired 😴", Accent: "#4DB6AC"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p[0].Name() != "tired" {
		t.Fatalf("unexpected name %q", p[0].Name())
	}
}

func TestColorFallsBack(t *testing.T) {
	m := Mood{Label: "Odd", Accent: "nope"}
	if got := m.Color().Hex(); got != "#9e9e9e" {
		t.Fatalf("expected fallback grey, got %s", got)
	}
	if got := Default()[0].Color().Hex(); got != "#4caf50" {
		t.Fatalf("unexpected accent %s", got)
	}
}
