// Package palette holds the fixed, ordered list of selectable moods.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Mood is a selectable label with its accent colour.
type Mood struct {
	Label  string `mapstructure:"label" json:"label"`
	Accent string `mapstructure:"color" json:"color"`
}

// Default returns the built-in moods in display order.
func Default() []Mood {
	return []Mood{
		{Label: "Happy 😊", Accent: "#4CAF50"},
		{Label: "Calm 🙂", Accent: "#2196F3"},
		{Label: "Neutral 😐", Accent: "#9E9E9E"},
		{Label: "Sad 😟", Accent: "#607D8B"},
		{Label: "Anxious 😬", Accent: "#F44336"},
	}
}

// Name is the lower-case first word of the label ("happy").
func (m Mood) Name() string {
	fields := strings.Fields(m.Label)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Color parses the accent, falling back to neutral grey.
func (m Mood) Color() colorful.Color {
	c, err := colorful.Hex(m.Accent)
	if err != nil {
		c, _ = colorful.Hex("#9E9E9E")
	}
	return c
}

// Muted blends the accent towards white for backgrounds.
func (m Mood) Muted() colorful.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return m.Color().BlendLab(white, 0.6).Clamped()
}

func (m Mood) String() string {
	return m.Label
}

// Palette is an ordered set of moods.
type Palette []Mood

// New validates moods and returns them as a Palette. An empty input yields
// the defaults.
func New(moods []Mood) (Palette, error) {
	if len(moods) == 0 {
		return Palette(Default()), nil
	}
	seen := make(map[string]struct{}, len(moods))
	out := make(Palette, 0, len(moods))
	for _, m := range moods {
		m.Label = strings.TrimSpace(m.Label)
		if m.Label == "" {
			return nil, fmt.Errorf("palette: mood label required")
		}
		if _, dup := seen[m.Label]; dup {
			return nil, fmt.Errorf("palette: duplicate mood %q", m.Label)
		}
		if m.Accent != "" {
			if _, err := colorful.Hex(m.Accent); err != nil {
				return nil, fmt.Errorf("palette: mood %q: %w", m.Label, err)
			}
		}
		seen[m.Label] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// Labels lists the mood labels in order.
func (p Palette) Labels() []string {
	labels := make([]string, len(p))
	for i, m := range p {
		labels[i] = m.Label
	}
	return labels
}

// Lookup finds a mood by its exact label.
func (p Palette) Lookup(label string) (Mood, bool) {
	for _, m := range p {
		if m.Label == label {
			return m, true
		}
	}
	return Mood{}, false
}

// ForAlias resolves user input to a mood. It accepts the full label, the
// first word of the label in any case, or the 1-based position.
func (p Palette) ForAlias(alias string) (Mood, error) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return Mood{}, fmt.Errorf("palette: mood required")
	}
	if m, ok := p.Lookup(alias); ok {
		return m, nil
	}
	if n, err := strconv.Atoi(alias); err == nil {
		if n >= 1 && n <= len(p) {
			return p[n-1], nil
		}
		return Mood{}, fmt.Errorf("palette: no mood at position %d", n)
	}
	lower := strings.ToLower(alias)
	for _, m := range p {
		if m.Name() == lower || strings.EqualFold(m.Label, alias) {
			return m, nil
		}
	}
	return Mood{}, fmt.Errorf("palette: unknown mood %q", alias)
}

// Aliases returns the short names accepted by ForAlias, in order.
func (p Palette) Aliases() []string {
	out := make([]string, 0, len(p))
	for _, m := range p {
		if name := m.Name(); name != "" {
			out = append(out, name)
		}
	}
	return out
}
