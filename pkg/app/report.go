package app

import (
	"sort"

	"tableflip.dev/moodlog/pkg/entry"
	"tableflip.dev/moodlog/pkg/palette"
)

// ReportRow is one bar in the weekly report.
type ReportRow struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
	// Known is false for labels missing from the palette.
	Known bool `json:"known"`
}

// GroupByMood counts entries per raw mood string.
func GroupByMood(entries []*entry.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		if e == nil {
			continue
		}
		counts[e.Mood]++
	}
	return counts
}

// ReportRows orders counts by palette position, then unknown labels
// alphabetically. Palette moods with no entries are omitted.
func ReportRows(counts map[string]int, moods palette.Palette) []ReportRow {
	rows := make([]ReportRow, 0, len(counts))
	seen := make(map[string]bool, len(moods))
	for _, m := range moods {
		seen[m.Label] = true
		if n := counts[m.Label]; n > 0 {
			rows = append(rows, ReportRow{Mood: m.Label, Count: n, Known: true})
		}
	}

	unknown := make([]string, 0)
	for label := range counts {
		if !seen[label] && counts[label] > 0 {
			unknown = append(unknown, label)
		}
	}
	sort.Strings(unknown)
	for _, label := range unknown {
		rows = append(rows, ReportRow{Mood: label, Count: counts[label]})
	}
	return rows
}

// Total sums the counts.
func Total(rows []ReportRow) int {
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	return total
}
