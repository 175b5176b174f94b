package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/moodlog/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a calendar for the month containing then, starting weeks on
// first. Days with entries are coloured with the most logged mood that day.
func (pp *PrettyPrint) Month(then time.Time, first time.Weekday, entries ...*entry.Entry) {
	days := DaysIn(then)
	moods := DayMoods(then, entries...)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	h := color.New(color.Faint)
	for i := 0; i < 7; i++ {
		d := time.Weekday((int(first) + i) % 7)
		_, _ = h.Fprintf(pp.out(), "%2s ", d.String()[0:2])
	}
	_, _ = fmt.Fprint(pp.out(), "\n")

	d := StartDay(then)

	// Pad out the start of the month.
	for i := (int(d) - int(first) + 7) % 7; i > 0; i-- {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold)

	for i := 0; i < days; i++ {
		label := fmt.Sprintf("%2d", i+1)
		if mood := moods[i]; mood == "" {
			_, _ = l1.Fprint(pp.out(), label)
		} else {
			_, _ = l2.Fprint(pp.out(), pp.accentText(mood, label))
		}
		_, _ = fmt.Fprint(pp.out(), " ")

		d = (d + 1) % 7
		if d == first {
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// DayMoods returns, for each day of the month containing then, the mood logged
// most often that day ("" when none). Ties go to the mood seen first.
// Entries whose timestamp does not parse are skipped.
func DayMoods(then time.Time, entries ...*entry.Entry) []string {
	days := DaysIn(then)
	counts := make([]map[string]int, days)
	order := make([][]string, days)

	for _, e := range entries {
		at, err := entry.ParseTime(e.Timestamp)
		if err != nil {
			continue
		}
		if at.Year() != then.Year() || at.Month() != then.Month() {
			continue
		}
		i := at.Day() - 1
		if counts[i] == nil {
			counts[i] = make(map[string]int)
		}
		if counts[i][e.Mood] == 0 {
			order[i] = append(order[i], e.Mood)
		}
		counts[i][e.Mood]++
	}

	out := make([]string, days)
	for i := range out {
		best := 0
		for _, mood := range order[i] {
			if counts[i][mood] > best {
				best = counts[i][mood]
				out[i] = mood
			}
		}
	}
	return out
}

// DaysIn is the number of days in then's month.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay is the weekday of the first of then's month.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
