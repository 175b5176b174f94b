package timeutil

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Regions whose calendars start the week on Sunday or Saturday. Everything
// else starts on Monday.
var (
	sundayFirst = regionSet("AG AS BD BR BS BT BW BZ CA CO DM DO ET GT GU HK HN ID IL IN JM JP KE KH KR LA MH MM MO MT MX MZ NI NP PA PE PH PK PR PT PY SA SG SV TH TT TW UM US VE VI WS YE ZA ZW")
	saturdayFirst = regionSet("AE AF BH DJ DZ EG IQ IR JO KW LY OM QA SD SY")
)

func regionSet(list string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range strings.Fields(list) {
		set[r] = struct{}{}
	}
	return set
}

// FirstWeekday returns the first day of the week for the tag's region.
func FirstWeekday(tag language.Tag) time.Weekday {
	region, _ := tag.Region()
	code := region.String()
	if _, ok := sundayFirst[code]; ok {
		return time.Sunday
	}
	if _, ok := saturdayFirst[code]; ok {
		return time.Saturday
	}
	return time.Monday
}

// ParseLocale accepts POSIX ("en_US.UTF-8") and BCP 47 ("en-US") names.
// "C", "POSIX" and empty input map to American English.
func ParseLocale(name string) (language.Tag, error) {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	switch name {
	case "", "C", "POSIX":
		return language.AmericanEnglish, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("timeutil: locale %q: %w", name, err)
	}
	return tag, nil
}

// LocaleFromEnv reads LC_ALL, LC_TIME then LANG.
func LocaleFromEnv() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if tag, err := ParseLocale(v); err == nil {
			return tag
		}
	}
	return language.AmericanEnglish
}

// ParseWeekday reads a weekday name or its three letter abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("timeutil: unknown weekday %q", s)
}

// WeekBounds moves now back to the first day of its week, keeping the clock
// time, and returns that instant with the instant six days later.
func WeekBounds(now time.Time, first time.Weekday) (time.Time, time.Time) {
	offset := (int(now.Weekday()) - int(first) + 7) % 7
	start := now.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
