package entry

import (
	"time"
)

// Layout is the display format stored in Entry.Timestamp. It doubles as the
// range-query key, compared as plain strings.
const Layout = "02 Jan 2006, 03:04 PM"

// FormatTime renders v in the local zone using Layout.
func FormatTime(v time.Time) string {
	return v.Local().Format(Layout)
}

// ParseTime reads a Layout timestamp in the local zone.
func ParseTime(v string) (time.Time, error) {
	return time.ParseInLocation(Layout, v, time.Local)
}
