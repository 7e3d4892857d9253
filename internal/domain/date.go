package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and display format of civil dates.
const DateLayout = "2006-01-02"

// DefaultBucketOffset is the fixed UTC offset whose midnight separates
// logical days, independent of the viewer's zone.
const DefaultBucketOffset = 8 * time.Hour

// CivilDate returns the calendar date of t as seen at the given UTC offset,
// represented as midnight UTC.
func CivilDate(t time.Time, offset time.Duration) time.Time {
	shifted := t.UTC().Add(offset)
	y, m, d := shifted.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayStart returns the instant at which civil date d begins at the given offset.
func DayStart(d time.Time, offset time.Duration) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Add(-offset)
}

// NormalizeDate strips the clock part of a civil date.
func NormalizeDate(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the number of whole days from a to b (negative when b
// precedes a). Both are civil dates.
func DaysBetween(a, b time.Time) int {
	return int(NormalizeDate(b).Sub(NormalizeDate(a)).Hours() / 24)
}
