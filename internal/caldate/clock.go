package caldate

import (
	"strings"
	"time"
)

// SplitTimestamp pulls the flat date and "HH:MM" time out of an ISO
// timestamp like "2025-10-06T16:00:00Z" without interpreting the zone.
// Both results are empty when the input has no time part.
func SplitTimestamp(ts string) (date string, hhmm string) {
	datePart, timePart, found := strings.Cut(ts, "T")
	if !found {
		return datePart, ""
	}

	fields := strings.Split(timePart, ":")
	if len(fields) < 2 {
		return datePart, ""
	}
	return datePart, fields[0] + ":" + fields[1]
}

// ClockTime renders the local wall-clock time as "HH:MM", the format slot
// times are keyed by.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatClock renders a "HH:MM" time in 12-hour display form, e.g. "16:00"
// becomes "4:00 PM". Malformed input is returned unchanged.
func FormatClock(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}
