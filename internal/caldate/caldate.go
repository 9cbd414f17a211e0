// Package caldate implements pure calendar dates as (year, month, day)
// triples. Dates coming from the booking API are ISO strings; they are
// split by hand instead of going through a timezone-aware parser, so a
// slot dated "2025-10-06" stays 2025-10-06 no matter where the server
// runs.
package caldate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is an immutable calendar date with no time-of-day or zone attached.
type Date struct {
	Year  int
	Month int
	Day   int
}

// New builds a Date from explicit components. Components are not range
// checked; callers that need validation go through Parse.
func New(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Parse reads a "YYYY-MM-DD" string, or the date part of an ISO timestamp
// such as "2025-10-06T16:00:00Z". Only string splitting is used.
func Parse(s string) (Date, error) {
	datePart, _, _ := strings.Cut(s, "T")
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid calendar date %q", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month in %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day in %q", s)
	}

	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("calendar date %q out of range", s)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// MustParse panics on malformed input. For constants and tests.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime extracts the local calendar date from a wall-clock instant.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: int(month), Day: day}
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare orders dates as pure triples: -1 if d precedes o, 0 if equal,
// 1 if d follows o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d == o }

// AddDays returns the date n days later (earlier for negative n),
// normalizing across month and year boundaries.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month), d.Day+n, 0, 0, 0, 0, time.UTC)
	return FromTime(t)
}

// Weekday reports the day of week, Monday as 0 through Sunday as 6.
func (d Date) Weekday() int {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return (int(t.Weekday()) + 6) % 7
}

// String renders the API wire format "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Display renders "DD/MM/YYYY" for tables and range summaries.
func (d Date) Display() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// DaysInMonth reports the day count of a month, leap years included.
func DaysInMonth(year, month int) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
