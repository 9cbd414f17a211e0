// Package viewmodel reshapes backend responses into display-ready rows.
// Nothing here mutates server state; every list is re-derived from the
// latest fetch.
package viewmodel

import (
	"sort"
	"time"

	"github.com/reservacitas/frontdesk/internal/backend"
	"github.com/reservacitas/frontdesk/internal/caldate"
)

// TimeOption is one selectable start time for a chosen day.
type TimeOption struct {
	Time     string // HH:MM
	Display  string // 12-hour form
	Slot     backend.TimeSlot
	Passed   bool
	Disabled bool
}

// IsPastTime classifies a (date, HH:MM) pair against the local clock.
// Comparison is on plain date and time strings, matching how slots are
// keyed; a slot starting exactly now counts as past.
func IsPastTime(date, hhmm string, now time.Time) bool {
	currentDate := caldate.FromTime(now).String()
	currentTime := caldate.ClockTime(now)
	return date < currentDate || (date == currentDate && hhmm <= currentTime)
}

// AvailableDates lists the distinct dates of a slot set, sorted.
func AvailableDates(slots []backend.TimeSlot) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, slot := range slots {
		if !seen[slot.Date] {
			seen[slot.Date] = true
			dates = append(dates, slot.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// GroupSlots shapes the options for one day: slots grouped by start
// time in clock order, each option disabled when the time is already past
// or no slot at that time is available. The first slot of a group is the
// one submitted when the option is picked.
func GroupSlots(slots []backend.TimeSlot, date string, now time.Time) []TimeOption {
	grouped := make(map[string][]backend.TimeSlot)
	for _, slot := range slots {
		if slot.Date == date {
			grouped[slot.StartTime] = append(grouped[slot.StartTime], slot)
		}
	}

	times := make([]string, 0, len(grouped))
	for t := range grouped {
		times = append(times, t)
	}
	sort.Strings(times)

	options := make([]TimeOption, 0, len(times))
	for _, t := range times {
		group := grouped[t]

		available := false
		for _, slot := range group {
			if slot.IsAvailable {
				available = true
				break
			}
		}

		passed := IsPastTime(date, t, now)
		options = append(options, TimeOption{
			Time:     t,
			Display:  caldate.FormatClock(t),
			Slot:     group[0],
			Passed:   passed,
			Disabled: passed || !available,
		})
	}
	return options
}
