package calendar

import "github.com/reservacitas/frontdesk/internal/caldate"

// Selection is the two-click date range. The zero value is the empty
// selection; End is only meaningful once Start is set, and when both are
// set Start never follows End (a reversed second click swaps the
// endpoints instead of being rejected).
//
// Transitions return a new value so view state can be compared and tested
// without any rendering attached.
type Selection struct {
	Start caldate.Date
	End   caldate.Date
}

func (s Selection) IsEmpty() bool {
	return s.Start.IsZero()
}

// IsComplete reports whether both endpoints are set.
func (s Selection) IsComplete() bool {
	return !s.Start.IsZero() && !s.End.IsZero()
}

// Click applies one date click. The first click opens a range; the second
// closes it, swapping when the click precedes the start; any click on a
// complete range restarts the selection at the clicked date.
func (s Selection) Click(d caldate.Date) Selection {
	if s.IsEmpty() || s.IsComplete() {
		return Selection{Start: d}
	}
	if d.Before(s.Start) {
		return Selection{Start: d, End: s.Start}
	}
	return Selection{Start: s.Start, End: d}
}

// ClickToday applies the "Hoy" shortcut: on an empty or complete
// selection it selects today as a single-day range; on an open one it
// closes the range with today, reordering when today precedes the start.
func (s Selection) ClickToday(today caldate.Date) Selection {
	if s.IsEmpty() || s.IsComplete() {
		return Selection{Start: today, End: today}
	}
	return s.Click(today)
}

// Clear drops the selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// InRange reports whether d should be painted as part of the selection:
// between the endpoints inclusive when complete, exactly the start when
// the range is still open.
func (s Selection) InRange(d caldate.Date) bool {
	if s.IsEmpty() {
		return false
	}
	if s.End.IsZero() {
		return d.Equal(s.Start)
	}
	return !d.Before(s.Start) && !d.After(s.End)
}

// IsStart reports whether d is the left pill of the painted range.
func (s Selection) IsStart(d caldate.Date) bool {
	return !s.Start.IsZero() && d.Equal(s.Start)
}

// IsEnd reports whether d is the right pill of the painted range.
func (s Selection) IsEnd(d caldate.Date) bool {
	return !s.End.IsZero() && d.Equal(s.End)
}

// Label renders the filter button text for the current selection.
func (s Selection) Label() string {
	switch {
	case s.IsComplete():
		return s.Start.Display() + " - " + s.End.Display()
	case !s.IsEmpty():
		return s.Start.Display() + " - ..."
	default:
		return "Seleccionar rango de fechas"
	}
}
