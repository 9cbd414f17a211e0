package viewmodel

import (
	"sort"

	"github.com/reservacitas/frontdesk/internal/backend"
)

// StatusLabel translates a booking status for display.
func StatusLabel(status string) string {
	switch status {
	case backend.StatusConfirmed:
		return "Confirmada"
	case backend.StatusCancelled:
		return "Cancelada"
	case backend.StatusCompleted:
		return "Completada"
	default:
		return "Pendiente"
	}
}

// StatusBadgeClass picks the badge style for a booking status.
func StatusBadgeClass(status string) string {
	switch status {
	case backend.StatusConfirmed:
		return "badge-success"
	case backend.StatusCancelled:
		return "badge-destructive"
	case backend.StatusCompleted:
		return "badge-info"
	default:
		return "badge-warning"
	}
}

// BookingRow is one admin table row with its action availability.
type BookingRow struct {
	backend.Booking
}

// actionable is false once a booking reached a terminal status; resend,
// complete and cancel are all disabled then.
func (r BookingRow) actionable() bool {
	return r.Status != backend.StatusCompleted && r.Status != backend.StatusCancelled
}

func (r BookingRow) CanResend() bool   { return r.actionable() }
func (r BookingRow) CanComplete() bool { return r.actionable() }
func (r BookingRow) CanCancel() bool   { return r.actionable() }

func (r BookingRow) StatusLabel() string      { return StatusLabel(r.Status) }
func (r BookingRow) StatusBadgeClass() string { return StatusBadgeClass(r.Status) }

// Rows wraps bookings for rendering.
func Rows(bookings []backend.Booking) []BookingRow {
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, BookingRow{Booking: b})
	}
	return rows
}

// PatchStatus returns a copy of the list with one booking's status
// replaced. This is the optimistic local update applied only after the
// backend acknowledged the transition; there is no rollback path because
// the patch never runs before a successful call.
func PatchStatus(bookings []backend.Booking, bookingID int64, status string) []backend.Booking {
	patched := make([]backend.Booking, len(bookings))
	copy(patched, bookings)
	for i := range patched {
		if patched[i].ID == bookingID {
			patched[i].Status = status
		}
	}
	return patched
}

// Recent picks the n most recently created bookings for the dashboard.
func Recent(bookings []backend.Booking, n int) []backend.Booking {
	recent := make([]backend.Booking, len(bookings))
	copy(recent, bookings)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt > recent[j].CreatedAt
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
