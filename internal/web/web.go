// Package web serves the frontdesk pages: the public booking flow and
// the session-gated admin console. Handlers fetch through the booking
// API client, reshape with the viewmodel helpers and render embedded
// templates; no server-side state survives a request beyond the session
// token.
package web

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reservacitas/frontdesk/internal/backend"
	"github.com/reservacitas/frontdesk/internal/caldate"
	"github.com/reservacitas/frontdesk/internal/session"
)

// BookingAPI is the slice of the backend client the pages consume.
type BookingAPI interface {
	Advisors(ctx context.Context) ([]backend.Advisor, error)
	Availability(ctx context.Context, advisorID int64, from, to caldate.Date) (*backend.Availability, error)
	CreateBooking(ctx context.Context, req backend.BookingRequest) (*backend.BookingConfirmation, error)
	MyBookings(ctx context.Context, email string) ([]backend.Booking, error)
	Login(ctx context.Context, email, password string) (*backend.AuthResult, error)
	Register(ctx context.Context, email, password string) error
	Me(ctx context.Context, token string) (*backend.User, error)
	AdminStats(ctx context.Context, token string) (*backend.Stats, error)
	AdminBookings(ctx context.Context, token string, filters backend.BookingFilters) ([]backend.Booking, error)
	UpdateBookingStatus(ctx context.Context, token string, bookingID int64, status string) error
	CancelBooking(ctx context.Context, token string, bookingID int64) error
	ResendEmail(ctx context.Context, token string, bookingID int64) error
	EmailLogs(ctx context.Context, token string, filters backend.EmailLogFilters) ([]backend.EmailLog, error)
}

type Handlers struct {
	api      BookingAPI
	sessions *session.Manager
	now      func() time.Time
}

func New(api BookingAPI, sessions *session.Manager) *Handlers {
	return &Handlers{
		api:      api,
		sessions: sessions,
		now:      time.Now,
	}
}

// WithClock overrides the wall clock. Tests pin "now" with it.
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

// Routes mounts every page on the router.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HomePage)
	r.Get("/book/{advisorID}", h.AvailabilityPage)
	r.Get("/book/{advisorID}/confirm", h.BookingFormPage)
	r.Post("/book/{advisorID}", h.SubmitBooking)
	r.Get("/bookings", h.MyBookingsPage)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.SubmitLogin)
		r.Post("/register", h.SubmitRegister)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireSession)
			r.Get("/", h.DashboardPage)
			r.Get("/bookings", h.AdminBookingsPage)
			r.Post("/bookings/{id}/status", h.ChangeBookingStatus)
			r.Post("/bookings/{id}/cancel", h.CancelBooking)
			r.Post("/bookings/{id}/resend", h.ResendEmail)
			r.Get("/email-logs", h.EmailLogsPage)
		})
	})
}
