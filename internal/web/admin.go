package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reservacitas/frontdesk/internal/backend"
	"github.com/reservacitas/frontdesk/internal/caldate"
	"github.com/reservacitas/frontdesk/internal/calendar"
	"github.com/reservacitas/frontdesk/internal/viewmodel"
	"github.com/reservacitas/frontdesk/pkg/logger"
)

type contextKey string

const tokenKey contextKey = "backend_token"

// sessionToken returns the backend bearer token RequireSession stored on
// the request context.
func sessionToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// RequireSession gates the admin pages. Any failure along the way, a
// missing cookie, an expired store entry or a backend 401, purges the
// session and lands on the login page without an error banner.
func (h *Handlers) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, token, err := h.sessions.Token(r.Context(), r)
		if err != nil {
			h.sessions.Destroy(r.Context(), w, r)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), tokenKey, token)
		ctx = context.WithValue(ctx, logger.SessionIDKey, sessionID)

		if _, err := h.api.Me(ctx, token); err != nil {
			logger.WarnContext(ctx, "Session token rejected by backend", "error", err)
			h.sessions.Destroy(ctx, w, r)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type loginData struct {
	Flashes     []Flash
	Form        LoginForm
	FieldErrors FieldErrors
	Error       string
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, loginTmpl, loginData{Flashes: popFlash(w, r)})
}

func (h *Handlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := loginData{
		Form: LoginForm{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		},
	}

	if errs := data.Form.Validate(); errs != nil {
		data.FieldErrors = errs
		h.render(w, r, loginTmpl, data)
		return
	}

	auth, err := h.api.Login(r.Context(), data.Form.Email, data.Form.Password)
	if err != nil {
		logger.WarnContext(r.Context(), "Login rejected", "error", err)
		data.Error = "Credenciales inválidas. Por favor, intenta de nuevo."
		h.render(w, r, loginTmpl, data)
		return
	}

	if err := h.sessions.Start(r.Context(), w, auth.Token); err != nil {
		logger.ErrorContext(r.Context(), "Failed to start session", "error", err)
		data.Error = "Error al iniciar sesión. Por favor, intenta de nuevo."
		h.render(w, r, loginTmpl, data)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handlers) SubmitRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if errs := form.Validate(); errs != nil {
		h.render(w, r, loginTmpl, loginData{Form: form, FieldErrors: errs})
		return
	}

	if err := h.api.Register(r.Context(), form.Email, form.Password); err != nil {
		logger.WarnContext(r.Context(), "Registration rejected", "error", err)
		h.render(w, r, loginTmpl, loginData{
			Form:  form,
			Error: "Error al crear la cuenta. Por favor, intenta de nuevo.",
		})
		return
	}

	setFlash(w, "success", "Cuenta creada exitosamente. Ahora puedes iniciar sesión.")
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

type dashboardData struct {
	Flashes []Flash
	Stats   *backend.Stats
	Recent  []viewmodel.BookingRow
	Error   string
}

// DashboardPage shows the stat counters and the five newest bookings.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r.Context())
	data := dashboardData{Flashes: popFlash(w, r)}

	stats, err := h.api.AdminStats(r.Context(), token)
	if err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to load stats", "error", err)
		data.Error = "Error al cargar las estadísticas."
		h.render(w, r, dashboardTmpl, data)
		return
	}
	data.Stats = stats

	bookings, err := h.api.AdminBookings(r.Context(), token, backend.BookingFilters{})
	if err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to load recent bookings", "error", err)
		data.Error = "Error al cargar las reservas recientes."
	} else {
		data.Recent = viewmodel.Rows(viewmodel.Recent(bookings, 5))
	}

	h.render(w, r, dashboardTmpl, data)
}

// calendarCell is one grid square with the link that applies the click.
type calendarCell struct {
	Day     int
	InMonth bool
	InRange bool
	IsStart bool
	IsEnd   bool
	URL     string
}

type adminBookingsData struct {
	Flashes   []Flash
	Status    string
	AdvisorID string
	Advisors  []backend.Advisor
	Selection calendar.Selection
	Label     string
	Month     calendar.Month
	MonthName string
	// StartParam, EndParam and MonthParam round-trip the list state
	// through the action forms.
	StartParam string
	EndParam   string
	MonthParam string
	DayNames   [7]string
	Cells      []calendarCell
	PrevURL    string
	NextURL    string
	TodayURL   string
	ClearURL   string
	Error      string
	Rows       []viewmodel.BookingRow
}

// bookingsQuery carries the admin list state that round-trips through
// every link and form on the page.
type bookingsQuery struct {
	Status    string
	AdvisorID string
	Month     calendar.Month
	Selection calendar.Selection
}

func parseBookingsQuery(r *http.Request, today caldate.Date) bookingsQuery {
	q := r.URL.Query()

	bq := bookingsQuery{
		Status:    q.Get("status"),
		AdvisorID: q.Get("advisor_id"),
		Month:     calendar.MonthContaining(today),
	}

	if start, err := caldate.Parse(q.Get("start")); err == nil {
		bq.Selection.Start = start
		if end, err := caldate.Parse(q.Get("end")); err == nil && !end.Before(start) {
			bq.Selection.End = end
		}
		bq.Month = calendar.MonthContaining(start)
	}

	if month := q.Get("month"); month != "" {
		if first, err := caldate.Parse(month + "-01"); err == nil {
			bq.Month = calendar.MonthContaining(first)
		}
	}

	return bq
}

func (bq bookingsQuery) url(sel calendar.Selection, month calendar.Month) string {
	v := url.Values{}
	if bq.Status != "" {
		v.Set("status", bq.Status)
	}
	if bq.AdvisorID != "" {
		v.Set("advisor_id", bq.AdvisorID)
	}
	if !sel.IsEmpty() {
		v.Set("start", sel.Start.String())
		if sel.IsComplete() {
			v.Set("end", sel.End.String())
		}
	}
	v.Set("month", monthParam(month))
	return "/admin/bookings?" + v.Encode()
}

func monthParam(m calendar.Month) string {
	return caldate.New(m.Year, m.Month, 1).String()[:7]
}

func (bq bookingsQuery) filters() backend.BookingFilters {
	f := backend.BookingFilters{Status: bq.Status, AdvisorID: bq.AdvisorID}
	if bq.Selection.IsComplete() {
		f.FromDate = bq.Selection.Start.String()
		f.ToDate = bq.Selection.End.String()
	}
	return f
}

// AdminBookingsPage lists bookings with status, advisor and date-range
// filters. The range picker is a month grid; each day link carries the
// selection that clicking it produces.
func (h *Handlers) AdminBookingsPage(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r.Context())
	today := caldate.FromTime(h.now())
	bq := parseBookingsQuery(r, today)

	data := h.adminBookingsData(bq, today)
	data.Flashes = popFlash(w, r)

	if advisors, err := h.api.Advisors(r.Context()); err == nil {
		data.Advisors = advisors
	}

	bookings, err := h.api.AdminBookings(r.Context(), token, bq.filters())
	if err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to load bookings", "error", err)
		data.Error = "Error al cargar las reservas."
		h.render(w, r, adminBookingsTmpl, data)
		return
	}
	data.Rows = viewmodel.Rows(bookings)

	h.render(w, r, adminBookingsTmpl, data)
}

func (h *Handlers) adminBookingsData(bq bookingsQuery, today caldate.Date) adminBookingsData {
	data := adminBookingsData{
		Status:     bq.Status,
		AdvisorID:  bq.AdvisorID,
		Selection:  bq.Selection,
		Label:      bq.Selection.Label(),
		Month:      bq.Month,
		MonthName:  bq.Month.Label(),
		MonthParam: monthParam(bq.Month),
		DayNames:   calendar.DayNames,
		PrevURL:    bq.url(bq.Selection, bq.Month.Prev()),
		NextURL:    bq.url(bq.Selection, bq.Month.Next()),
		TodayURL:   bq.url(bq.Selection.ClickToday(today), calendar.MonthContaining(today)),
		ClearURL:   bq.url(calendar.Selection{}, bq.Month),
	}
	if !bq.Selection.IsEmpty() {
		data.StartParam = bq.Selection.Start.String()
		if bq.Selection.IsComplete() {
			data.EndParam = bq.Selection.End.String()
		}
	}

	for _, cell := range bq.Month.Grid() {
		next := bq.Selection.Click(cell.Date)
		data.Cells = append(data.Cells, calendarCell{
			Day:     cell.Date.Day,
			InMonth: cell.InMonth,
			InRange: bq.Selection.InRange(cell.Date),
			IsStart: bq.Selection.IsStart(cell.Date),
			IsEnd:   bq.Selection.IsEnd(cell.Date),
			URL:     bq.url(next, bq.Month),
		})
	}

	return data
}

// ChangeBookingStatus updates one booking and re-renders the list with
// the new status applied in place once the backend acknowledged it.
func (h *Handlers) ChangeBookingStatus(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r.Context())
	bookingID, status, bq, ok := h.parseMutation(w, r)
	if !ok {
		return
	}

	today := caldate.FromTime(h.now())
	data := h.adminBookingsData(bq, today)

	if advisors, err := h.api.Advisors(r.Context()); err == nil {
		data.Advisors = advisors
	}

	bookings, err := h.api.AdminBookings(r.Context(), token, bq.filters())
	if err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to load bookings", "error", err)
		data.Error = "Error al cargar las reservas."
		h.render(w, r, adminBookingsTmpl, data)
		return
	}

	if err := h.api.UpdateBookingStatus(r.Context(), token, bookingID, status); err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to update booking status",
			"error", err, "booking_id", bookingID)
		data.Flashes = []Flash{{Kind: "error", Message: "Error al actualizar el estado"}}
		data.Rows = viewmodel.Rows(bookings)
		h.render(w, r, adminBookingsTmpl, data)
		return
	}

	data.Flashes = []Flash{{Kind: "success", Message: "Estado actualizado exitosamente"}}
	data.Rows = viewmodel.Rows(viewmodel.PatchStatus(bookings, bookingID, status))
	h.render(w, r, adminBookingsTmpl, data)
}

func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r.Context())
	bookingID, _, bq, ok := h.parseMutation(w, r)
	if !ok {
		return
	}

	if err := h.api.CancelBooking(r.Context(), token, bookingID); err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to cancel booking",
			"error", err, "booking_id", bookingID)
		setFlash(w, "error", "Error al cancelar la reserva")
	} else {
		setFlash(w, "success", "Reserva cancelada exitosamente")
	}

	http.Redirect(w, r, bq.url(bq.Selection, bq.Month), http.StatusSeeOther)
}

func (h *Handlers) ResendEmail(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r.Context())
	bookingID, _, bq, ok := h.parseMutation(w, r)
	if !ok {
		return
	}

	if err := h.api.ResendEmail(r.Context(), token, bookingID); err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to resend email",
			"error", err, "booking_id", bookingID)
		setFlash(w, "error", "Error al reenviar el email")
	} else {
		setFlash(w, "success", "Email reenviado exitosamente")
	}

	// The dashboard's recent-bookings table posts here too and returns
	// to itself instead of the filtered list.
	dest := bq.url(bq.Selection, bq.Month)
	if r.PostFormValue("return") == "dashboard" {
		dest = "/admin"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// parseMutation reads the booking id from the URL and the list state
// from the form so the page can be rebuilt after the action.
func (h *Handlers) parseMutation(w http.ResponseWriter, r *http.Request) (int64, string, bookingsQuery, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return 0, "", bookingsQuery{}, false
	}

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || bookingID <= 0 {
		http.Redirect(w, r, "/admin/bookings", http.StatusSeeOther)
		return 0, "", bookingsQuery{}, false
	}

	today := caldate.FromTime(h.now())
	bq := bookingsQuery{
		Status:    r.PostFormValue("filter_status"),
		AdvisorID: r.PostFormValue("filter_advisor_id"),
		Month:     calendar.MonthContaining(today),
	}
	if start, err := caldate.Parse(r.PostFormValue("filter_start")); err == nil {
		bq.Selection.Start = start
		bq.Month = calendar.MonthContaining(start)
		if end, err := caldate.Parse(r.PostFormValue("filter_end")); err == nil && !end.Before(start) {
			bq.Selection.End = end
		}
	}
	if month := r.PostFormValue("filter_month"); month != "" {
		if first, err := caldate.Parse(month + "-01"); err == nil {
			bq.Month = calendar.MonthContaining(first)
		}
	}

	return bookingID, r.PostFormValue("status"), bq, true
}

type emailLogsData struct {
	Flashes []Flash
	Type    string
	Status  string
	Error   string
	Rows    []viewmodel.EmailLogRow
}

// EmailLogsPage lists notification deliveries with type and status
// filters.
func (h *Handlers) EmailLogsPage(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r.Context())

	data := emailLogsData{
		Flashes: popFlash(w, r),
		Type:    r.URL.Query().Get("type"),
		Status:  r.URL.Query().Get("status"),
	}

	logs, err := h.api.EmailLogs(r.Context(), token, backend.EmailLogFilters{
		Type:   data.Type,
		Status: data.Status,
	})
	if err != nil {
		if h.redirectExpired(w, r, err) {
			return
		}
		logger.ErrorContext(r.Context(), "Failed to load email logs", "error", err)
		data.Error = "Error al cargar el historial de emails."
		h.render(w, r, emailLogsTmpl, data)
		return
	}
	data.Rows = viewmodel.EmailLogRows(logs)

	h.render(w, r, emailLogsTmpl, data)
}

// redirectExpired handles a backend 401 mid-session: purge and return to
// the login page.
func (h *Handlers) redirectExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, backend.ErrUnauthorized) {
		return false
	}
	h.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
	return true
}
