package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reservacitas/frontdesk/internal/backend"
	"github.com/reservacitas/frontdesk/internal/caldate"
	"github.com/reservacitas/frontdesk/internal/viewmodel"
	"github.com/reservacitas/frontdesk/pkg/logger"
)

const (
	msgSlotUnavailable = "El horario elegido ya fue reservado por otro cliente. Por favor, selecciona otro horario."
	msgBookingFailed   = "Error al crear la reserva. Por favor, intenta de nuevo."
)

type homeData struct {
	Flashes  []Flash
	Advisors []backend.Advisor
	Error    string
}

// HomePage is the booking flow entry: the advisor list.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	data := homeData{Flashes: popFlash(w, r)}

	advisors, err := h.api.Advisors(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load advisors", "error", err)
		data.Error = "Error al cargar los asesores. Por favor, intenta de nuevo."
	} else {
		data.Advisors = advisors
	}

	h.render(w, r, homeTmpl, data)
}

type quickRange struct {
	Label  string
	From   string
	To     string
	Active bool
}

type dateOption struct {
	Value   string
	Display string
}

type availabilityData struct {
	Flashes        []Flash
	Advisor        backend.Advisor
	From           string
	To             string
	Today          string
	MaxDate        string
	QuickRanges    []quickRange
	Searched       bool
	Error          string
	AvailableDates []dateOption
	SelectedDate   string
	SelectedLabel  string
	Options        []viewmodel.TimeOption
}

// AvailabilityPage drives date-range search and slot picking for one
// advisor. The range and the chosen day travel in the query string so
// every view is re-derived from a fresh fetch.
func (h *Handlers) AvailabilityPage(w http.ResponseWriter, r *http.Request) {
	advisor, ok := h.lookupAdvisor(w, r)
	if !ok {
		return
	}

	today := caldate.FromTime(h.now())

	data := availabilityData{
		Flashes: popFlash(w, r),
		Advisor: advisor,
		Today:   today.String(),
		MaxDate: today.AddDays(30).String(),
	}

	from, errFrom := caldate.Parse(r.URL.Query().Get("from"))
	to, errTo := caldate.Parse(r.URL.Query().Get("to"))
	if errFrom != nil {
		// The picker defaults to the next 7 days until a range is chosen.
		from, to = today, today.AddDays(7)
	} else if errTo != nil || to.Before(from) {
		to = from.AddDays(7)
	}
	data.From, data.To = from.String(), to.String()

	for _, days := range []int{7, 14, 30} {
		qr := quickRange{
			Label: "Próximos " + strconv.Itoa(days) + " días",
			From:  today.String(),
			To:    today.AddDays(days).String(),
		}
		qr.Active = qr.From == data.From && qr.To == data.To
		data.QuickRanges = append(data.QuickRanges, qr)
	}

	if r.URL.Query().Get("search") == "" {
		h.render(w, r, availabilityTmpl, data)
		return
	}
	data.Searched = true

	availability, err := h.api.Availability(r.Context(), advisor.ID, from, to)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load availability",
			"error", err, "advisor_id", advisor.ID)
		data.Error = "Error al cargar la disponibilidad. Por favor, intenta de nuevo."
		h.render(w, r, availabilityTmpl, data)
		return
	}

	for _, date := range viewmodel.AvailableDates(availability.Slots) {
		option := dateOption{Value: date, Display: date}
		if d, err := caldate.Parse(date); err == nil {
			option.Display = d.DisplayShort()
		}
		data.AvailableDates = append(data.AvailableDates, option)
	}

	selected := r.URL.Query().Get("date")
	if selected != "" {
		data.SelectedDate = selected
		data.SelectedLabel = selected
		if d, err := caldate.Parse(selected); err == nil {
			data.SelectedLabel = d.DisplayShort()
		}
		data.Options = viewmodel.GroupSlots(availability.Slots, selected, h.now())
	}

	h.render(w, r, availabilityTmpl, data)
}

type bookingFormData struct {
	Flashes     []Flash
	Advisor     backend.Advisor
	SlotID      int64
	Date        string
	DateLabel   string
	StartTime   string
	TimeLabel   string
	From        string
	To          string
	BackURL     string
	Form        BookingForm
	FieldErrors FieldErrors
	Error       string
}

// BookingFormPage renders the client-details form for the chosen slot.
func (h *Handlers) BookingFormPage(w http.ResponseWriter, r *http.Request) {
	advisor, ok := h.lookupAdvisor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	data := h.bookingForm(advisor, q.Get("slot"), q.Get("date"), q.Get("time"), q.Get("from"), q.Get("to"))
	if data.SlotID == 0 {
		http.Redirect(w, r, "/book/"+strconv.FormatInt(advisor.ID, 10), http.StatusSeeOther)
		return
	}

	h.render(w, r, bookingFormTmpl, data)
}

func (h *Handlers) bookingForm(advisor backend.Advisor, slot, date, startTime, from, to string) bookingFormData {
	slotID, _ := strconv.ParseInt(slot, 10, 64)

	data := bookingFormData{
		Advisor:   advisor,
		SlotID:    slotID,
		Date:      date,
		DateLabel: date,
		StartTime: startTime,
		TimeLabel: caldate.FormatClock(startTime),
		From:      from,
		To:        to,
		BackURL:   bookURL(advisor.ID, from, to, date),
	}
	if d, err := caldate.Parse(date); err == nil {
		data.DateLabel = d.DisplayShort()
	}
	return data
}

type confirmationData struct {
	Flashes   []Flash
	Advisor   backend.Advisor
	BookingID int64
	Name      string
	Email     string
	DateLabel string
	TimeLabel string
}

// SubmitBooking validates the form and creates the booking. A taken slot
// gets its specific message; everything else the generic one.
func (h *Handlers) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	advisor, ok := h.lookupAdvisor(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := h.bookingForm(advisor,
		r.PostFormValue("slot_id"),
		r.PostFormValue("date"),
		r.PostFormValue("start_time"),
		r.PostFormValue("from"),
		r.PostFormValue("to"),
	)
	data.Form = BookingForm{
		ClientName:  r.PostFormValue("client_name"),
		ClientEmail: r.PostFormValue("client_email"),
	}

	if errs := data.Form.Validate(); errs != nil {
		data.FieldErrors = errs
		h.render(w, r, bookingFormTmpl, data)
		return
	}

	conf, err := h.api.CreateBooking(r.Context(), backend.BookingRequest{
		SlotID:      data.SlotID,
		ClientName:  data.Form.ClientName,
		ClientEmail: data.Form.ClientEmail,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to create booking",
			"error", err, "slot_id", data.SlotID)
		if errors.Is(err, backend.ErrSlotUnavailable) {
			data.Error = msgSlotUnavailable
		} else {
			data.Error = msgBookingFailed
		}
		h.render(w, r, bookingFormTmpl, data)
		return
	}

	h.render(w, r, confirmationTmpl, confirmationData{
		Advisor:   advisor,
		BookingID: conf.BookingID,
		Name:      conf.ClientName,
		Email:     conf.ClientEmail,
		DateLabel: data.DateLabel,
		TimeLabel: data.TimeLabel,
	})
}

type myBookingsData struct {
	Flashes  []Flash
	Email    string
	Searched bool
	Error    string
	Rows     []viewmodel.BookingRow
}

// MyBookingsPage lists a client's bookings by email.
func (h *Handlers) MyBookingsPage(w http.ResponseWriter, r *http.Request) {
	data := myBookingsData{
		Flashes: popFlash(w, r),
		Email:   r.URL.Query().Get("email"),
	}

	if data.Email != "" {
		bookings, err := h.api.MyBookings(r.Context(), data.Email)
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to load client bookings", "error", err)
			data.Error = "Error al cargar las reservas. Verifica tu email e intenta de nuevo."
		} else {
			data.Searched = true
			data.Rows = viewmodel.Rows(bookings)
		}
	}

	h.render(w, r, myBookingsTmpl, data)
}

// lookupAdvisor resolves the advisor in the URL, rendering a redirect to
// the advisor list when it does not exist.
func (h *Handlers) lookupAdvisor(w http.ResponseWriter, r *http.Request) (backend.Advisor, bool) {
	advisorID, err := strconv.ParseInt(chi.URLParam(r, "advisorID"), 10, 64)
	if err != nil || advisorID <= 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return backend.Advisor{}, false
	}

	advisors, err := h.api.Advisors(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load advisors", "error", err)
		setFlash(w, "error", "Error al cargar los asesores. Por favor, intenta de nuevo.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return backend.Advisor{}, false
	}

	for _, advisor := range advisors {
		if advisor.ID == advisorID {
			return advisor, true
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
	return backend.Advisor{}, false
}

// bookURL rebuilds the availability page URL for back links.
func bookURL(advisorID int64, from, to, date string) string {
	u := url.Values{}
	if from != "" {
		u.Set("from", from)
	}
	if to != "" {
		u.Set("to", to)
	}
	if date != "" {
		u.Set("date", date)
	}
	u.Set("search", "1")
	return "/book/" + strconv.FormatInt(advisorID, 10) + "?" + u.Encode()
}
