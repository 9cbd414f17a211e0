package backend

// Advisor is a bookable professional as listed by GET /bookings/advisors.
type Advisor struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Specialty   string `json:"specialty"`
	Description string `json:"description"`
	Avatar      string `json:"avatar,omitempty"`
}

// TimeSlot is an offered interval, already flattened from the wire
// start_utc/end_utc pair into date and time-of-day strings.
type TimeSlot struct {
	ID          int64  `json:"id"`
	AdvisorID   int64  `json:"advisor_id"`
	Date        string `json:"date"`       // YYYY-MM-DD
	StartTime   string `json:"start_time"` // HH:MM
	EndTime     string `json:"end_time"`   // HH:MM
	IsAvailable bool   `json:"is_available"`
}

// Availability is an advisor together with their slots for a date range.
type Availability struct {
	Advisor Advisor
	Slots   []TimeSlot
}

// BookingRequest is the POST /bookings payload.
type BookingRequest struct {
	SlotID      int64  `json:"slot_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}

// BookingConfirmation is the POST /bookings response payload.
type BookingConfirmation struct {
	BookingID   int64  `json:"booking_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// Booking lifecycle statuses. Bookings are never deleted client-side;
// cancelling is a status transition.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking is a client's reservation with flattened date and time fields.
type Booking struct {
	ID          int64  `json:"id"`
	AdvisorName string `json:"advisor_name"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// User is the authenticated admin identity from GET /auth/me.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResult carries the bearer token issued by POST /auth/login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Stats is the GET /admin/stats dashboard payload.
type Stats struct {
	TotalBookings     int `json:"total_bookings"`
	ConfirmedBookings int `json:"confirmed_bookings"`
	CancelledBookings int `json:"cancelled_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	TotalAdvisors     int `json:"total_advisors"`
	AvailableSlots    int `json:"available_slots"`
	BookedSlots       int `json:"booked_slots"`
	BlockedSlots      int `json:"blocked_slots"`
	PendingEmails     int `json:"pending_emails"`
	SentEmails        int `json:"sent_emails"`
	FailedEmails      int `json:"failed_emails"`
}

// EmailLog is an append-only delivery record, read-only for the frontdesk.
type EmailLog struct {
	ID           int64   `json:"id"`
	BookingID    int64   `json:"booking_id"`
	Type         string  `json:"type"`   // confirmation, reminder_24h, reminder_1h
	Status       string  `json:"status"` // sent, pending, failed
	Attempts     int     `json:"attempts"`
	SentAt       *string `json:"sent_at"`
	ErrorMessage *string `json:"error_message"`
	CreatedAt    string  `json:"created_at"`
	ClientName   string  `json:"client_name"`
	ClientEmail  string  `json:"client_email"`
	AdvisorName  string  `json:"advisor_name"`
}

// BookingFilters narrows GET /admin/bookings. Zero fields are omitted
// from the query string; the UI's "all" pseudo-values never reach here.
type BookingFilters struct {
	Status    string `url:"status,omitempty"`
	AdvisorID string `url:"advisor_id,omitempty"`
	FromDate  string `url:"from_date,omitempty"`
	ToDate    string `url:"to_date,omitempty"`
}

// EmailLogFilters narrows GET /admin/email-logs.
type EmailLogFilters struct {
	Type   string `url:"type,omitempty"`
	Status string `url:"status,omitempty"`
}
