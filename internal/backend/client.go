// Package backend is the typed client for the booking REST API. It owns
// no business logic beyond translating the wire envelope and the
// start_utc/end_utc timestamp pairs into the flat shapes the pages
// render; tokens are supplied by callers and never stored here.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/reservacitas/frontdesk/internal/caldate"
	"github.com/reservacitas/frontdesk/pkg/logger"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the {success, data, error} wrapper every endpoint answers
// with. Data is decoded per call once success is established.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

// do performs one request and decodes the unwrapped data field into out
// (out may be nil when the caller only needs the acknowledgment).
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := ctx.Value(logger.RequestIDKey); requestID != nil {
		req.Header.Set("X-Request-ID", fmt.Sprint(requestID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !env.Success || resp.StatusCode >= 400 {
		return businessError(env)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: failed to decode data: %v", ErrInvalidResponse, err)
		}
	}
	return nil
}

// businessError maps a success=false envelope to a sentinel where one
// exists, so handlers can pick the specific user-facing message.
func businessError(env envelope) error {
	if env.Code == "SLOT_NOT_AVAILABLE" || strings.Contains(env.Error, "Slot no disponible") {
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, env.Error)
	}
	if env.Error == "" {
		return ErrInvalidResponse
	}
	return fmt.Errorf("%w: %s", ErrInvalidResponse, env.Error)
}

// Advisors lists every bookable advisor.
func (c *Client) Advisors(ctx context.Context) ([]Advisor, error) {
	var advisors []Advisor
	if err := c.do(ctx, http.MethodGet, "/bookings/advisors", "", nil, &advisors); err != nil {
		return nil, err
	}
	return advisors, nil
}

// wireSlot is the raw availability entry before flattening.
type wireSlot struct {
	ID       int64  `json:"id"`
	StartUTC string `json:"start_utc"`
	EndUTC   string `json:"end_utc"`
	Status   string `json:"status"` // "free" or taken/blocked variants
}

type wireAvailability struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	AvailableSlots []wireSlot `json:"available_slots"`
}

// Availability fetches an advisor's slots inside [from, to] and reshapes
// each start_utc/end_utc pair into flat date and HH:MM fields.
func (c *Client) Availability(ctx context.Context, advisorID int64, from, to caldate.Date) (*Availability, error) {
	path := fmt.Sprintf("/bookings/availability?advisor_id=%d&from=%s&to=%s", advisorID, from, to)

	var wire wireAvailability
	if err := c.do(ctx, http.MethodGet, path, "", nil, &wire); err != nil {
		return nil, err
	}

	slots := make([]TimeSlot, 0, len(wire.AvailableSlots))
	for _, s := range wire.AvailableSlots {
		date, start := caldate.SplitTimestamp(s.StartUTC)
		_, end := caldate.SplitTimestamp(s.EndUTC)
		slots = append(slots, TimeSlot{
			ID:          s.ID,
			AdvisorID:   advisorID,
			Date:        date,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: s.Status == "free",
		})
	}

	return &Availability{
		Advisor: Advisor{ID: wire.ID, Name: wire.Name},
		Slots:   slots,
	}, nil
}

// CreateBooking reserves a slot for a client.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*BookingConfirmation, error) {
	var conf BookingConfirmation
	if err := c.do(ctx, http.MethodPost, "/bookings", "", req, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// wireBooking is the raw booking row before flattening.
type wireBooking struct {
	ID          int64  `json:"id"`
	AdvisorName string `json:"advisor_name"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	StartUTC    string `json:"start_utc"`
	EndUTC      string `json:"end_utc"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func flattenBookings(wire []wireBooking) []Booking {
	bookings := make([]Booking, 0, len(wire))
	for _, b := range wire {
		date, start := caldate.SplitTimestamp(b.StartUTC)
		_, end := caldate.SplitTimestamp(b.EndUTC)
		bookings = append(bookings, Booking{
			ID:          b.ID,
			AdvisorName: b.AdvisorName,
			ClientName:  b.ClientName,
			ClientEmail: b.ClientEmail,
			Date:        date,
			StartTime:   start,
			EndTime:     end,
			Status:      b.Status,
			CreatedAt:   b.CreatedAt,
		})
	}
	return bookings
}

// MyBookings lists a client's bookings by email.
func (c *Client) MyBookings(ctx context.Context, email string) ([]Booking, error) {
	path := "/bookings/my-bookings?email=" + url.QueryEscape(email)

	var wire []wireBooking
	if err := c.do(ctx, http.MethodGet, path, "", nil, &wire); err != nil {
		return nil, err
	}
	return flattenBookings(wire), nil
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an admin account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", "", body, nil)
}

// Me verifies a bearer token. ErrUnauthorized means the token is dead and
// the session holding it must be discarded.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AdminStats fetches the dashboard counters.
func (c *Client) AdminStats(ctx context.Context, token string) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminBookings searches bookings with optional filters.
func (c *Client) AdminBookings(ctx context.Context, token string, filters BookingFilters) ([]Booking, error) {
	values, err := query.Values(filters)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode filters: %v", ErrInternal, err)
	}

	path := "/admin/bookings"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var wire []wireBooking
	if err := c.do(ctx, http.MethodGet, path, token, nil, &wire); err != nil {
		return nil, err
	}
	return flattenBookings(wire), nil
}

// UpdateBookingStatus transitions a booking to the given status.
func (c *Client) UpdateBookingStatus(ctx context.Context, token string, bookingID int64, status string) error {
	path := fmt.Sprintf("/admin/bookings/%d/status", bookingID)
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, path, token, body, nil)
}

// CancelBooking cancels a booking. Server-side this is a status
// transition as well; the row is never removed.
func (c *Client) CancelBooking(ctx context.Context, token string, bookingID int64) error {
	path := fmt.Sprintf("/admin/bookings/%d", bookingID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// ResendEmail re-queues the confirmation email for a booking.
func (c *Client) ResendEmail(ctx context.Context, token string, bookingID int64) error {
	path := fmt.Sprintf("/admin/bookings/%d/resend-email", bookingID)
	return c.do(ctx, http.MethodPost, path, token, struct{}{}, nil)
}

// EmailLogs lists delivery records with optional filters.
func (c *Client) EmailLogs(ctx context.Context, token string, filters EmailLogFilters) ([]EmailLog, error) {
	values, err := query.Values(filters)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode filters: %v", ErrInternal, err)
	}

	path := "/admin/email-logs"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var logs []EmailLog
	if err := c.do(ctx, http.MethodGet, path, token, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
