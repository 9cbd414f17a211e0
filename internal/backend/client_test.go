package backend_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reservacitas/frontdesk/internal/backend"
	"github.com/reservacitas/frontdesk/internal/caldate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, 5*time.Second)
}

func TestAdvisors_UnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/advisors" {
			t.Fatalf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":[
			{"id":1,"name":"Ana García","specialty":"Finanzas"},
			{"id":2,"name":"Luis Pérez"}
		]}`))
	})

	advisors, err := client.Advisors(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(advisors) != 2 {
		t.Fatalf("Expected 2 advisors, got %d", len(advisors))
	}
	if advisors[0].Name != "Ana García" || advisors[0].Specialty != "Finanzas" {
		t.Fatalf("Unexpected advisor: %+v", advisors[0])
	}
}

func TestAvailability_FlattensTimestampsWithoutZoneMath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("advisor_id") != "1" || q.Get("from") != "2025-10-06" || q.Get("to") != "2025-10-13" {
			t.Fatalf("Unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"data":{
			"id":1,"name":"Ana García",
			"available_slots":[
				{"id":10,"start_utc":"2025-10-07T16:00:00Z","end_utc":"2025-10-07T17:00:00Z","status":"free"},
				{"id":11,"start_utc":"2025-10-07T23:30:00-05:00","end_utc":"2025-10-08T00:30:00-05:00","status":"booked"}
			]}}`))
	})

	availability, err := client.Availability(context.Background(), 1,
		caldate.New(2025, 10, 6), caldate.New(2025, 10, 13))
	if err != nil {
		t.Fatal(err)
	}
	if len(availability.Slots) != 2 {
		t.Fatalf("Expected 2 slots, got %d", len(availability.Slots))
	}

	first := availability.Slots[0]
	if first.Date != "2025-10-07" || first.StartTime != "16:00" || first.EndTime != "17:00" {
		t.Fatalf("Timestamps not flattened: %+v", first)
	}
	if !first.IsAvailable {
		t.Fatal("Expected free slot to be available")
	}

	// The offset suffix is never interpreted; only the literal date part
	// survives.
	second := availability.Slots[1]
	if second.Date != "2025-10-07" || second.StartTime != "23:30" {
		t.Fatalf("Offset timestamp mishandled: %+v", second)
	}
	if second.IsAvailable {
		t.Fatal("Expected booked slot to be unavailable")
	}
}

func TestCreateBooking_SlotTakenMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"error":"Slot no disponible","code":"SLOT_NOT_AVAILABLE"}`))
	})

	_, err := client.CreateBooking(context.Background(), backend.BookingRequest{SlotID: 10})
	if !errors.Is(err, backend.ErrSlotUnavailable) {
		t.Fatalf("Expected ErrSlotUnavailable, got %v", err)
	}
}

func TestCreateBooking_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/bookings" {
			t.Fatalf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":{"booking_id":77,"client_name":"Carla Ruiz","client_email":"carla@example.com","status":"confirmed"}}`))
	})

	conf, err := client.CreateBooking(context.Background(), backend.BookingRequest{
		SlotID: 10, ClientName: "Carla Ruiz", ClientEmail: "carla@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if conf.BookingID != 77 || conf.Status != "confirmed" {
		t.Fatalf("Unexpected confirmation: %+v", conf)
	}
}

func TestMe_UnauthorizedStatusMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Me(context.Background(), "dead-token")
	if !errors.Is(err, backend.ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestMe_SendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Fatalf("Expected bearer header, got %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"id":1,"email":"admin@example.com","role":"admin"}}`))
	})

	user, err := client.Me(context.Background(), "tok-123")
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != "admin" {
		t.Fatalf("Unexpected user: %+v", user)
	}
}

func TestAdminBookings_EncodesOnlySetFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "confirmed" || q.Get("from_date") != "2025-10-06" || q.Get("to_date") != "2025-10-10" {
			t.Fatalf("Unexpected query %s", r.URL.RawQuery)
		}
		if q.Has("advisor_id") {
			t.Fatal("Empty advisor filter must be omitted")
		}
		w.Write([]byte(`{"success":true,"data":[
			{"id":5,"advisor_name":"Ana García","client_name":"Carla Ruiz",
			 "start_utc":"2025-10-07T16:00:00Z","end_utc":"2025-10-07T17:00:00Z",
			 "status":"confirmed","created_at":"2025-10-01T12:00:00Z"}
		]}`))
	})

	bookings, err := client.AdminBookings(context.Background(), "tok", backend.BookingFilters{
		Status:   "confirmed",
		FromDate: "2025-10-06",
		ToDate:   "2025-10-10",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 1 {
		t.Fatalf("Expected 1 booking, got %d", len(bookings))
	}
	if bookings[0].Date != "2025-10-07" || bookings[0].StartTime != "16:00" {
		t.Fatalf("Booking not flattened: %+v", bookings[0])
	}
}

func TestUpdateBookingStatus_PutWithBody(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true,"data":null}`))
	})

	if err := client.UpdateBookingStatus(context.Background(), "tok", 5, "completed"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPut || gotPath != "/admin/bookings/5/status" {
		t.Fatalf("Unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestCancelBooking_Delete(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true,"data":null}`))
	})

	if err := client.CancelBooking(context.Background(), "tok", 5); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/admin/bookings/5" {
		t.Fatalf("Unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestEmailLogs_Filters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "reminder_24h" || q.Get("status") != "failed" {
			t.Fatalf("Unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"data":[
			{"id":3,"booking_id":5,"type":"reminder_24h","status":"failed",
			 "attempts":2,"error_message":"mailbox full","created_at":"2025-10-05T08:00:00Z"}
		]}`))
	})

	logs, err := client.EmailLogs(context.Background(), "tok", backend.EmailLogFilters{
		Type: "reminder_24h", Status: "failed",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].Attempts != 2 {
		t.Fatalf("Unexpected logs: %+v", logs)
	}
	if logs[0].ErrorMessage == nil || *logs[0].ErrorMessage != "mailbox full" {
		t.Fatal("Expected error message carried through")
	}
}

func TestDo_BusinessErrorWithoutCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Email inválido"}`))
	})

	err := client.Register(context.Background(), "bad", "secret")
	if !errors.Is(err, backend.ErrInvalidResponse) {
		t.Fatalf("Expected ErrInvalidResponse, got %v", err)
	}
}

func TestDo_ServerErrorMapsToInvalidResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Advisors(context.Background())
	if !errors.Is(err, backend.ErrInvalidResponse) {
		t.Fatalf("Expected ErrInvalidResponse, got %v", err)
	}
}
