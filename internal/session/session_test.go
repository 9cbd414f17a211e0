package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reservacitas/frontdesk/internal/session"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", "backend-token", time.Minute); err != nil {
		t.Fatal(err)
	}

	token, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if token != "backend-token" {
		t.Fatalf("Expected stored token, got %q", token)
	}

	if err := store.Delete(ctx, "sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_ExpiredEntryIsGone(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "sid-1", "backend-token", -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for expired entry, got %v", err)
	}
}

func newManager() *session.Manager {
	return session.NewManager(session.NewMemoryStore(), "frontdesk_session", "test-signing-key", time.Hour, false)
}

// startSession opens a session and returns the cookie it set.
func startSession(t *testing.T, m *session.Manager, token string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.Start(context.Background(), rec, token); err != nil {
		t.Fatal(err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestManager_StartThenToken(t *testing.T) {
	m := newManager()
	cookie := startSession(t, m, "backend-token")

	if cookie.Name != "frontdesk_session" || !cookie.HttpOnly {
		t.Fatalf("Unexpected cookie: %+v", cookie)
	}
	// The cookie value is a signed JWT, never the backend token itself.
	if strings.Contains(cookie.Value, "backend-token") {
		t.Fatal("Backend token leaked into the cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)

	sessionID, token, err := m.Token(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if sessionID == "" || token != "backend-token" {
		t.Fatalf("Unexpected session resolution: id=%q token=%q", sessionID, token)
	}
}

func TestManager_MissingCookie(t *testing.T) {
	m := newManager()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)

	if _, _, err := m.Token(context.Background(), req); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestManager_TamperedCookie(t *testing.T) {
	m := newManager()
	cookie := startSession(t, m, "backend-token")
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)

	if _, _, err := m.Token(context.Background(), req); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for tampered cookie, got %v", err)
	}
}

func TestManager_WrongSigningKey(t *testing.T) {
	m := newManager()
	cookie := startSession(t, m, "backend-token")

	other := session.NewManager(session.NewMemoryStore(), "frontdesk_session", "different-key", time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)

	if _, _, err := other.Token(context.Background(), req); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound across signing keys, got %v", err)
	}
}

func TestManager_DestroyDropsTokenAndExpiresCookie(t *testing.T) {
	m := newManager()
	cookie := startSession(t, m, "backend-token")

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	m.Destroy(context.Background(), rec, req)

	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Fatalf("Expected expired cookie, got %+v", cleared)
	}

	again := httptest.NewRequest(http.MethodGet, "/admin", nil)
	again.AddCookie(cookie)
	if _, _, err := m.Token(context.Background(), again); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after destroy, got %v", err)
	}
}
