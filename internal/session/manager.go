package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager ties the session cookie to the token store. The cookie carries
// only a signed session ID; tampering with it yields ErrNotFound, the
// same as an expired session.
type Manager struct {
	store      Store
	cookieName string
	signingKey []byte
	ttl        time.Duration
	secure     bool
}

func NewManager(store Store, cookieName, signingKey string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		signingKey: []byte(signingKey),
		ttl:        ttl,
		secure:     secure,
	}
}

// Start opens a session holding the backend token and sets the cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, token string) error {
	id := uuid.New().String()
	if err := m.store.Set(ctx, id, token, m.ttl); err != nil {
		return err
	}

	now := time.Now()
	claims := cookieClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Token resolves the request's session cookie to the stored backend
// token. Any failure along the way reads as ErrNotFound.
func (m *Manager) Token(ctx context.Context, r *http.Request) (sessionID, token string, err error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return "", "", ErrNotFound
	}

	tok, err := jwt.ParseWithClaims(cookie.Value, &cookieClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.signingKey, nil
	})
	if err != nil || !tok.Valid {
		return "", "", ErrNotFound
	}
	claims, ok := tok.Claims.(*cookieClaims)
	if !ok || claims.SessionID == "" {
		return "", "", ErrNotFound
	}

	token, err = m.store.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", err
	}
	return claims.SessionID, token, nil
}

// Destroy drops the stored token and expires the cookie. Called on
// logout and whenever the backend answers 401.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if tok, err := jwt.ParseWithClaims(cookie.Value, &cookieClaims{}, func(t *jwt.Token) (interface{}, error) {
			return m.signingKey, nil
		}); err == nil && tok.Valid {
			if claims, ok := tok.Claims.(*cookieClaims); ok {
				_ = m.store.Delete(ctx, claims.SessionID)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
