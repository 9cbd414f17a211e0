package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/reservacitas/frontdesk/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	homeTmpl          = parsePage("home.html")
	availabilityTmpl  = parsePage("availability.html")
	bookingFormTmpl   = parsePage("booking_form.html")
	confirmationTmpl  = parsePage("confirmation.html")
	myBookingsTmpl    = parsePage("my_bookings.html")
	loginTmpl         = parsePage("admin_login.html")
	dashboardTmpl     = parsePage("admin_dashboard.html")
	adminBookingsTmpl = parsePage("admin_bookings.html")
	emailLogsTmpl     = parsePage("admin_email_logs.html")
)

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name))
}

// render executes a page template; a render failure is a plain 500 since
// there is nothing sensible left to show.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logger.ErrorContext(r.Context(), "Template render failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Flash is a one-shot notification surfaced on the next rendered page.
type Flash struct {
	Message string
	Kind    string // "success" or "error"
}

const (
	flashSuccessCookie = "frontdesk_flash_ok"
	flashErrorCookie   = "frontdesk_flash_err"
)

func setFlash(w http.ResponseWriter, kind, message string) {
	name := flashSuccessCookie
	if kind == "error" {
		name = flashErrorCookie
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// popFlash reads and clears pending flashes.
func popFlash(w http.ResponseWriter, r *http.Request) []Flash {
	var flashes []Flash
	for name, kind := range map[string]string{
		flashSuccessCookie: "success",
		flashErrorCookie:   "error",
	} {
		cookie, err := r.Cookie(name)
		if err != nil {
			continue
		}
		if message, err := url.QueryUnescape(cookie.Value); err == nil && message != "" {
			flashes = append(flashes, Flash{Message: message, Kind: kind})
		}
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
	return flashes
}
