package web

import (
	"regexp"
	"strings"
)

// Deliberately loose: anything with an @ and a dotted domain passes, the
// backend does the real verification.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps field names to their inline validation message.
type FieldErrors map[string]string

func (e FieldErrors) Has(field string) bool   { return e[field] != "" }
func (e FieldErrors) Get(field string) string { return e[field] }

// BookingForm carries the client details of a booking submission.
type BookingForm struct {
	ClientName  string
	ClientEmail string
}

// Validate blocks submission on bad input; messages render per field.
func (f BookingForm) Validate() FieldErrors {
	errs := make(FieldErrors)

	name := strings.TrimSpace(f.ClientName)
	switch {
	case len(name) < 2:
		errs["client_name"] = "El nombre debe tener al menos 2 caracteres"
	case len(name) > 50:
		errs["client_name"] = "El nombre no puede exceder 50 caracteres"
	}

	email := strings.TrimSpace(f.ClientEmail)
	switch {
	case email == "":
		errs["client_email"] = "El email es requerido"
	case !emailPattern.MatchString(email):
		errs["client_email"] = "Ingresa un email válido"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// LoginForm carries admin credentials.
type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() FieldErrors {
	errs := make(FieldErrors)

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs["email"] = "El email es requerido"
	case !emailPattern.MatchString(email):
		errs["email"] = "Ingresa un email válido"
	}

	if f.Password == "" {
		errs["password"] = "La contraseña es requerida"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
