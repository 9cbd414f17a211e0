package web_test

import (
	"strings"
	"testing"

	"github.com/reservacitas/frontdesk/internal/web"
)

func TestBookingForm_Valid(t *testing.T) {
	form := web.BookingForm{ClientName: "Carla Ruiz", ClientEmail: "carla@example.com"}
	if errs := form.Validate(); errs != nil {
		t.Fatalf("Expected no errors, got %v", errs)
	}
}

func TestBookingForm_NameBounds(t *testing.T) {
	short := web.BookingForm{ClientName: "C", ClientEmail: "carla@example.com"}
	if errs := short.Validate(); !errs.Has("client_name") {
		t.Fatal("Expected short name rejected")
	}

	long := web.BookingForm{
		ClientName:  strings.Repeat("a", 51),
		ClientEmail: "carla@example.com",
	}
	if errs := long.Validate(); !errs.Has("client_name") {
		t.Fatal("Expected long name rejected")
	}

	// Exactly at the bounds passes.
	two := web.BookingForm{ClientName: "Al", ClientEmail: "carla@example.com"}
	if errs := two.Validate(); errs.Has("client_name") {
		t.Fatal("Expected 2-character name accepted")
	}
	fifty := web.BookingForm{
		ClientName:  strings.Repeat("a", 50),
		ClientEmail: "carla@example.com",
	}
	if errs := fifty.Validate(); errs.Has("client_name") {
		t.Fatal("Expected 50-character name accepted")
	}
}

func TestBookingForm_EmailShape(t *testing.T) {
	for _, email := range []string{"", "plain", "a b@example.com", "a@b", "@example.com"} {
		form := web.BookingForm{ClientName: "Carla Ruiz", ClientEmail: email}
		if errs := form.Validate(); !errs.Has("client_email") {
			t.Fatalf("Expected %q rejected", email)
		}
	}
	form := web.BookingForm{ClientName: "Carla Ruiz", ClientEmail: "c.ruiz+x@mail.example.com"}
	if errs := form.Validate(); errs != nil {
		t.Fatalf("Expected valid email accepted, got %v", errs)
	}
}

func TestLoginForm_RequiresBothFields(t *testing.T) {
	errs := web.LoginForm{}.Validate()
	if !errs.Has("email") || !errs.Has("password") {
		t.Fatalf("Expected both fields required, got %v", errs)
	}

	if errs := (web.LoginForm{Email: "admin@example.com", Password: "secret"}).Validate(); errs != nil {
		t.Fatalf("Expected valid login form, got %v", errs)
	}
}
