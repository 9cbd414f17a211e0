package backend

import "errors"

var (
	// ErrUnauthorized is returned when the backend rejects the bearer
	// token (or none was sent). Callers treat it as fatal to the session.
	ErrUnauthorized = errors.New("booking api: unauthorized")

	// ErrNotFound is returned for missing resources.
	ErrNotFound = errors.New("booking api: not found")

	// ErrSlotUnavailable is returned when the chosen slot was taken
	// between rendering and submission.
	ErrSlotUnavailable = errors.New("booking api: slot no longer available")

	// ErrInternal covers request construction and transport failures.
	ErrInternal = errors.New("booking api client: internal error")

	// ErrInvalidResponse is returned when the backend answers with an
	// unexpected status or a body that does not decode.
	ErrInvalidResponse = errors.New("booking api client: invalid response")
)
