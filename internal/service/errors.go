package service

import "errors"

var (
	// ErrEmptyCart blocks checkout attempts with nothing selected.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrMissingField marks a required form field left blank. Wrapped with
	// the field name.
	ErrMissingField = errors.New("required field is missing")

	// ErrRateLimited marks a session submitting faster than the configured
	// per-session budget.
	ErrRateLimited = errors.New("too many booking attempts")

	ErrInvalidDate = errors.New("invalid date; expected YYYY-MM-DD")
	ErrPastDate    = errors.New("booking date is in the past")
	ErrDateTooFar  = errors.New("booking date is too far ahead")
	ErrInvalidSlot = errors.New("booking time is not an offered slot")
)
