package repository

import "errors"

// Validation errors for catalog replacement lists. They are checked before
// anything is written, so a rejected list leaves the stored catalog as is.
var (
	ErrEmptyName     = errors.New("name is required")
	ErrDuplicateName = errors.New("duplicate name")
	ErrNegativePrice = errors.New("price must not be negative")
)

// Lookup errors.
var (
	ErrCourtNotFound       = errors.New("court not found")
	ErrShuttlecockNotFound = errors.New("shuttlecock not found")
	ErrBookingNotFound     = errors.New("booking not found")
)
