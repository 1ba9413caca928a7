package field

import "errors"

var (
	ErrFieldNotFound = errors.New("field not found")

	// ErrFieldUnavailable covers both missing and inactive fields from
	// the booking flow's perspective.
	ErrFieldUnavailable = errors.New("field not found or not available")
)
