package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrSlotConflict     = errors.New("time slot conflict detected")
	ErrNotCancellable   = errors.New("booking cannot be cancelled")
	ErrCancelTooLate    = errors.New("cannot cancel booking less than 2 hours before start time")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

// SlotConflictError carries every booking that overlaps the requested
// slot. It matches ErrSlotConflict via errors.Is.
type SlotConflictError struct {
	Conflicts []Booking
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("time slot conflict detected (%d overlapping bookings)", len(e.Conflicts))
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// InvalidTransitionError reports a rejected status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
