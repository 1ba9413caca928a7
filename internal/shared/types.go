package shared

// Asynq task types
const (
	TypeCleanupResetTokens   = "auth:cleanup_reset_tokens"
	TypeCompletePastBookings = "booking:complete_past"
)

// Asynq queue names
const (
	QueueAuth    = "auth"
	QueueBooking = "booking"
)
