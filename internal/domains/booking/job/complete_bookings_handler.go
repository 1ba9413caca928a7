package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"futsal-backend/internal/domains/booking"
	"futsal-backend/pkg/logger"
)

// CompleteBookingsHandler processes the periodic task that marks
// confirmed bookings whose end time has passed as completed.
type CompleteBookingsHandler struct {
	repo booking.Repository
}

func NewCompleteBookingsHandler(repo booking.Repository) *CompleteBookingsHandler {
	return &CompleteBookingsHandler{repo: repo}
}

func (h *CompleteBookingsHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	updated, err := h.repo.CompletePastBookings(ctx, time.Now())
	if err != nil {
		logger.Error("complete past bookings task failed", err)
		return err
	}

	if updated > 0 {
		logger.Info("Completed past bookings", map[string]interface{}{
			"count": updated,
		})
	}
	return nil
}
