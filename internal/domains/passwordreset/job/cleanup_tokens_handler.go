package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"futsal-backend/internal/domains/passwordreset"
	"futsal-backend/pkg/logger"
)

// CleanupTokensHandler processes the periodic task that purges expired
// password reset tokens.
type CleanupTokensHandler struct {
	repo passwordreset.Repository
}

func NewCleanupTokensHandler(repo passwordreset.Repository) *CleanupTokensHandler {
	return &CleanupTokensHandler{repo: repo}
}

func (h *CleanupTokensHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	deleted, err := h.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		logger.Error("cleanup reset tokens task failed", err)
		return err
	}

	if deleted > 0 {
		logger.Info("Purged expired reset tokens", map[string]interface{}{
			"count": deleted,
		})
	}
	return nil
}
