package queue

import (
	"fmt"

	"github.com/hibiken/asynq"

	"futsal-backend/internal/shared"
	"futsal-backend/pkg/logger"
)

// Scheduler registers the periodic maintenance tasks with asynq.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{
				Addr:     redisAddr,
				Password: redisPassword,
				DB:       redisDB,
			},
			&asynq.SchedulerOpts{},
		),
	}
}

// RegisterTasks wires the cron entries. Both tasks are idempotent, so
// an overlapping run is harmless.
func (s *Scheduler) RegisterTasks() error {
	entries := []struct {
		spec     string
		taskType string
		queue    string
	}{
		// Purge expired reset tokens hourly.
		{"@every 1h", shared.TypeCleanupResetTokens, shared.QueueAuth},
		// Sweep finished bookings every 15 minutes.
		{"@every 15m", shared.TypeCompletePastBookings, shared.QueueBooking},
	}

	for _, e := range entries {
		entryID, err := s.scheduler.Register(
			e.spec,
			asynq.NewTask(e.taskType, nil),
			asynq.Queue(e.queue),
		)
		if err != nil {
			return fmt.Errorf("register %s: %w", e.taskType, err)
		}
		logger.Info("Scheduled periodic task", map[string]interface{}{
			"task":     e.taskType,
			"spec":     e.spec,
			"entry_id": entryID,
		})
	}
	return nil
}

// Run blocks until the scheduler is stopped.
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

// Shutdown stops the scheduler gracefully.
func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
