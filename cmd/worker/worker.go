package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"futsal-backend/internal/config"
	bookingjob "futsal-backend/internal/domains/booking/job"
	bookingrepo "futsal-backend/internal/domains/booking/repository"
	resetjob "futsal-backend/internal/domains/passwordreset/job"
	resetrepo "futsal-backend/internal/domains/passwordreset/repository"
	"futsal-backend/internal/infrastructure/database"
	"futsal-backend/internal/infrastructure/queue"
	"futsal-backend/internal/shared"
	"futsal-backend/pkg/logger"
)

type worker struct {
	db        *database.PostgresDB
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *queue.Scheduler
}

func newWorker(ctx context.Context, cfg *config.Config) (*worker, error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			shared.QueueAuth:    1,
			shared.QueueBooking: 2,
		},
	})

	bookings := bookingrepo.NewPostgresRepository(db.Pool)
	resetTokens := resetrepo.NewPostgresRepository(db.Pool)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeCompletePastBookings, bookingjob.NewCompleteBookingsHandler(bookings))
	mux.Handle(shared.TypeCleanupResetTokens, resetjob.NewCleanupTokensHandler(resetTokens))

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := scheduler.RegisterTasks(); err != nil {
		db.Close()
		return nil, fmt.Errorf("register scheduled tasks: %w", err)
	}

	return &worker{
		db:        db,
		server:    server,
		mux:       mux,
		scheduler: scheduler,
	}, nil
}

func (w *worker) RunServer() error {
	logger.Info("Task server starting", map[string]interface{}{})
	return w.server.Run(w.mux)
}

func (w *worker) RunScheduler() error {
	logger.Info("Scheduler starting", map[string]interface{}{})
	return w.scheduler.Run()
}

func (w *worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func (w *worker) Cleanup() {
	w.db.Close()
}
