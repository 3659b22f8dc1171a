package cron

import (
	"context"
	"time"

	"cedarclub/config"
	"cedarclub/services/locker"
	"cedarclub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt returns the asynq connection for the renewal queue.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisRenewalQueue,
	}
}

// InitRenewalWorker runs the locker renewal worker in the background. The
// returned server must be shut down by the caller.
func InitRenewalWorker(cfg config.Config, lockers locker.LockerService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeLockerRenewal, handleRenewalTask(lockers, logger))

	go func() {
		logger.Info("Starting locker renewal worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Warn("Renewal worker failed to start",
				zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Renewal worker gave up; rentals will not renew until restart")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleRenewalTask(lockers locker.LockerService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRenewalTask(task)
		if err != nil {
			logger.Error("Invalid renewal payload", zap.Error(err))
			return asynq.SkipRetry
		}

		rental, err := lockers.Renew(ctx, p.RentalID)
		if err != nil {
			logger.Error("Failed to renew rental", zap.String("rental", p.RentalID), zap.Error(err))
			return err
		}
		logger.Info("Renewal task done",
			zap.String("rental", rental.ID), zap.String("status", rental.Status), zap.Bool("auto_renew", rental.AutoRenew))
		return nil
	}
}
