package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cedarclub/models"

	"github.com/hibiken/asynq"
)

const TypeLockerRenewal = "locker:renew"

// RenewalPayload identifies the rental to renew or end.
type RenewalPayload struct {
	RentalID  string    `json:"rental_id"`
	PeriodEnd time.Time `json:"period_end"`
}

// NewRenewalTask fires at the end of the rental's current period.
func NewRenewalTask(rental models.LockerRental) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(RenewalPayload{RentalID: rental.ID, PeriodEnd: rental.PeriodEnd})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeLockerRenewal, b)
	opts := []asynq.Option{
		asynq.ProcessAt(rental.PeriodEnd),
		// one task per rental period
		asynq.TaskID(fmt.Sprintf("%s:%d", rental.ID, rental.PeriodEnd.Unix())),
	}
	return task, opts, nil
}

// ParseRenewalTask decodes a renewal payload.
func ParseRenewalTask(task *asynq.Task) (RenewalPayload, error) {
	var p RenewalPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid renewal payload: %w", err)
	}
	return p, nil
}

// AsynqScheduler enqueues renewal tasks on an asynq client.
type AsynqScheduler struct {
	Client *asynq.Client
}

func (s *AsynqScheduler) ScheduleRenewal(ctx context.Context, rental models.LockerRental) error {
	task, opts, err := NewRenewalTask(rental)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue renewal: %w", err)
	}
	return nil
}
