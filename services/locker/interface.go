package locker

import (
	"context"
	"errors"
	"time"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"

	"go.uber.org/zap"
)

var (
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrLockerNotFound    = errors.New("locker not found")
	ErrLockerUnavailable = errors.New("locker is not available")
	ErrNoActiveRental    = errors.New("no active rental for this locker")
)

// LockerService rents lockers by the quarter.
type LockerService interface {
	// List returns the lockers of a unit by name; an empty name lists all.
	List(ctx context.Context, unitName string) ([]models.Locker, error)
	// Mine returns the user's active rentals with their lockers.
	Mine(ctx context.Context, userID string) ([]models.LockerRental, error)
	// Rent leases an available locker for one period with auto-renew on.
	Rent(ctx context.Context, userID, lockerID string) (*models.LockerRental, error)
	// Release turns auto-renew off; the locker frees up at period end.
	Release(ctx context.Context, userID, lockerID string) (*models.LockerRental, error)
	// Renew runs at period end: it extends auto-renewing rentals and ends
	// the rest.
	Renew(ctx context.Context, rentalID string) (*models.LockerRental, error)
}

// RenewalScheduler arranges for Renew to run at a rental's period end.
type RenewalScheduler interface {
	ScheduleRenewal(ctx context.Context, rental models.LockerRental) error
}

// DefaultLockerService implements LockerService.
type DefaultLockerService struct {
	Repo      clubRepo.Store
	Scheduler RenewalScheduler
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultLockerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
