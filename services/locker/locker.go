package locker

import (
	"context"
	"errors"
	"fmt"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultLockerService) List(ctx context.Context, unitName string) ([]models.Locker, error) {
	var unitID string
	if unitName != "" {
		unit, err := s.Repo.GetUnitByName(ctx, unitName)
		if errors.Is(err, clubRepo.ErrNotFound) {
			return nil, ErrUnknownUnit
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch unit: %w", err)
		}
		unitID = unit.ID
	}
	lockers, err := s.Repo.ListLockers(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lockers: %w", err)
	}
	units := map[string]*models.Unit{}
	for i := range lockers {
		lockers[i].Unit = s.unit(ctx, units, lockers[i].UnitID)
	}
	return lockers, nil
}

func (s *DefaultLockerService) Mine(ctx context.Context, userID string) ([]models.LockerRental, error) {
	rentals, err := s.Repo.ListRentalsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	units := map[string]*models.Unit{}
	for i := range rentals {
		l, err := s.Repo.GetLocker(ctx, rentals[i].LockerID)
		if err != nil {
			s.Logger.Warn("Rental without locker", zap.String("rental", rentals[i].ID), zap.Error(err))
			continue
		}
		l.Unit = s.unit(ctx, units, l.UnitID)
		rentals[i].Locker = *l
	}
	return rentals, nil
}

func (s *DefaultLockerService) Rent(ctx context.Context, userID, lockerID string) (*models.LockerRental, error) {
	l, err := s.Repo.GetLocker(ctx, lockerID)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrLockerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locker: %w", err)
	}
	if err := s.Repo.ClaimLocker(ctx, lockerID); err != nil {
		if errors.Is(err, clubRepo.ErrNotFound) {
			return nil, ErrLockerUnavailable
		}
		return nil, fmt.Errorf("failed to claim locker: %w", err)
	}

	start := s.now()
	rental := &models.LockerRental{
		ID:          uuid.New().String(),
		UserID:      userID,
		LockerID:    lockerID,
		AutoRenew:   true,
		Status:      models.StatusActive,
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, models.RentalPeriodMonths, 0),
	}
	if err := s.Repo.CreateRental(ctx, rental); err != nil {
		if rerr := s.Repo.SetLockerAvailable(ctx, lockerID, true); rerr != nil {
			s.Logger.Error("Failed to free locker after rental error", zap.String("locker", lockerID), zap.Error(rerr))
		}
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}
	s.schedule(ctx, *rental)

	l.IsAvailable = false
	l.Unit = s.unit(ctx, map[string]*models.Unit{}, l.UnitID)
	rental.Locker = *l
	s.Logger.Info("Locker rented", zap.String("user", userID), zap.String("locker", l.Number))
	return rental, nil
}

func (s *DefaultLockerService) Release(ctx context.Context, userID, lockerID string) (*models.LockerRental, error) {
	rental, err := s.Repo.ActiveRental(ctx, lockerID)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrNoActiveRental
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rental: %w", err)
	}
	if rental.UserID != userID {
		return nil, ErrNoActiveRental
	}
	if !rental.AutoRenew {
		return rental, nil
	}
	rental.AutoRenew = false
	if err := s.Repo.UpdateRental(ctx, rental); err != nil {
		return nil, fmt.Errorf("failed to update rental: %w", err)
	}
	s.Logger.Info("Locker released at period end", zap.String("rental", rental.ID), zap.Time("period_end", rental.PeriodEnd))
	return rental, nil
}

func (s *DefaultLockerService) Renew(ctx context.Context, rentalID string) (*models.LockerRental, error) {
	rental, err := s.Repo.GetRental(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rental: %w", err)
	}
	if rental.Status != models.StatusActive || rental.PeriodEnd.After(s.now()) {
		// stale task: ended already, or an earlier period's task
		return rental, nil
	}

	if rental.AutoRenew {
		rental.PeriodStart = rental.PeriodEnd
		rental.PeriodEnd = rental.PeriodEnd.AddDate(0, models.RentalPeriodMonths, 0)
		if err := s.Repo.UpdateRental(ctx, rental); err != nil {
			return nil, fmt.Errorf("failed to renew rental: %w", err)
		}
		s.schedule(ctx, *rental)
		s.Logger.Info("Rental renewed", zap.String("rental", rental.ID), zap.Time("period_end", rental.PeriodEnd))
		return rental, nil
	}

	rental.Status = models.StatusEnded
	if err := s.Repo.UpdateRental(ctx, rental); err != nil {
		return nil, fmt.Errorf("failed to end rental: %w", err)
	}
	if err := s.Repo.SetLockerAvailable(ctx, rental.LockerID, true); err != nil {
		return nil, fmt.Errorf("failed to free locker: %w", err)
	}
	s.Logger.Info("Rental ended", zap.String("rental", rental.ID))
	return rental, nil
}

func (s *DefaultLockerService) schedule(ctx context.Context, rental models.LockerRental) {
	if s.Scheduler == nil {
		return
	}
	if err := s.Scheduler.ScheduleRenewal(ctx, rental); err != nil {
		s.Logger.Warn("Failed to schedule renewal", zap.String("rental", rental.ID), zap.Error(err))
	}
}

func (s *DefaultLockerService) unit(ctx context.Context, cache map[string]*models.Unit, id string) *models.Unit {
	if id == "" {
		return nil
	}
	if u, ok := cache[id]; ok {
		return u
	}
	u, err := s.Repo.GetUnit(ctx, id)
	if err != nil {
		s.Logger.Debug("Unknown locker unit", zap.String("unit", id), zap.Error(err))
		u = nil
	}
	cache[id] = u
	return u
}
