package booking

import (
	"context"
	"errors"
	"fmt"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"
	"cedarclub/services/idempotency"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) Catalog(ctx context.Context, unit string) ([]models.CatalogItem, error) {
	items, err := s.Repo.ListCatalog(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return items, nil
}

func (s *DefaultBookingService) Enroll(ctx context.Context, userID string, req models.EnrollmentRequest, key string) (*models.Enrollment, error) {
	return idempotency.Do(ctx, s.Idempotency, "enroll:"+userID, key, func() (*models.Enrollment, error) {
		item, err := s.item(ctx, req.ActivityID)
		if err != nil {
			return nil, err
		}
		if item.Type != models.ItemActivity {
			return nil, ErrWrongItemType
		}

		_, err = s.Repo.GetEnrollment(ctx, userID, item.ID)
		if err == nil {
			return nil, ErrAlreadyEnrolled
		}
		if !errors.Is(err, clubRepo.ErrNotFound) {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}

		e := &models.Enrollment{
			ID:         uuid.New().String(),
			UserID:     userID,
			ActivityID: item.ID,
			Activity:   item.Ref(),
			Status:     models.StatusActive,
		}
		if err := s.Repo.CreateEnrollment(ctx, e); err != nil {
			return nil, fmt.Errorf("failed to create enrollment: %w", err)
		}
		s.Logger.Info("Enrollment created", zap.String("user", userID), zap.String("activity", item.ID))
		return e, nil
	})
}

func (s *DefaultBookingService) Book(ctx context.Context, userID string, req models.ReservationRequest, key string) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return idempotency.Do(ctx, s.Idempotency, "book:"+userID, key, func() (*models.Reservation, error) {
		itemID, want := req.ServiceID, models.ItemService
		if req.ResourceID != "" {
			itemID, want = req.ResourceID, models.ItemResource
		}
		item, err := s.item(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item.Type != want {
			return nil, ErrWrongItemType
		}

		s.slotMu.Lock()
		defer s.slotMu.Unlock()

		taken, err := s.Repo.SlotTaken(ctx, item.ID, req.Date, req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot: %w", err)
		}
		if taken {
			return nil, ErrSlotTaken
		}

		r := &models.Reservation{
			ID:         uuid.New().String(),
			UserID:     userID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Status:     models.StatusConfirmed,
			ServiceID:  req.ServiceID,
			ResourceID: req.ResourceID,
		}
		if want == models.ItemService {
			r.Service = item.Ref()
		} else {
			r.Resource = item.Ref()
		}
		if err := s.Repo.CreateReservation(ctx, r); err != nil {
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}
		s.Logger.Info("Reservation created",
			zap.String("user", userID), zap.String("item", item.ID),
			zap.String("date", r.Date), zap.String("start", r.StartTime))
		return r, nil
	})
}

func (s *DefaultBookingService) Reservations(ctx context.Context, userID string) ([]models.Reservation, error) {
	rs, err := s.Repo.ListReservationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return rs, nil
}

func (s *DefaultBookingService) item(ctx context.Context, id string) (*models.CatalogItem, error) {
	if id == "" {
		return nil, ErrItemNotFound
	}
	item, err := s.Repo.GetCatalogItem(ctx, id)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog item: %w", err)
	}
	return item, nil
}
