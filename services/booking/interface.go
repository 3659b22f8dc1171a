package booking

import (
	"context"
	"sync"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"
	"cedarclub/services/idempotency"

	"go.uber.org/zap"
)

// BookingService serves the catalog and books its items.
type BookingService interface {
	// Catalog lists the items offered by a unit; an empty unit lists all.
	Catalog(ctx context.Context, unit string) ([]models.CatalogItem, error)
	// Enroll registers the user in an activity.
	Enroll(ctx context.Context, userID string, req models.EnrollmentRequest, key string) (*models.Enrollment, error)
	// Book reserves a one-hour slot of a service or resource.
	Book(ctx context.Context, userID string, req models.ReservationRequest, key string) (*models.Reservation, error)
	// Reservations lists the user's reservations in date order.
	Reservations(ctx context.Context, userID string) ([]models.Reservation, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo        clubRepo.Store
	Idempotency idempotency.Store
	Logger      *zap.Logger

	// serializes the check-then-insert of reservations
	slotMu sync.Mutex
}
