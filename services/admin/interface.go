package admin

import (
	"context"
	"errors"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"

	"go.uber.org/zap"
)

var (
	ErrStaffNotFound = errors.New("staff not found")
	ErrStaffInactive = errors.New("staff is already inactive")
	ErrUnknownUnit   = errors.New("unknown unit")
)

// StaffService manages the employee registry.
type StaffService interface {
	// List returns every staff member with their unit.
	List(ctx context.Context) ([]models.Staff, error)
	Create(ctx context.Context, req models.NewStaffRequest) (*models.Staff, error)
	// Deactivate marks an active staff member inactive.
	Deactivate(ctx context.Context, id string) error
	Units(ctx context.Context) ([]models.Unit, error)
}

// DefaultStaffService implements StaffService.
type DefaultStaffService struct {
	Repo   clubRepo.Store
	Logger *zap.Logger
}
