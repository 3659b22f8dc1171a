package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultStaffService) List(ctx context.Context) ([]models.Staff, error) {
	list, err := s.Repo.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	units, err := s.unitIndex(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if u, ok := units[list[i].UnitID]; ok {
			list[i].Unit = &u
			list[i].UnitName = u.Name
		}
	}
	return list, nil
}

func (s *DefaultStaffService) Create(ctx context.Context, req models.NewStaffRequest) (*models.Staff, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	unit, err := s.Repo.GetUnit(ctx, req.UnitID)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrUnknownUnit
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unit: %w", err)
	}

	st := &models.Staff{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(req.Name),
		Role:           req.Role,
		EmploymentType: req.EmploymentType,
		Phone:          strings.TrimSpace(req.Phone),
		IsActive:       true,
		UnitID:         unit.ID,
	}
	if st.Role == "" {
		st.Role = models.StaffRoleInstructor
	}
	if st.EmploymentType == "" {
		st.EmploymentType = models.EmploymentPlanta
	}
	if err := s.Repo.CreateStaff(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	st.Unit = unit
	st.UnitName = unit.Name
	s.Logger.Info("Staff registered", zap.String("staff", st.ID), zap.String("unit", unit.Name))
	return st, nil
}

func (s *DefaultStaffService) Deactivate(ctx context.Context, id string) error {
	st, err := s.Repo.GetStaff(ctx, id)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return ErrStaffNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch staff: %w", err)
	}
	if !st.IsActive {
		return ErrStaffInactive
	}
	if err := s.Repo.SetStaffActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate staff: %w", err)
	}
	s.Logger.Info("Staff deactivated", zap.String("staff", id))
	return nil
}

func (s *DefaultStaffService) Units(ctx context.Context) ([]models.Unit, error) {
	units, err := s.Repo.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

func (s *DefaultStaffService) unitIndex(ctx context.Context) (map[string]models.Unit, error) {
	units, err := s.Units(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]models.Unit, len(units))
	for _, u := range units {
		idx[u.ID] = u
	}
	return idx, nil
}
