package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"
	"cedarclub/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultAuthService) SelectProfile(ctx context.Context, memberNumber string) ([]models.Profile, error) {
	number := strings.TrimSpace(memberNumber)
	if number == "" {
		return nil, ErrMembershipNotFound
	}
	membership, err := s.Repo.GetMembershipByNumber(ctx, number)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}

	stored, err := s.Repo.ListProfiles(ctx, membership.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	profiles := make([]models.Profile, 0, len(stored))
	for _, p := range stored {
		if p.IsActive {
			profiles = append(profiles, p.Candidate())
		}
	}
	return profiles, nil
}

func (s *DefaultAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	profile, err := s.Repo.GetProfile(ctx, req.ProfileID)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if !profile.IsActive {
		return nil, ErrInactiveAccount
	}

	hash, secret := profile.PasswordHash, req.Password
	if profile.IsMinor {
		hash, secret = profile.PINHash, req.PIN
	}
	if hash == "" || secret == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		s.Logger.Debug("Login rejected", zap.String("profile", profile.ID))
		return nil, ErrInvalidCredentials
	}

	membership, err := s.Repo.GetMembership(ctx, profile.MembershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch membership: %w", err)
	}

	token, err := s.Tokens.GenerateToken(utils.TokenClaims{
		Subject:      profile.ID,
		UserType:     string(models.UserTypeMember),
		MembershipID: membership.ID,
		Role:         profile.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user := &models.User{
		ID:           profile.ID,
		MembershipID: membership.ID,
		MemberNumber: models.MemberNumber(membership.Number),
		Role:         profile.Role,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		UserType:     models.UserTypeMember,
	}
	s.Logger.Info("Member logged in", zap.String("profile", profile.ID), zap.String("membership", membership.Number))
	return &models.LoginResponse{User: user, Token: token}, nil
}

func (s *DefaultAuthService) StaffLogin(ctx context.Context, req models.StaffLoginRequest) (*models.StaffLoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}
	staff, err := s.Repo.GetStaffByUsername(ctx, username)
	if errors.Is(err, clubRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	if staff.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, ErrInactiveAccount
	}

	if unit, err := s.Repo.GetUnit(ctx, staff.UnitID); err == nil {
		staff.Unit = unit
		staff.UnitName = unit.Name
	}

	token, err := s.Tokens.GenerateToken(utils.TokenClaims{
		Subject:  staff.ID,
		UserType: string(models.UserTypeEmployee),
		Role:     staff.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	s.Logger.Info("Staff logged in", zap.String("staff", staff.ID))
	return &models.StaffLoginResponse{Staff: *staff, Token: token}, nil
}
