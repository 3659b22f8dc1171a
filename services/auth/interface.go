package auth

import (
	"context"
	"errors"

	clubRepo "cedarclub/database/repository/club"
	"cedarclub/models"
	"cedarclub/utils"

	"go.uber.org/zap"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
)

// AuthService authenticates members and staff and issues bearer tokens.
type AuthService interface {
	// SelectProfile lists the active profiles under a membership number.
	SelectProfile(ctx context.Context, memberNumber string) ([]models.Profile, error)
	// Login checks a profile's PIN (minors) or password (adults).
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	// StaffLogin checks staff username and password.
	StaffLogin(ctx context.Context, req models.StaffLoginRequest) (*models.StaffLoginResponse, error)
}

// DefaultAuthService implements AuthService.
type DefaultAuthService struct {
	Repo   clubRepo.Store
	Tokens *utils.TokenIssuer
	Logger *zap.Logger
}
