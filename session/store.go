// Package session holds the authenticated identity of the running client.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cedarclub/models"

	"go.uber.org/zap"
)

// Persisted keys.
const (
	KeyUser  = "auth_user"
	KeyToken = "auth_token"
)

var ErrEmptyToken = errors.New("session token is empty")

// Store is the single source of truth for who is logged in. It is safe for
// concurrent use.
type Store struct {
	storage Storage
	logger  *zap.Logger

	mu    sync.RWMutex
	user  *models.User
	token string
}

// Open restores a previously persisted session. A missing key or an
// undecodable user leaves the store unauthenticated.
func Open(ctx context.Context, storage Storage, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{storage: storage, logger: logger}

	rawUser, hasUser, err := storage.Get(ctx, KeyUser)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	token, hasToken, err := storage.Get(ctx, KeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if !hasUser || !hasToken || token == "" {
		return s, nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		logger.Warn("Discarding undecodable session user", zap.Error(err))
		return s, nil
	}
	if err := u.Validate(); err != nil {
		logger.Warn("Discarding invalid session user", zap.Error(err))
		return s, nil
	}
	s.user = &u
	s.token = token
	return s, nil
}

// Login persists user and token and replaces any previous session.
func (s *Store) Login(ctx context.Context, user models.User, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := user.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(ctx, map[string]string{KeyUser: string(data), KeyToken: token}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.user = &user
	s.token = token
	s.logger.Info("Session opened", zap.String("user", user.ID), zap.String("type", string(user.UserType)))
	return nil
}

// Logout clears both persisted keys. The in-memory session is dropped even
// when storage fails, so the client never keeps acting as the old user.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	if err := s.storage.Delete(ctx, KeyUser, KeyToken); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("Session closed")
	return nil
}

// User returns a copy of the current identity.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Token returns the bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}
