// Package session persists the authenticated user's token and identity.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/domain"
	"github.com/cabmobile/monitor/internal/state"
)

// Store is the single token store shared by every screen.
// Mutators write through to the preferences repository before the
// observable authenticated flag changes.
type Store struct {
	prefs  domain.Preferences
	logger *zap.Logger

	mu            sync.Mutex // serialises writers
	authenticated *state.Value[bool]
}

// NewStore creates a store whose authenticated flag reflects the persisted token
func NewStore(ctx context.Context, prefs domain.Preferences, logger *zap.Logger) (*Store, error) {
	_, ok, err := prefs.Get(ctx, domain.KeyAuthToken)
	if err != nil {
		return nil, fmt.Errorf("session: failed to read persisted token: %w", err)
	}

	return &Store{
		prefs:         prefs,
		logger:        logger,
		authenticated: state.NewValue(ok),
	}, nil
}

// Authenticated exposes the observable login flag
func (s *Store) Authenticated() *state.Value[bool] {
	return s.authenticated
}

// SaveSession persists token and identity in one batch
func (s *Store) SaveSession(ctx context.Context, token, userID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.prefs.PutAll(ctx, map[string]string{
		domain.KeyAuthToken: token,
		domain.KeyUserID:    userID,
		domain.KeyUserEmail: email,
	})
	if err != nil {
		return fmt.Errorf("session: failed to save session: %w", err)
	}

	s.authenticated.Set(true)
	s.logger.Info("session saved", zap.String("user_id", userID))
	return nil
}

// SaveToken persists only the token
func (s *Store) SaveToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.PutAll(ctx, map[string]string{domain.KeyAuthToken: token}); err != nil {
		return fmt.Errorf("session: failed to save token: %w", err)
	}
	s.authenticated.Set(true)
	return nil
}

// SaveUserData persists the user identity without touching the token
func (s *Store) SaveUserData(ctx context.Context, userID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.prefs.PutAll(ctx, map[string]string{
		domain.KeyUserID:    userID,
		domain.KeyUserEmail: email,
	})
	if err != nil {
		return fmt.Errorf("session: failed to save user data: %w", err)
	}
	return nil
}

// ClearSession removes every persisted session field
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.Delete(ctx, domain.SessionKeys...); err != nil {
		return fmt.Errorf("session: failed to clear session: %w", err)
	}

	s.authenticated.Set(false)
	s.logger.Info("session cleared")
	return nil
}

// Token returns the persisted token, if any.
// A storage read failure is logged and reported as no token.
func (s *Store) Token(ctx context.Context) (string, bool) {
	return s.read(ctx, domain.KeyAuthToken)
}

// BearerHeader returns "Bearer <token>" when a token is stored
func (s *Store) BearerHeader(ctx context.Context) (string, bool) {
	token, ok := s.Token(ctx)
	if !ok {
		return "", false
	}
	return "Bearer " + token, true
}

// UserID returns the persisted user id, if any
func (s *Store) UserID(ctx context.Context) (string, bool) {
	return s.read(ctx, domain.KeyUserID)
}

// UserEmail returns the persisted user email, if any
func (s *Store) UserEmail(ctx context.Context) (string, bool) {
	return s.read(ctx, domain.KeyUserEmail)
}

// IsAuthenticated reports whether a token is stored
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Session returns a snapshot of every persisted field
func (s *Store) Session(ctx context.Context) domain.AuthSession {
	var session domain.AuthSession
	if v, ok := s.Token(ctx); ok {
		session.Token = &v
	}
	if v, ok := s.UserID(ctx); ok {
		session.UserID = &v
	}
	if v, ok := s.UserEmail(ctx); ok {
		session.UserEmail = &v
	}
	return session
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.prefs.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read preference", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}
