// Package session owns the authenticated identity of the storefront. It is
// the single writer of the session token slot; views observe changes through
// Subscribe rather than reaching into ambient globals.
package session

import (
	"context"
	"sync"

	"pizza-storefront/internal/client"
	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/models"
)

// Store holds the current session and coordinates auth calls, the token
// slot, and token persistence.
type Store struct {
	api    *client.Client
	slot   *TokenSlot
	tokens TokenStore
	logger logger.Logger

	mu          sync.RWMutex
	user        *models.User
	subscribers []func(*models.User)
}

func NewStore(api *client.Client, slot *TokenSlot, tokens TokenStore, log logger.Logger) *Store {
	return &Store{
		api:    api,
		slot:   slot,
		tokens: tokens,
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// Subscribe registers an observer invoked with the current user after every
// session change (nil on logout).
func (s *Store) Subscribe(fn func(*models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(user *models.User) {
	s.mu.RLock()
	subs := make([]func(*models.User), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(user)
	}
}

// Current returns the logged-in user, or nil when anonymous.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a session is established.
func (s *Store) IsAuthenticated() bool {
	return s.Current() != nil && s.slot.Token() != ""
}

// Initials renders the navigation badge for the current user, empty when
// anonymous.
func (s *Store) Initials() string {
	user := s.Current()
	if user == nil {
		return ""
	}
	return models.Initials(user.Name)
}

func (s *Store) establish(ctx context.Context, auth *models.AuthResponse) {
	s.slot.set(auth.Token)
	if err := s.tokens.Save(ctx, auth.Token); err != nil {
		// A session that does not survive restart is still a session.
		s.logger.Warn("failed to persist token", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.user = auth.User
	s.mu.Unlock()

	metrics.SessionsActive.Set(1)
	s.notify(auth.User)
}

func (s *Store) clear(ctx context.Context) {
	s.slot.set("")
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear persisted token", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	metrics.SessionsActive.Set(0)
	s.notify(nil)
}

// Login authenticates with the backend. On failure the session stays unset
// and the server's message is surfaced; the caller remains on the login view.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	auth, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login rejected", map[string]interface{}{
			"email": email,
			"error": errors.UserMessage(err),
		})
		return nil, err
	}

	s.establish(ctx, auth)
	s.logger.Info("login succeeded", map[string]interface{}{"userId": auth.User.ID})
	return auth.User, nil
}

// Register creates an account and establishes a session exactly like Login.
func (s *Store) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	auth, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.logger.Info("registration rejected", map[string]interface{}{
			"email": email,
			"error": errors.UserMessage(err),
		})
		return nil, err
	}

	s.establish(ctx, auth)
	s.logger.Info("registration succeeded", map[string]interface{}{"userId": auth.User.ID})
	return auth.User, nil
}

// Logout tells the backend and always clears local state, whatever the
// server answered. The returned message is informational only.
func (s *Store) Logout(ctx context.Context) string {
	msg, err := s.api.Logout(ctx)
	if err != nil {
		s.logger.Warn("server logout failed, clearing local session anyway", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.clear(ctx)
	return msg
}

// Restore re-establishes the session from a persisted token on startup.
// A stale token leaves the session anonymous without error.
func (s *Store) Restore(ctx context.Context) (*models.User, error) {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		return nil, errors.NewTokenStoreFailedError(err)
	}
	if token == "" {
		return nil, nil
	}

	s.slot.set(token)
	user, err := s.api.Me(ctx)
	if err != nil || user == nil {
		if err != nil {
			s.logger.Warn("session restore failed", map[string]interface{}{"error": err.Error()})
		}
		s.clear(ctx)
		return nil, nil
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	metrics.SessionsActive.Set(1)
	s.notify(user)
	s.logger.Info("session restored", map[string]interface{}{"userId": user.ID})
	return user, nil
}

// UpdateProfile edits the current user's name/email (password optional) and
// refreshes the session with the returned user and token.
func (s *Store) UpdateProfile(ctx context.Context, name, email, password string) (*models.User, error) {
	current := s.Current()
	if current == nil {
		return nil, errors.NewSessionExpiredError("no active session")
	}

	auth, err := s.api.UpdateUser(ctx, current.ID, client.UpdateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	s.establish(ctx, auth)
	return auth.User, nil
}
