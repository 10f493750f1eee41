package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jfmoncada/plata/internal/api"
)

// Event is published to subscribers on every authentication transition.
type Event struct {
	Authenticated bool
	User          *api.User
}

// authAPI is the slice of the API client the session needs.
type authAPI interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Logout(ctx context.Context) error
}

// Session is the single source of truth for the current identity.
// It is the only writer of the credential store; everything else reads
// the token through TokenFunc.
type Session struct {
	store  *Store
	client authAPI
	logger *slog.Logger

	mu      sync.RWMutex
	user    *api.User
	token   string
	loading bool

	subs []func(Event)
}

// New creates a session backed by the given store and auth client.
// The session starts in the loading state until CheckAuth runs.
func New(store *Store, client authAPI) *Session {
	return &Session{
		store:   store,
		client:  client,
		logger:  slog.Default(),
		loading: true,
	}
}

// TokenFunc returns a read-only accessor for the current token, for wiring
// into the API client.
func (s *Session) TokenFunc() api.TokenFunc {
	return func() string {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.token
	}
}

// Authenticated reports whether a user is logged in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Loading reports whether the initial CheckAuth has not yet completed.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User returns a copy of the current user, or nil when logged out.
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers fn to be called on every authentication transition.
// Must be called before the session is shared across goroutines.
func (s *Session) Subscribe(fn func(Event)) {
	s.subs = append(s.subs, fn)
}

// CheckAuth loads persisted credentials and settles the session state.
// Missing credentials are a normal state, not a failure: the session
// becomes unauthenticated and any stale fragment is removed so a
// token-without-user (or the reverse) cannot linger.
func (s *Session) CheckAuth() {
	token, err := s.store.Token()
	if err != nil {
		s.logger.Warn("reading persisted token", "error", err)
	}
	user, err := s.store.User()
	if err != nil {
		s.logger.Warn("reading persisted user", "error", err)
	}

	if token == "" || user == nil {
		if err := s.store.ClearCredentials(); err != nil {
			s.logger.Warn("clearing stale credentials", "error", err)
		}
		s.settle("", nil)
		return
	}

	s.settle(token, user)
}

// Login authenticates against the API, persists the credentials, and flips
// the session to authenticated. On failure nothing is persisted and the
// error propagates to the caller for display.
func (s *Session) Login(ctx context.Context, username, password string) error {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := s.store.SaveCredentials(result.Token, result.User); err != nil {
		return err
	}

	user := result.User
	s.settle(result.Token, &user)
	return nil
}

// Logout invalidates the token remotely (best-effort), then unconditionally
// clears the persisted credentials and the in-memory state.
func (s *Session) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed", "error", err)
	}

	if err := s.store.ClearCredentials(); err != nil {
		s.logger.Warn("clearing credentials", "error", err)
	}
	s.settle("", nil)
}

// ForceLogout drops the session without calling the API, for when a
// request already came back unauthorized.
func (s *Session) ForceLogout() {
	if err := s.store.ClearCredentials(); err != nil {
		s.logger.Warn("clearing credentials", "error", err)
	}
	s.settle("", nil)
}

// Recheck re-reads the store, picking up changes made by another process.
func (s *Session) Recheck() {
	s.CheckAuth()
}

// settle applies the new state and publishes an event if the
// authentication flag actually changed.
func (s *Session) settle(token string, user *api.User) {
	s.mu.Lock()
	wasAuth := s.user != nil
	s.user = user
	s.token = token
	s.loading = false
	nowAuth := user != nil
	subs := s.subs
	s.mu.Unlock()

	if wasAuth == nowAuth {
		return
	}

	ev := Event{Authenticated: nowAuth, User: user}
	for _, fn := range subs {
		fn(ev)
	}
}
