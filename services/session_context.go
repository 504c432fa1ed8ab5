package services

import (
	"context"
	"sync"

	"battles_server/models"
)

// SessionContext is the per-request holder of "who is signed in". The
// middleware creates one after validating the session token; the profile
// itself is loaded at most once per request and can be reloaded after a
// mutation. A nil profile with a valid email means the identity exists
// but its profile document is gone.
type SessionContext struct {
	Email    string
	profiles *ProfileService

	mu      sync.Mutex
	loaded  bool
	profile *models.UserProfile
}

func NewSessionContext(profiles *ProfileService, email string) *SessionContext {
	return &SessionContext{Email: email, profiles: profiles}
}

// Profile returns the caller's profile, loading it on first use.
func (s *SessionContext) Profile(ctx context.Context) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.profile, nil
	}
	return s.loadLocked(ctx)
}

// Reload discards the cached profile and fetches it again.
func (s *SessionContext) Reload(ctx context.Context) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// IsAdmin resolves the caller's role from the profile document. Resolved
// once per request; missing profiles are never admins.
func (s *SessionContext) IsAdmin(ctx context.Context) (bool, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return false, err
	}
	return profile != nil && profile.Admin, nil
}

func (s *SessionContext) loadLocked(ctx context.Context) (*models.UserProfile, error) {
	profile, err := s.profiles.Load(ctx, s.Email)
	if err != nil {
		return nil, err
	}
	s.profile = profile
	s.loaded = true
	return profile, nil
}

type sessionKey struct{}

// WithSession attaches the session to a request context.
func WithSession(ctx context.Context, sess *SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session set by the auth middleware, or
// nil on unauthenticated requests.
func SessionFromContext(ctx context.Context) *SessionContext {
	sess, _ := ctx.Value(sessionKey{}).(*SessionContext)
	return sess
}
