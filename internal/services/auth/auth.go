// Package auth owns the LinkedIn session lifecycle: login, logout, and
// session checks. Sessions are persisted so a restart does not force a
// fresh credential login.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	redisclient "github.com/vietddude/linkedin-mcp/internal/infra/redis"
)

// LinkedInClient is the slice of the LinkedIn client auth needs.
type LinkedInClient interface {
	Authenticate(ctx context.Context, username, password string) (domain.SessionState, error)
	SetSession(s domain.SessionState)
	ClearSession()
	Session() domain.SessionState
}

// SessionStore persists sessions across restarts.
type SessionStore interface {
	SaveSession(ctx context.Context, s domain.SessionState, ttl time.Duration) error
	GetSession(ctx context.Context, username string) (domain.SessionState, error)
	DeleteSession(ctx context.Context, username string) error
}

// Service implements the login/logout/checkSession operations.
type Service struct {
	client LinkedInClient
	store  SessionStore
	ttl    time.Duration
	log    *slog.Logger
}

// NewService creates the auth service. ttl bounds how long a persisted
// session is trusted before a fresh login is forced.
func NewService(client LinkedInClient, store SessionStore, ttl time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, store: store, ttl: ttl, log: log}
}

// Login establishes a session for username. A persisted, unexpired session
// is restored without contacting LinkedIn; otherwise a credential login
// runs and the fresh session is persisted.
func (s *Service) Login(ctx context.Context, username, password string) (domain.SessionState, error) {
	saved, err := s.store.GetSession(ctx, username)
	if err == nil && saved.LoggedIn && !saved.Expired(s.ttl) {
		s.log.Info("restored saved session", "username", username)
		s.client.SetSession(saved)
		return saved, nil
	}
	if err != nil && !errors.Is(err, redisclient.ErrNotFound) {
		s.log.Warn("session lookup failed, falling back to credential login",
			"username", username, "error", err)
	}

	session, err := s.client.Authenticate(ctx, username, password)
	if err != nil {
		return domain.SessionState{}, err
	}

	if err := s.store.SaveSession(ctx, session, s.ttl); err != nil {
		// The login itself succeeded; only restore-on-restart is lost.
		s.log.Warn("failed to persist session", "username", username, "error", err)
	}
	return session, nil
}

// Logout tears down the current session.
func (s *Service) Logout(ctx context.Context) (domain.SessionState, error) {
	current := s.client.Session()
	s.client.ClearSession()

	if current.Username != "" {
		if err := s.store.DeleteSession(ctx, current.Username); err != nil {
			s.log.Warn("failed to delete persisted session",
				"username", current.Username, "error", err)
		}
	}
	return domain.SessionState{LoggedIn: false}, nil
}

// CheckSession reports the current session state without touching LinkedIn.
func (s *Service) CheckSession(ctx context.Context) (domain.SessionState, error) {
	current := s.client.Session()
	if current.Expired(s.ttl) {
		return domain.SessionState{LoggedIn: false, Username: current.Username}, nil
	}
	return current, nil
}
