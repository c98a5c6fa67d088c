package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	redisclient "github.com/vietddude/linkedin-mcp/internal/infra/redis"
)

// MemoryStore keeps sessions in process memory. Used when no redis is
// configured; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	state     domain.SessionState
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-process session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

func (s *MemoryStore) SaveSession(ctx context.Context, state domain.SessionState, ttl time.Duration) error {
	if state.Username == "" {
		return errors.New("session has no username")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.Username] = memorySession{state: state, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) GetSession(ctx context.Context, username string) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[username]
	if !ok || time.Now().After(sess.expiresAt) {
		delete(s.sessions, username)
		return domain.SessionState{}, redisclient.ErrNotFound
	}
	return sess.state, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, username)
	return nil
}
