package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	redisclient "github.com/vietddude/linkedin-mcp/internal/infra/redis"
)

// =============================================================================
// Mocks
// =============================================================================

type mockClient struct {
	mu        sync.Mutex
	session   domain.SessionState
	authErr   error
	authCalls int
}

func (c *mockClient) Authenticate(ctx context.Context, username, password string) (domain.SessionState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authCalls++
	if c.authErr != nil {
		return domain.SessionState{}, c.authErr
	}
	c.session = domain.SessionState{
		LoggedIn:  true,
		Username:  username,
		Cookies:   map[string]string{"li_at": "fresh"},
		CreatedAt: time.Now(),
	}
	return c.session, nil
}

func (c *mockClient) SetSession(s domain.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

func (c *mockClient) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = domain.SessionState{}
}

func (c *mockClient) Session() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

type mockStore struct {
	mu       sync.Mutex
	sessions map[string]domain.SessionState
	saveErr  error
}

func newMockStore() *mockStore {
	return &mockStore{sessions: make(map[string]domain.SessionState)}
}

func (s *mockStore) SaveSession(ctx context.Context, state domain.SessionState, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[state.Username] = state
	return nil
}

func (s *mockStore) GetSession(ctx context.Context, username string) (domain.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[username]
	if !ok {
		return domain.SessionState{}, redisclient.ErrNotFound
	}
	return state, nil
}

func (s *mockStore) DeleteSession(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, username)
	return nil
}

// =============================================================================
// Tests
// =============================================================================

func TestLogin_FreshCredentialLogin(t *testing.T) {
	client := &mockClient{}
	store := newMockStore()
	svc := NewService(client, store, 7*24*time.Hour, nil)

	session, err := svc.Login(context.Background(), "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !session.LoggedIn || session.Username != "jane@example.com" {
		t.Errorf("unexpected session: %+v", session)
	}
	if client.authCalls != 1 {
		t.Errorf("Authenticate called %d times, want 1", client.authCalls)
	}
	if _, ok := store.sessions["jane@example.com"]; !ok {
		t.Error("session should be persisted after login")
	}
}

func TestLogin_RestoresSavedSession(t *testing.T) {
	client := &mockClient{}
	store := newMockStore()
	store.sessions["jane@example.com"] = domain.SessionState{
		LoggedIn:  true,
		Username:  "jane@example.com",
		Cookies:   map[string]string{"li_at": "saved"},
		CreatedAt: time.Now().Add(-time.Hour),
	}
	svc := NewService(client, store, 7*24*time.Hour, nil)

	session, err := svc.Login(context.Background(), "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if client.authCalls != 0 {
		t.Errorf("Authenticate called %d times, want 0 (restore path)", client.authCalls)
	}
	if session.Cookies["li_at"] != "saved" {
		t.Error("saved session should be restored, not replaced")
	}
	if client.Session().Cookies["li_at"] != "saved" {
		t.Error("restored session should be installed on the client")
	}
}

func TestLogin_ExpiredSavedSessionForcesLogin(t *testing.T) {
	client := &mockClient{}
	store := newMockStore()
	store.sessions["jane@example.com"] = domain.SessionState{
		LoggedIn:  true,
		Username:  "jane@example.com",
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
	}
	svc := NewService(client, store, 7*24*time.Hour, nil)

	session, err := svc.Login(context.Background(), "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if client.authCalls != 1 {
		t.Errorf("Authenticate called %d times, want 1 (expired session)", client.authCalls)
	}
	if session.Cookies["li_at"] != "fresh" {
		t.Error("expired session should be replaced by a fresh login")
	}
}

func TestLogin_AuthFailure(t *testing.T) {
	client := &mockClient{authErr: &domain.AuthError{Message: "bad credentials"}}
	svc := NewService(client, newMockStore(), 7*24*time.Hour, nil)

	_, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestLogin_PersistFailureIsNotFatal(t *testing.T) {
	client := &mockClient{}
	store := newMockStore()
	store.saveErr = errors.New("redis down")
	svc := NewService(client, store, 7*24*time.Hour, nil)

	session, err := svc.Login(context.Background(), "jane@example.com", "secret")
	if err != nil {
		t.Fatalf("Login should succeed despite persist failure, got %v", err)
	}
	if !session.LoggedIn {
		t.Error("session should be live")
	}
}

func TestLogoutAndCheckSession(t *testing.T) {
	client := &mockClient{}
	store := newMockStore()
	svc := NewService(client, store, 7*24*time.Hour, nil)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "jane@example.com", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	state, err := svc.CheckSession(ctx)
	if err != nil {
		t.Fatalf("CheckSession failed: %v", err)
	}
	if !state.LoggedIn {
		t.Error("expected logged-in state after login")
	}

	if _, err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, ok := store.sessions["jane@example.com"]; ok {
		t.Error("persisted session should be deleted on logout")
	}

	state, err = svc.CheckSession(ctx)
	if err != nil {
		t.Fatalf("CheckSession failed: %v", err)
	}
	if state.LoggedIn {
		t.Error("expected logged-out state after logout")
	}
}
