// Package session owns the authentication token and the login state derived
// from it.
package session

import (
	"context"
	"fmt"
	"sync"
)

// TokenKey is the single well-known storage key the token persists under.
const TokenKey = "auth_token"

// Store persists the token across runs. The sqlite repository implements it.
type Store interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

// Session is a single mutable token cell with one writer at a time (Login or
// Logout, both user-triggered) and many concurrent readers attaching the
// token to outgoing requests. Invariant: IsLoggedIn() == (token != "").
type Session struct {
	mu    sync.RWMutex
	token string
	store Store
}

// Load reads the persisted token synchronously and returns a ready session.
// A missing token starts the session anonymous.
func Load(ctx context.Context, store Store) (*Session, error) {
	token, err := store.GetValue(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("load persisted token: %w", err)
	}
	return &Session{token: token, store: store}, nil
}

// Login persists the token, then flips the in-memory state. If persisting
// fails the session stays as it was.
func (s *Session) Login(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("login requires a non-empty token")
	}
	if err := s.store.SetValue(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Logout clears the persisted token and the in-memory cell. It is also the
// forced transition taken when any authenticated call comes back 401.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.DeleteValue(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

// Token returns the current token, or "" when anonymous. Satisfies
// api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsLoggedIn() bool {
	return s.Token() != ""
}
