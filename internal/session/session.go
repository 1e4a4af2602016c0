// Package session holds the authentication slice: the current user and
// the authenticated flag, persisted across restarts.
//
// The credential check is a demo stub against a fixed in-memory list; it
// exists so the rest of the application has a real login/logout lifecycle
// to hang state on, not as a security boundary.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/calebwray/portal/internal/storage"
)

// StorageKey is the slice's key in the persistence store.
const StorageKey = "auth-storage"

// loginDelay simulates network latency on the mock credential check.
const loginDelay = 800 * time.Millisecond

// User is the stored identity. The password never appears here.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// snapshot is the persisted form of the slice.
type snapshot struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// ValidationError reports a form field failing its local check. It never
// reaches the credential list.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername applies the minimum-length check.
func ValidateUsername(username string) error {
	if len(username) < 2 {
		return &ValidationError{Field: "username", Message: "must have at least 2 characters"}
	}
	return nil
}

// ValidatePassword applies the minimum-length check.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return &ValidationError{Field: "password", Message: "must have at least 6 characters"}
	}
	return nil
}

type credential struct {
	id       int
	username string
	password string
	email    string
}

// Mock user database for demo purposes.
var mockUsers = []credential{
	{id: 1, username: "admin", password: "password", email: "admin@example.com"},
	{id: 2, username: "user", password: "password", email: "user@example.com"},
}

// Store is the session slice. State changes persist synchronously.
type Store struct {
	storage *storage.Store
	delay   time.Duration

	mu            sync.Mutex
	user          *User
	authenticated bool
}

// Option adjusts Store construction.
type Option func(*Store)

// WithLoginDelay overrides the simulated login latency. Test seam.
func WithLoginDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// New builds the slice, rehydrating from st. An absent or unreadable
// snapshot yields the first-run defaults: no user, unauthenticated.
func New(st *storage.Store, opts ...Option) *Store {
	s := &Store{storage: st, delay: loginDelay}
	for _, opt := range opts {
		opt(s)
	}
	raw, err := st.Get(StorageKey)
	if err != nil {
		return s
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return s
	}
	s.user = snap.User
	s.authenticated = snap.IsAuthenticated && snap.User != nil
	return s
}

// Login checks username/password against the built-in credential list
// after a simulated latency. On match the slice becomes authenticated
// (password stripped from the stored user) and persists; on mismatch it
// returns false and leaves state unchanged.
func (s *Store) Login(ctx context.Context, username, password string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(s.delay):
	}

	for _, cred := range mockUsers {
		if cred.username != username || cred.password != password {
			continue
		}
		s.mu.Lock()
		s.user = &User{ID: cred.id, Username: cred.username, Email: cred.email}
		s.authenticated = true
		err := s.persistLocked()
		s.mu.Unlock()
		if err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// Logout unconditionally clears the slice and persists the cleared state.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authenticated = false
	return s.persistLocked()
}

// User returns the current user and whether one is set.
func (s *Store) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a login has succeeded.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(snapshot{User: s.user, IsAuthenticated: s.authenticated})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.storage.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
