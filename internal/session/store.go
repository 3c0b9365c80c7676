// Package session caches the profile of the signed-in author. The upstream is
// the only authority; the cache is reconciled on every protected page load.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"example.com/notely-web/internal/account"
)

var ErrNoSession = errors.New("no active session")

// Checker asks the upstream who the current browser belongs to.
type Checker interface {
	Me(ctx context.Context) (account.User, error)
}

type Logouter interface {
	Logout(ctx context.Context) error
}

// LogoutFunc adapts a function to Logouter.
type LogoutFunc func(ctx context.Context) error

func (f LogoutFunc) Logout(ctx context.Context) error { return f(ctx) }

// Store is written only by Check and Logout.
type Store struct {
	mu   sync.RWMutex
	user *account.User
}

func NewStore() *Store {
	return &Store{}
}

// User returns the cached profile.
func (s *Store) User() (account.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return account.User{}, false
	}
	return *s.user, true
}

// Check runs the session check. Success replaces the cached profile, any
// failure clears it.
func (s *Store) Check(ctx context.Context, c Checker) (account.User, error) {
	const op = "session.Check"

	u, err := c.Me(ctx)
	if err == nil && u.EmailAddress == "" {
		err = ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.user = nil
		return account.User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.user = &u
	return u, nil
}

// Logout ends the upstream session and clears the cache even when the upstream
// call fails.
func (s *Store) Logout(ctx context.Context, l Logouter) error {
	const op = "session.Logout"

	err := l.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
