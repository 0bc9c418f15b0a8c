// Package session manages the signed-in account: it authenticates against
// the sync server, persists the bearer token, and hands it to the syncer.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/asteroid-belt/trickplanner/internal/log"
)

// ErrNotLoggedIn is returned by operations that need a signed-in account.
var ErrNotLoggedIn = errors.New("not logged in")

// Authenticator is the server side of sign-in.
type Authenticator interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenStore persists the token across runs.
type TokenStore interface {
	LoadToken() (token, email string, err error)
	SaveToken(token, email string) error
	ClearToken() error
}

// TokenSink receives the token whenever it changes. The sync agent is one.
type TokenSink interface {
	SetToken(token string)
}

// Manager owns the current token.
type Manager struct {
	auth  Authenticator
	state TokenStore
	sinks []TokenSink

	mu    sync.Mutex
	token string
	email string
}

// New creates a manager and restores any persisted token into the sinks.
func New(auth Authenticator, state TokenStore, sinks ...TokenSink) (*Manager, error) {
	m := &Manager{auth: auth, state: state, sinks: sinks}

	token, email, err := state.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	m.set(token, email)
	return m, nil
}

// Login signs in and persists the token.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	token, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: check email/password: %w", err)
	}
	if err := m.state.SaveToken(token, email); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	m.set(token, email)
	log.Debugf("signed in as %s", email)
	return nil
}

// Register creates the account and then signs in with it.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	if err := m.auth.Register(ctx, email, password); err != nil {
		return fmt.Errorf("registration failed: try a different email: %w", err)
	}
	return m.Login(ctx, email, password)
}

// Logout forgets the token locally. The server keeps no session state.
func (m *Manager) Logout() error {
	if !m.LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := m.state.ClearToken(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	m.set("", "")
	return nil
}

// Token returns the current bearer token, empty when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Email returns the signed-in account.
func (m *Manager) Email() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email
}

// LoggedIn reports whether a token is held.
func (m *Manager) LoggedIn() bool {
	return m.Token() != ""
}

func (m *Manager) set(token, email string) {
	m.mu.Lock()
	m.token = token
	m.email = email
	m.mu.Unlock()

	for _, sink := range m.sinks {
		sink.SetToken(token)
	}
}
