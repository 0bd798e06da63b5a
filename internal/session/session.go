// Package session holds the authenticated identity and credential for
// the current operator and gates everything that needs one.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskflow-project/taskflowctl/internal/api"
)

// ErrNotLoggedIn is returned by operations that require a session.
var ErrNotLoggedIn = errors.New("not logged in (run 'taskflowctl login')")

// ErrExpired is returned when the stored token's lifetime has passed.
var ErrExpired = errors.New("session expired (run 'taskflowctl login')")

// Session is the credential/identity pair captured at login time.
// Token and Identity are always both set or both absent.
type Session struct {
	Token    string    `json:"token"`
	Identity *api.User `json:"user"`
}

// LoginClient is the part of the API client the manager needs.
type LoginClient interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
}

// Manager owns the session state machine: LoggedOut <-> LoggedIn.
// Between CLI invocations the state lives in a JSON file; a missing,
// partial or corrupt file reads back as LoggedOut.
type Manager struct {
	path    string
	current *Session
}

// NewManager creates a manager persisting to path and loads whatever
// session is already stored there.
func NewManager(path string) *Manager {
	m := &Manager{path: path}
	m.load()
	return m
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return
	}
	// Half a session is no session.
	if s.Token == "" || s.Identity == nil {
		return
	}
	m.current = &s
}

// LoggedIn reports whether a complete session is present.
func (m *Manager) LoggedIn() bool {
	return m.current != nil
}

// Current returns the active session, or nil when logged out.
func (m *Manager) Current() *Session {
	return m.current
}

// Token implements api.TokenSource. Empty when logged out.
func (m *Manager) Token() string {
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Identity returns the identity snapshot captured at login, or nil.
func (m *Manager) Identity() *api.User {
	if m.current == nil {
		return nil
	}
	return m.current.Identity
}

// Login performs the login call and transitions to LoggedIn only when
// the payload carries both a token and an identity. On any other
// outcome the state stays LoggedOut and the cause is returned.
func (m *Manager) Login(ctx context.Context, client LoginClient, email, password string) (*api.User, error) {
	result, err := client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Token == "" || result.User == nil {
		return nil, fmt.Errorf("login response missing token or user")
	}

	s := &Session{Token: result.Token, Identity: result.User}
	if err := m.persist(s); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	m.current = s
	return result.User, nil
}

// Logout unconditionally clears the session, in memory and on disk.
func (m *Manager) Logout() error {
	m.current = nil
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Require returns an error unless a live session is present. An
// expired token counts as logged out.
func (m *Manager) Require() error {
	if m.current == nil {
		return ErrNotLoggedIn
	}
	if m.tokenExpired() {
		return ErrExpired
	}
	return nil
}

// tokenExpired decodes the token's exp claim without verifying the
// signature; verification is the backend's job, this only avoids a
// guaranteed 401 round trip. Tokens without a readable exp claim are
// assumed live.
func (m *Manager) tokenExpired() bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(m.current.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (m *Manager) persist(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}
