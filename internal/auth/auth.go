package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("user not known or password incorrect")

// Credentials maps usernames to passwords. This is deliberately thin glue:
// no hashing, no expiry. The credential list comes from configuration.
type Credentials map[string]string

// ParseCredentials reads a "user:pass,user:pass" list.
func ParseCredentials(raw string) Credentials {
	creds := Credentials{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, pass, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(user) == "" {
			continue
		}
		creds[strings.TrimSpace(user)] = pass
	}
	return creds
}

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager owns the session lifecycle: anonymous until Login, authenticated
// while the token is held, logged out once Logout deletes it. No ambient
// global state; the manager is passed to whoever needs it.
type Manager struct {
	mu          sync.Mutex
	credentials Credentials
	sessions    map[string]Session
}

func NewManager(creds Credentials) *Manager {
	return &Manager{credentials: creds, sessions: map[string]Session{}}
}

func (m *Manager) Login(username, password string) (Session, error) {
	expected, ok := m.credentials[username]
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		return Session{}, ErrInvalidCredentials
	}

	s := Session{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func (m *Manager) Lookup(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	return s, ok
}
