package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExpired marks a request rejected with HTTP 401. The whole session, not
// just the one action, is invalid: the API client clears stored credentials
// and callers route back to login.
var ErrExpired = errors.New("session: expired")

// Storage keys, named as the backend and the original client speak them.
const (
	keyToken = "userToken"
	keyRole  = "rolUser"
)

// Role identifies which dashboard and operations a signed-in user gets.
type Role string

const (
	RolePatient      Role = "paciente"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "recepcionista"
)

// ParseRole validates a role string coming from storage or the backend.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RolePatient:
		return RolePatient, nil
	case RoleDoctor:
		return RoleDoctor, nil
	case RoleReceptionist:
		return RoleReceptionist, nil
	default:
		return "", fmt.Errorf("session: unknown role %q", s)
	}
}

// Staff reports whether the role may confirm or cancel other users'
// appointments.
func (r Role) Staff() bool {
	return r == RoleDoctor || r == RoleReceptionist
}

// Manager owns the bearer token and role for the signed-in user. It is the
// only shared mutable state in the client; everything that needs the session
// receives a Manager at construction time instead of reading storage
// ambiently.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	if store == nil {
		panic("session: store required")
	}
	return &Manager{store: store}
}

// Save records the credentials issued at login.
func (m *Manager) Save(token string, role Role) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("session: empty token")
	}
	if err := m.store.Set(keyToken, token); err != nil {
		return err
	}
	return m.store.Set(keyRole, string(role))
}

// Token returns the stored bearer token, or "" when signed out.
func (m *Manager) Token() string {
	token, err := m.store.Get(keyToken)
	if err != nil {
		return ""
	}
	return token
}

// Role returns the stored role, or "" when signed out or corrupt.
func (m *Manager) Role() Role {
	raw, err := m.store.Get(keyRole)
	if err != nil {
		return ""
	}
	role, err := ParseRole(raw)
	if err != nil {
		return ""
	}
	return role
}

// Authenticated reports whether a token is present. Validity is decided by
// the server; a 401 on any call clears the session.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Clear drops the stored credentials. Called on logout and on HTTP 401.
func (m *Manager) Clear() error {
	return m.store.Remove(keyToken, keyRole)
}
