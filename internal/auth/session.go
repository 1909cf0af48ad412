package auth

import (
	"errors"

	"github.com/studiowebux/gradebook/internal/types"
)

var (
	// ErrNotLoggedIn is returned by the guard when no identity is set
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrPermission is returned when a non-admin attempts an admin operation
	ErrPermission = errors.New("permission denied")
	// ErrBadCredentials covers both unknown identities and wrong passwords
	ErrBadCredentials = errors.New("invalid username or password")
)

// Session holds the currently authenticated identity, if any
type Session struct {
	identity string
	role     types.Role
	active   bool
}

// Login sets the authenticated identity
func (s *Session) Login(identity string, role types.Role) {
	s.identity = identity
	s.role = role
	s.active = true
}

// Logout clears the session
func (s *Session) Logout() {
	*s = Session{}
}

// Identity returns the authenticated identity and whether one is set
func (s *Session) Identity() (string, bool) {
	return s.identity, s.active
}

// Role returns the authenticated role, empty when logged out
func (s *Session) Role() types.Role {
	return s.role
}

// IsAdmin reports whether the session belongs to the administrator
func (s *Session) IsAdmin() bool {
	return s.active && s.role == types.RoleAdmin
}

// RequireAuthenticated fails when nobody is logged in
func (s *Session) RequireAuthenticated() error {
	if !s.active {
		return ErrNotLoggedIn
	}
	return nil
}

// RequireAdmin fails when nobody is logged in or the role is not admin
func (s *Session) RequireAdmin() error {
	if err := s.RequireAuthenticated(); err != nil {
		return err
	}
	if s.role != types.RoleAdmin {
		return ErrPermission
	}
	return nil
}
