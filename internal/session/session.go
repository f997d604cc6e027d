// Package session owns the single process-wide "current session" state:
// who is logged in, with what role, observable by every other component.
package session

import (
	"strings"
	"time"
)

// Role is the single UI role a principal collapses to. Always a member of
// the enumeration; unrecognized claim sets map to RoleUnknown, never empty.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleCoordinator Role = "COORDINATOR"
	RoleProfessor   Role = "PROFESSOR"
	RoleStudent     Role = "STUDENT"
	RoleUnknown     Role = "UNKNOWN"
)

// rolePriority is the fixed tie-break order: a principal holding several
// role claims collapses to the most-privileged one.
var rolePriority = []Role{RoleAdmin, RoleCoordinator, RoleProfessor, RoleStudent}

// Session is the record of the currently authenticated principal. At most
// one live instance exists process-wide, owned by the Manager.
type Session struct {
	Subject         string
	Name            string
	Email           string
	Role            Role
	AuthenticatedAt time.Time
}

// Credentials are the username/password pair for a direct-grant login.
type Credentials struct {
	Username string
	Password string
}

// HasRole reports whether the session's role is in roles. An empty roles
// set matches any authenticated session.
func (s *Session) HasRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// DeriveRole selects the first matching role in fixed priority order
// ADMIN > COORDINATOR > PROFESSOR > STUDENT over the granted claims.
// Returns RoleUnknown when no claim matches.
func DeriveRole(claims []string) Role {
	granted := make(map[Role]bool, len(claims))
	for _, c := range claims {
		granted[Role(strings.ToUpper(strings.TrimSpace(c)))] = true
	}
	for _, r := range rolePriority {
		if granted[r] {
			return r
		}
	}
	return RoleUnknown
}

// DisplayName returns name if non-empty; otherwise derives one from the
// local part of email, replacing separator characters with spaces and
// capitalizing each word. Returns "" when both are empty.
func DisplayName(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
