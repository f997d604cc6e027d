// Package routing holds the route table and the authorization guard that
// decides whether a navigation may proceed.
package routing

import (
	"sync"

	"github.com/google/uuid"

	"academic-records/console/internal/session"
)

// Redirect targets are fixed; the guard never redirects anywhere else.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Route is one navigable destination with its authorization requirement,
// fixed at route-table construction time. An empty Roles set means any
// authenticated session is acceptable; Public admits unconditionally.
type Route struct {
	Name   string
	Path   string
	Public bool
	Roles  []session.Role
}

// Navigation is one attempt to activate a route. The ID distinguishes it
// from earlier attempts at the same route so a superseded attempt cannot
// apply a stale redirect.
type Navigation struct {
	ID    uuid.UUID
	Route Route
}

// NewNavigation returns a Navigation for route with a fresh id.
func NewNavigation(route Route) Navigation {
	return Navigation{ID: uuid.New(), Route: route}
}

// Decision is the guard's verdict: admit, or redirect to a fixed target.
// A stale (superseded) navigation yields neither.
type Decision struct {
	Admit      bool
	RedirectTo string
}

// SessionReader is the session snapshot the guard consults. The guard only
// reads; it never mutates session state.
type SessionReader interface {
	Current() *session.Session
}

// Guard evaluates route admission against the current session.
type Guard struct {
	sessions SessionReader

	mu     sync.Mutex
	active uuid.UUID
}

// NewGuard returns a Guard reading session state from sessions.
func NewGuard(sessions SessionReader) *Guard {
	return &Guard{sessions: sessions}
}

// Begin marks nav as the active navigation, superseding any earlier one.
func (g *Guard) Begin(nav Navigation) {
	g.mu.Lock()
	g.active = nav.ID
	g.mu.Unlock()
}

// Evaluate decides admission for nav. Synchronous and side-effect-free: it
// reads the session snapshot and returns a Decision; the router applies any
// redirect. A redirect for a navigation that is no longer active is
// downgraded to a no-op so at most one redirect applies per navigation id.
func (g *Guard) Evaluate(nav Navigation) Decision {
	d := g.decide(nav.Route)
	if d.RedirectTo != "" && !g.isActive(nav.ID) {
		return Decision{}
	}
	return d
}

func (g *Guard) decide(route Route) Decision {
	if route.Public {
		return Decision{Admit: true}
	}
	s := g.sessions.Current()
	if s == nil {
		// The attempted destination is discarded, not remembered.
		return Decision{RedirectTo: LoginPath}
	}
	if len(route.Roles) == 0 {
		return Decision{Admit: true}
	}
	if s.HasRole(route.Roles...) {
		return Decision{Admit: true}
	}
	return Decision{RedirectTo: UnauthorizedPath}
}

func (g *Guard) isActive(id uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active == id
}
