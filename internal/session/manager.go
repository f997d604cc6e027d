package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"academic-records/console/internal/idp"
	"academic-records/console/internal/session/cache"
)

// expirySkew is how close to expiry a cached access token is still treated
// as live during silent recovery.
const expirySkew = 10 * time.Second

// Provider is the identity-provider surface the Manager needs.
type Provider interface {
	Login(ctx context.Context, username, password string) (*idp.TokenSet, error)
	Refresh(ctx context.Context, refreshToken string) (*idp.TokenSet, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Manager is the single source of truth for the current session. It is the
// only component that mutates session state; everyone else reads through
// Current or Subscribe.
type Manager struct {
	provider Provider
	cache    cache.Cache

	// opMu serializes authentication exchanges so two exchanges are never
	// in flight with interleaving results.
	opMu sync.Mutex

	mu      sync.RWMutex
	current *Session
	tokens  *idp.TokenSet
	subs    map[int]chan *Session
	nextSub int
}

// NewManager returns a Manager with no session established.
func NewManager(provider Provider, c cache.Cache) *Manager {
	return &Manager{
		provider: provider,
		cache:    c,
		subs:     make(map[int]chan *Session),
	}
}

// Initialize attempts silent recovery from the cached artifact without
// prompting the user: a still-live access token is adopted directly, an
// expired one is refreshed once. Reports whether a session was recovered;
// recovery failure is not an error, it just means a fresh login is needed.
func (m *Manager) Initialize(ctx context.Context) (bool, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	art, err := m.cache.Load()
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			log.Printf("session: reading cached artifact: %v", err)
		}
		return false, nil
	}

	if art.AccessToken != "" && time.Now().UTC().Add(expirySkew).Before(art.ExpiresAt) {
		ts := &idp.TokenSet{
			AccessToken:  art.AccessToken,
			RefreshToken: art.RefreshToken,
			ExpiresAt:    art.ExpiresAt,
		}
		if err := m.adopt(ts); err == nil {
			return true, nil
		}
	}

	if art.RefreshToken != "" {
		ts, err := m.provider.Refresh(ctx, art.RefreshToken)
		if err == nil {
			if err := m.adopt(ts); err == nil {
				m.persist(ts)
				return true, nil
			}
		}
	}

	_ = m.cache.Clear()
	return false, nil
}

// Login authenticates with the provider and publishes a new Session on
// success. On failure the existing session, if any, is left untouched.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	ts, err := m.provider.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return fmt.Errorf("session: login: %w", err)
	}
	if err := m.adopt(ts); err != nil {
		return fmt.Errorf("session: login: %w", err)
	}
	m.persist(ts)
	return nil
}

// Logout clears local session state unconditionally, then invalidates the
// provider-side session best-effort. Local state is never still
// authenticated when Logout returns, even if the remote call fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	refreshToken := ""
	if m.tokens != nil {
		refreshToken = m.tokens.RefreshToken
	}
	m.setLocked(nil, nil)
	m.mu.Unlock()

	if err := m.cache.Clear(); err != nil {
		log.Printf("session: clearing artifact cache: %v", err)
	}

	if refreshToken == "" {
		return nil
	}
	if err := m.provider.Logout(ctx, refreshToken); err != nil {
		return fmt.Errorf("session: remote logout: %w", err)
	}
	return nil
}

// ForceLogout tears down local session state without contacting the
// provider. Used when a backend response shows the session is no longer
// valid (stale token fail-safe).
func (m *Manager) ForceLogout() {
	m.mu.Lock()
	m.setLocked(nil, nil)
	m.mu.Unlock()
	if err := m.cache.Clear(); err != nil {
		log.Printf("session: clearing artifact cache: %v", err)
	}
}

// Refresh attempts to extend the current token. On failure the current
// session is kept: a transient refresh error must not tear down the UI, and
// a truly dead session surfaces through the next 401 instead.
func (m *Manager) Refresh(ctx context.Context) (bool, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	refreshToken := ""
	if m.tokens != nil {
		refreshToken = m.tokens.RefreshToken
	}
	m.mu.RUnlock()
	if refreshToken == "" {
		return false, errors.New("session: no session to refresh")
	}

	ts, err := m.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return false, fmt.Errorf("session: refresh: %w", err)
	}
	if err := m.adopt(ts); err != nil {
		return false, fmt.Errorf("session: refresh: %w", err)
	}
	m.persist(ts)
	return true, nil
}

// Current returns a snapshot of the session, or nil when logged out.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// AccessToken returns the current credential material, or "" when none.
// Snapshot read; never blocks on the provider.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tokens == nil {
		return ""
	}
	return m.tokens.AccessToken
}

// Subscribe returns a channel that yields the current session immediately
// and then every subsequent change, in order. The cancel func detaches the
// subscriber and closes the channel.
func (m *Manager) Subscribe() (<-chan *Session, func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan *Session, 16)
	ch <- m.current
	m.subs[id] = ch
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

// adopt parses claims from the token set and replaces the session wholesale.
func (m *Manager) adopt(ts *idp.TokenSet) error {
	claims, err := idp.ParseClaims(ts.AccessToken)
	if err != nil {
		return err
	}
	s := &Session{
		Subject:         claims.Subject,
		Name:            DisplayName(claims.Name, claims.Email),
		Email:           claims.Email,
		Role:            DeriveRole(claims.Roles),
		AuthenticatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.setLocked(s, ts)
	m.mu.Unlock()
	return nil
}

func (m *Manager) persist(ts *idp.TokenSet) {
	err := m.cache.Save(&cache.Artifact{
		AccessToken:  ts.AccessToken,
		RefreshToken: ts.RefreshToken,
		ExpiresAt:    ts.ExpiresAt,
	})
	if err != nil {
		log.Printf("session: caching artifact: %v", err)
	}
}

// setLocked replaces state and fans the new value out to subscribers in
// publish order. A subscriber that has fallen a full buffer behind loses
// its oldest pending value first, so it always converges to the latest
// session. Caller holds m.mu.
func (m *Manager) setLocked(s *Session, ts *idp.TokenSet) {
	m.current = s
	m.tokens = ts
	for _, ch := range m.subs {
		for {
			select {
			case ch <- s:
			default:
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}
