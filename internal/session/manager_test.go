package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"academic-records/console/internal/idp"
	"academic-records/console/internal/session/cache"
)

// mintToken builds an unsigned access token carrying the given claims, the
// same shape the provider issues.
func mintToken(t *testing.T, sub, email, name string, roles []string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":          sub,
		"email":        email,
		"realm_access": map[string]any{"roles": roles},
	}
	if name != "" {
		claims["name"] = name
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return tok
}

// fakeProvider implements Provider for tests.
type fakeProvider struct {
	loginTS      *idp.TokenSet
	loginErr     error
	refreshTS    *idp.TokenSet
	refreshErr   error
	logoutErr    error
	loginCalls   int
	refreshCalls int
	logoutCalls  int
}

func (f *fakeProvider) Login(ctx context.Context, username, password string) (*idp.TokenSet, error) {
	f.loginCalls++
	return f.loginTS, f.loginErr
}

func (f *fakeProvider) Refresh(ctx context.Context, refreshToken string) (*idp.TokenSet, error) {
	f.refreshCalls++
	return f.refreshTS, f.refreshErr
}

func (f *fakeProvider) Logout(ctx context.Context, refreshToken string) error {
	f.logoutCalls++
	return f.logoutErr
}

// memCache implements cache.Cache in memory.
type memCache struct {
	artifact *cache.Artifact
	saveErr  error
}

func (m *memCache) Load() (*cache.Artifact, error) {
	if m.artifact == nil {
		return nil, cache.ErrNotFound
	}
	return m.artifact, nil
}

func (m *memCache) Save(a *cache.Artifact) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.artifact = a
	return nil
}

func (m *memCache) Clear() error {
	m.artifact = nil
	return nil
}

func tokenSet(t *testing.T, roles []string) *idp.TokenSet {
	t.Helper()
	return &idp.TokenSet{
		AccessToken:  mintToken(t, "user-1", "maria.silva@academico.edu", "", roles),
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().UTC().Add(5 * time.Minute),
	}
}

func TestLogin_PublishesSession(t *testing.T) {
	p := &fakeProvider{loginTS: tokenSet(t, []string{"STUDENT", "ADMIN"})}
	c := &memCache{}
	m := NewManager(p, c)

	if err := m.Login(context.Background(), Credentials{Username: "maria", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	s := m.Current()
	if s == nil {
		t.Fatal("Current should return a session after login")
	}
	if s.Role != RoleAdmin {
		t.Errorf("Role = %v, want ADMIN (highest-priority claim)", s.Role)
	}
	if s.Name != "Maria Silva" {
		t.Errorf("Name = %q, want fallback derived from email", s.Name)
	}
	if s.Subject != "user-1" {
		t.Errorf("Subject = %q, want %q", s.Subject, "user-1")
	}
	if c.artifact == nil {
		t.Error("artifact should be cached after login")
	}
	if m.AccessToken() == "" {
		t.Error("AccessToken should be non-empty after login")
	}
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	p := &fakeProvider{loginTS: tokenSet(t, []string{"PROFESSOR"})}
	m := NewManager(p, &memCache{})

	if err := m.Login(context.Background(), Credentials{Username: "prof", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	existing := m.Current()

	p.loginTS = nil
	p.loginErr = idp.ErrAuthenticationFailed
	err := m.Login(context.Background(), Credentials{Username: "prof", Password: "wrong"})
	if err == nil {
		t.Fatal("Login with rejected credentials should fail")
	}
	if !errors.Is(err, idp.ErrAuthenticationFailed) {
		t.Errorf("error should wrap ErrAuthenticationFailed, got %v", err)
	}
	if m.Current() != existing {
		t.Error("failed login must not corrupt the existing session")
	}
}

func TestLogout_ClearsLocalStateEvenWhenRemoteFails(t *testing.T) {
	p := &fakeProvider{
		loginTS:   tokenSet(t, []string{"STUDENT"}),
		logoutErr: errors.New("provider unreachable"),
	}
	c := &memCache{}
	m := NewManager(p, c)

	if err := m.Login(context.Background(), Credentials{Username: "s", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	err := m.Logout(context.Background())
	if err == nil {
		t.Error("Logout should report the remote failure")
	}
	if m.Current() != nil {
		t.Error("Current must be nil after Logout, even when the remote call failed")
	}
	if m.AccessToken() != "" {
		t.Error("AccessToken must be empty after Logout")
	}
	if c.artifact != nil {
		t.Error("cached artifact must be cleared by Logout")
	}
	if p.logoutCalls != 1 {
		t.Errorf("remote logout calls = %d, want 1", p.logoutCalls)
	}
}

func TestRefresh_FailureKeepsSession(t *testing.T) {
	p := &fakeProvider{
		loginTS:    tokenSet(t, []string{"COORDINATOR"}),
		refreshErr: errors.New("transient"),
	}
	m := NewManager(p, &memCache{})

	if err := m.Login(context.Background(), Credentials{Username: "c", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	ok, err := m.Refresh(context.Background())
	if ok {
		t.Error("Refresh should report failure")
	}
	if err == nil {
		t.Error("Refresh should return the underlying error")
	}
	if m.Current() == nil {
		t.Error("a failed refresh must not clear the session")
	}
}

func TestRefresh_ReplacesSessionWholesale(t *testing.T) {
	p := &fakeProvider{loginTS: tokenSet(t, []string{"STUDENT"})}
	m := NewManager(p, &memCache{})

	if err := m.Login(context.Background(), Credentials{Username: "s", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	p.refreshTS = &idp.TokenSet{
		AccessToken:  mintToken(t, "user-1", "maria.silva@academico.edu", "", []string{"COORDINATOR"}),
		RefreshToken: "refresh-2",
		ExpiresAt:    time.Now().UTC().Add(5 * time.Minute),
	}
	ok, err := m.Refresh(context.Background())
	if err != nil || !ok {
		t.Fatalf("Refresh: ok=%v err=%v", ok, err)
	}
	if m.Current().Role != RoleCoordinator {
		t.Errorf("Role after refresh = %v, want COORDINATOR", m.Current().Role)
	}
}

func TestRefresh_WithoutSession(t *testing.T) {
	m := NewManager(&fakeProvider{}, &memCache{})
	ok, err := m.Refresh(context.Background())
	if ok || err == nil {
		t.Error("Refresh without a session should fail")
	}
}

func TestForceLogout_LocalOnly(t *testing.T) {
	p := &fakeProvider{loginTS: tokenSet(t, []string{"STUDENT"})}
	c := &memCache{}
	m := NewManager(p, c)

	if err := m.Login(context.Background(), Credentials{Username: "s", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	m.ForceLogout()
	if m.Current() != nil {
		t.Error("ForceLogout must clear the session")
	}
	if c.artifact != nil {
		t.Error("ForceLogout must clear the cached artifact")
	}
	if p.logoutCalls != 0 {
		t.Error("ForceLogout must not contact the provider")
	}
}

func TestInitialize_RecoversLiveToken(t *testing.T) {
	p := &fakeProvider{}
	c := &memCache{artifact: &cache.Artifact{
		AccessToken:  mintToken(t, "user-9", "joao_pedro@academico.edu", "", []string{"PROFESSOR"}),
		RefreshToken: "refresh-9",
		ExpiresAt:    time.Now().UTC().Add(10 * time.Minute),
	}}
	m := NewManager(p, c)

	recovered, err := m.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !recovered {
		t.Fatal("expected recovery from a live cached token")
	}
	s := m.Current()
	if s.Role != RoleProfessor {
		t.Errorf("Role = %v, want PROFESSOR", s.Role)
	}
	if s.Name != "Joao Pedro" {
		t.Errorf("Name = %q, want %q", s.Name, "Joao Pedro")
	}
	if p.refreshCalls != 0 {
		t.Error("live token should be adopted without a refresh")
	}
}

func TestInitialize_RefreshesExpiredToken(t *testing.T) {
	p := &fakeProvider{refreshTS: tokenSet(t, []string{"STUDENT"})}
	c := &memCache{artifact: &cache.Artifact{
		AccessToken:  mintToken(t, "user-1", "s@academico.edu", "", []string{"STUDENT"}),
		RefreshToken: "refresh-old",
		ExpiresAt:    time.Now().UTC().Add(-time.Minute),
	}}
	m := NewManager(p, c)

	recovered, err := m.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !recovered {
		t.Fatal("expected recovery via refresh")
	}
	if p.refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", p.refreshCalls)
	}
}

func TestInitialize_FailedRecoveryIsNotAnError(t *testing.T) {
	p := &fakeProvider{refreshErr: errors.New("expired")}
	c := &memCache{artifact: &cache.Artifact{
		AccessToken:  "not-a-token",
		RefreshToken: "refresh-dead",
		ExpiresAt:    time.Now().UTC().Add(-time.Hour),
	}}
	m := NewManager(p, c)

	recovered, err := m.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize should not error on failed recovery: %v", err)
	}
	if recovered {
		t.Error("recovery should have failed")
	}
	if c.artifact != nil {
		t.Error("a dead artifact should be cleared")
	}
}

func TestInitialize_EmptyCache(t *testing.T) {
	m := NewManager(&fakeProvider{}, &memCache{})
	recovered, err := m.Initialize(context.Background())
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if recovered {
		t.Error("nothing to recover from an empty cache")
	}
}

func TestSubscribe_ReplaysCurrentThenChanges(t *testing.T) {
	p := &fakeProvider{loginTS: tokenSet(t, []string{"ADMIN"})}
	m := NewManager(p, &memCache{})

	ch, cancel := m.Subscribe()
	defer cancel()

	// Replay of the current (nil) value on subscription.
	if first := <-ch; first != nil {
		t.Errorf("first value = %v, want nil", first)
	}

	if err := m.Login(context.Background(), Credentials{Username: "a", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	got := <-ch
	if got == nil || got.Role != RoleAdmin {
		t.Errorf("second value = %v, want ADMIN session", got)
	}

	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if last := <-ch; last != nil {
		t.Errorf("third value = %v, want nil after logout", last)
	}
}

func TestSubscribe_LateSubscriberSeesLatestOnly(t *testing.T) {
	p := &fakeProvider{loginTS: tokenSet(t, []string{"STUDENT"})}
	m := NewManager(p, &memCache{})

	if err := m.Login(context.Background(), Credentials{Username: "s", Password: "x"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	ch, cancel := m.Subscribe()
	defer cancel()

	got := <-ch
	if got == nil || got.Role != RoleStudent {
		t.Errorf("late subscriber first value = %v, want current STUDENT session", got)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra value %v: replay depth is one", extra)
	default:
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	m := NewManager(&fakeProvider{}, &memCache{})
	ch, cancel := m.Subscribe()
	<-ch
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	// Cancelling twice is a no-op.
	cancel()
}
