package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"academic-records/console/internal/notify"
)

// TokenSource provides current credential material. The read is a snapshot
// and must never block on the provider.
type TokenSource interface {
	AccessToken() string
}

// IdentityMatcher reports whether a URL targets the identity provider.
// Provider requests must not be recursively decorated with the tokens the
// provider itself issued.
type IdentityMatcher interface {
	IsIdentityURL(u *url.URL) bool
}

// NewTransport wraps base so every request through it gets credentials
// attached before transmission and failures translated after receipt,
// before the caller's own error handling runs. onUnauthorized is invoked
// when any response comes back 401 (stale-token fail-safe).
func NewTransport(base http.RoundTripper, tokens TokenSource, identity IdentityMatcher, notifier notify.Notifier, onUnauthorized func()) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &failureTransport{
		next: &credentialTransport{
			next:     base,
			tokens:   tokens,
			identity: identity,
		},
		notifier:       notifier,
		onUnauthorized: onUnauthorized,
	}
}

// credentialTransport attaches the Authorization header when a credential
// is available. Requests proceed undecorated when there is none; rejecting
// them is the backend's job, and a request is never dropped here.
type credentialTransport struct {
	next     http.RoundTripper
	tokens   TokenSource
	identity IdentityMatcher
}

func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.identity != nil && t.identity.IsIdentityURL(req.URL) {
		return t.next.RoundTrip(req)
	}
	tok := t.tokens.AccessToken()
	if tok == "" {
		return t.next.RoundTrip(req)
	}
	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+tok)
	return t.next.RoundTrip(clone)
}

// failureTransport translates transport and HTTP failures into user-facing
// notifications. Translation is observational: the error still reaches the
// caller so per-call handling runs.
type failureTransport struct {
	next           http.RoundTripper
	notifier       notify.Notifier
	onUnauthorized func()
}

func (t *failureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.notify("Could not reach the server")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}

	msg := statusMessage(resp.StatusCode)
	t.notify(msg)
	if resp.StatusCode == http.StatusUnauthorized && t.onUnauthorized != nil {
		t.onUnauthorized()
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil, &BackendError{Status: resp.StatusCode, Message: msg}
}

func (t *failureTransport) notify(message string) {
	if t.notifier != nil {
		t.notifier.Notify(notify.Error(message))
	}
}
